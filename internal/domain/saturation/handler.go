package saturation

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/saturation", h.ListForHCP)
	api.GET("/saturation/summary", h.Summary)
}

func (h *Handler) ListForHCP(c echo.Context) error {
	hcpID, err := uuid.Parse(c.QueryParam("hcp_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "hcp_id is required")
	}
	exposures, err := h.svc.ExposuresForHCP(c.Request().Context(), hcpID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, exposures)
}

func (h *Handler) Summary(c echo.Context) error {
	counts, err := h.svc.Summary(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, counts)
}
