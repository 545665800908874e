package engagement

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hcpe/hcpe/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/stimuli", h.ListStimuli)
	api.GET("/outcomes", h.ListOutcomes)
}

func (h *Handler) ListStimuli(c echo.Context) error {
	hcpID, err := uuid.Parse(c.QueryParam("hcp_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "hcp_id is required")
	}
	p := pagination.FromContext(c)
	events, total, err := h.svc.ListStimuli(c.Request().Context(), hcpID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(events, total, p, c.Path()))
}

func (h *Handler) ListOutcomes(c echo.Context) error {
	hcpID, err := uuid.Parse(c.QueryParam("hcp_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "hcp_id is required")
	}
	p := pagination.FromContext(c)
	events, total, err := h.svc.ListOutcomes(c.Request().Context(), hcpID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(events, total, p, c.Path()))
}
