package hcp

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
	api.GET("/hcps", h.ListProfiles)
	api.GET("/hcps/:id", h.GetProfile)
	api.GET("/hcps/:id/engagement", h.GetEngagements)
}

func (h *Handler) ListProfiles(c echo.Context) error {
	p := pagination.FromContext(c)
	profiles, total, err := h.svc.ListProfiles(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(profiles, total, p, c.Path()))
}

func (h *Handler) GetProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Fall back to NPI lookup for convenience.
		profile, npiErr := h.svc.GetProfileByNPI(c.Request().Context(), c.Param("id"))
		if npiErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
		return c.JSON(http.StatusOK, profile)
	}
	profile, err := h.svc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "hcp not found")
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) GetEngagements(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	engs, err := h.svc.GetEngagements(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, engs)
}
