package campaign

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
	api.GET("/campaigns", h.ListCampaigns)
	api.GET("/campaigns/:id", h.GetCampaign)
	api.GET("/campaigns/:id/participants", h.ListParticipants)
}

func (h *Handler) ListCampaigns(c echo.Context) error {
	p := pagination.FromContext(c)
	campaigns, total, err := h.svc.ListCampaigns(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(campaigns, total, p, c.Path()))
}

func (h *Handler) GetCampaign(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cam, err := h.svc.GetCampaign(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "campaign not found")
	}
	return c.JSON(http.StatusOK, cam)
}

func (h *Handler) ListParticipants(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p := pagination.FromContext(c)
	parts, total, err := h.svc.ListParticipants(c.Request().Context(), id, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(parts, total, p, c.Path()))
}
