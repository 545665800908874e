package territory

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
	api.GET("/territories/reps", h.ListReps)
	api.GET("/territories/assignments", h.ListAssignments)
}

func (h *Handler) ListReps(c echo.Context) error {
	p := pagination.FromContext(c)
	reps, total, err := h.svc.ListReps(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(reps, total, p, c.Path()))
}

func (h *Handler) ListAssignments(c echo.Context) error {
	if hcpParam := c.QueryParam("hcp_id"); hcpParam != "" {
		hcpID, err := uuid.Parse(hcpParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid hcp_id")
		}
		assignments, err := h.svc.GetAssignmentsForHCP(c.Request().Context(), hcpID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, assignments)
	}

	p := pagination.FromContext(c)
	assignments, total, err := h.svc.ListAssignments(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(assignments, total, p, c.Path()))
}
