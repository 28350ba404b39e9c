package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/founderflow/founderflow/internal/core/ports"
)

// DashboardHandler serves the aggregate stats behind the dashboard cards.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats handles GET /v1/dashboard/stats. Finance figures are zero unless the
// caller is an admin.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      401  {object}  map[string]string
// @Router       /v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
