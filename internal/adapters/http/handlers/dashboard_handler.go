package handlers

import (
	"churchhub/internal/adapters/http/apperror"
	"churchhub/internal/core/services"
	"churchhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	errs             apperror.Mapper
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, errs apperror.Mapper) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		errs:             errs,
	}
}

// GetAdminDashboard returns admin dashboard data
// @Summary Admin Dashboard
// @Description Directory overview with church, review and donation counts (Admin only)
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return response.Success(c, "Admin dashboard retrieved successfully", data)
}
