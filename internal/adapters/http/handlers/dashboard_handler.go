package handlers

import (
	"errors"

	"pharmadz/internal/core/domain"
	"pharmadz/internal/core/services"
	"pharmadz/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the staff dashboard
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get builds the staff dashboard
// @Summary Pharmacy dashboard
// @Description Stock counters, recent orders and recent prescriptions for the staff pharmacy
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /pharmacy/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	pharmacyID, err := staffPharmacyID(c)
	if err != nil {
		return response.Forbidden(c, "No pharmacy bound to this account")
	}

	data, err := h.dashboardService.GetPharmacyDashboard(c.Context(), pharmacyID)
	if err != nil {
		if errors.Is(err, domain.ErrPharmacyNotFound) {
			return response.NotFound(c, "Pharmacy not found")
		}
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}
