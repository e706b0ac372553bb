package handlers

import (
	"errors"

	"pharmadz/internal/core/domain"
	"pharmadz/internal/core/services"
	"pharmadz/internal/pkg/pagination"
	"pharmadz/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the back-office endpoints
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats returns the platform counters
// @Summary Platform stats
// @Description Pharmacy, subscription, medication and duty roster counters
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.GetStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load platform stats")
	}

	return response.Success(c, "Stats retrieved successfully", stats)
}

// ListPharmacies lists pharmacies for the back office
// @Summary List pharmacies (admin)
// @Description Paginated pharmacy list for the back office
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /admin/pharmacies [get]
func (h *AdminHandler) ListPharmacies(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	pharmacies, total, err := h.adminService.ListPharmacies(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list pharmacies")
	}

	return response.Success(c, "Pharmacies retrieved successfully", fiber.Map{
		"pharmacies": pharmacies,
		"pagination": pagination.GetMeta(params, total),
	})
}

// CreatePharmacy registers a new pharmacy
// @Summary Create pharmacy
// @Description Register a new pharmacy; the server assigns the ID
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePharmacyInput true "Pharmacy data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/pharmacies [post]
func (h *AdminHandler) CreatePharmacy(c *fiber.Ctx) error {
	var input services.CreatePharmacyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	pharmacy, err := h.adminService.CreatePharmacy(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Pharmacy name is required")
		}
		return response.InternalServerError(c, "Failed to create pharmacy")
	}

	return response.Created(c, "Pharmacy created successfully", pharmacy)
}

// UpdatePharmacy applies a partial update
// @Summary Update pharmacy
// @Description Patch a pharmacy; absent fields are untouched, the ID never changes
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pharmacy ID"
// @Param body body services.UpdatePharmacyInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/pharmacies/{id} [put]
func (h *AdminHandler) UpdatePharmacy(c *fiber.Ctx) error {
	var input services.UpdatePharmacyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	pharmacy, err := h.adminService.UpdatePharmacy(c.Context(), c.Params("id"), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPharmacyNotFound):
			return response.NotFound(c, "Pharmacy not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Pharmacy name must not be empty")
		default:
			return response.InternalServerError(c, "Failed to update pharmacy")
		}
	}

	return response.Success(c, "Pharmacy updated successfully", pharmacy)
}

// DeletePharmacy removes a pharmacy
// @Summary Delete pharmacy
// @Description Soft-delete a pharmacy and hide it from search
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pharmacy ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/pharmacies/{id} [delete]
func (h *AdminHandler) DeletePharmacy(c *fiber.Ctx) error {
	if err := h.adminService.DeletePharmacy(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrPharmacyNotFound) {
			return response.NotFound(c, "Pharmacy not found")
		}
		return response.InternalServerError(c, "Failed to delete pharmacy")
	}

	return response.Success(c, "Pharmacy deleted successfully", nil)
}
