package handlers

import (
	"errors"
	"strings"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/adapters/persistence/repositories"
	"pharmadz/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrescriptionHandler serves prescription submission and lookup
type PrescriptionHandler struct {
	prescriptionRepo repositories.PrescriptionRepository
	pharmacyRepo     repositories.PharmacyRepository
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(
	prescriptionRepo repositories.PrescriptionRepository,
	pharmacyRepo repositories.PharmacyRepository,
) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionRepo: prescriptionRepo,
		pharmacyRepo:     pharmacyRepo,
	}
}

// CreatePrescriptionRequest represents a prescription submission
type CreatePrescriptionRequest struct {
	UserID      string   `json:"user_id"`
	PharmacyID  string   `json:"pharmacy_id"`
	Medications []string `json:"medications"`
	ImageURL    *string  `json:"image_url"`
}

// Create submits a prescription to a pharmacy
// @Summary Submit prescription
// @Description Submit a medication order to one pharmacy
// @Tags Prescriptions
// @Accept json
// @Produce json
// @Param body body CreatePrescriptionRequest true "Prescription data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /prescriptions [post]
func (h *PrescriptionHandler) Create(c *fiber.Ctx) error {
	var req CreatePrescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if strings.TrimSpace(req.UserID) == "" {
		return response.BadRequest(c, "User ID is required")
	}
	if strings.TrimSpace(req.PharmacyID) == "" {
		return response.BadRequest(c, "Pharmacy ID is required")
	}
	if len(req.Medications) == 0 && req.ImageURL == nil {
		return response.BadRequest(c, "Medications or a prescription image is required")
	}

	if _, err := h.pharmacyRepo.GetByID(c.Context(), req.PharmacyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Pharmacy not found")
		}
		return response.InternalServerError(c, "Failed to submit prescription")
	}

	prescription := &models.Prescription{
		ID:          uuid.New().String(),
		UserID:      strings.TrimSpace(req.UserID),
		PharmacyID:  req.PharmacyID,
		Medications: req.Medications,
		ImageURL:    req.ImageURL,
		Status:      models.PrescriptionPending,
	}

	if err := h.prescriptionRepo.Create(c.Context(), prescription); err != nil {
		return response.InternalServerError(c, "Failed to submit prescription")
	}

	return response.Created(c, "Prescription submitted successfully", prescription)
}

// ListByUser lists a user's prescriptions
// @Summary List prescriptions
// @Description List the prescriptions submitted by a user, newest first
// @Tags Prescriptions
// @Produce json
// @Param userId path string true "User identifier"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /prescriptions/{userId} [get]
func (h *PrescriptionHandler) ListByUser(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Params("userId"))
	if userID == "" {
		return response.BadRequest(c, "User ID is required")
	}

	prescriptions, err := h.prescriptionRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list prescriptions")
	}

	return response.Success(c, "Prescriptions retrieved successfully", fiber.Map{
		"prescriptions": prescriptions,
		"total":         len(prescriptions),
	})
}
