package handlers

import (
	"errors"
	"net/url"
	"strings"

	"pharmadz/internal/core/domain"
	"pharmadz/internal/core/services"
	"pharmadz/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PharmacyHandler serves the public search endpoints
type PharmacyHandler struct {
	pharmacyService *services.PharmacyService
}

// NewPharmacyHandler creates a new pharmacy handler
func NewPharmacyHandler(pharmacyService *services.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{pharmacyService: pharmacyService}
}

// SearchMedicationRequest represents a targeted medication search body
type SearchMedicationRequest struct {
	MedicationName string `json:"medication_name"`
	Wilaya         string `json:"wilaya"`
	Commune        string `json:"commune"`
	Quartier       string `json:"quartier"`
}

// List handles the public pharmacy search
// @Summary Search pharmacies
// @Description List pharmacies filtered by region and medication, classified for the map
// @Tags Pharmacies
// @Accept json
// @Produce json
// @Param wilaya query string false "Wilaya filter"
// @Param commune query string false "Commune filter"
// @Param quartier query string false "Quartier filter"
// @Param medication query string false "Medication substring filter"
// @Success 200 {object} response.Response
// @Router /pharmacies [get]
func (h *PharmacyHandler) List(c *fiber.Ctx) error {
	input := &services.SearchInput{
		Wilaya:     strings.TrimSpace(c.Query("wilaya")),
		Commune:    strings.TrimSpace(c.Query("commune")),
		Quartier:   strings.TrimSpace(c.Query("quartier")),
		Medication: strings.TrimSpace(c.Query("medication")),
	}

	result, err := h.pharmacyService.Search(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to search pharmacies")
	}

	return response.Success(c, "Pharmacies retrieved successfully", result)
}

// Get handles fetching one pharmacy
// @Summary Get pharmacy
// @Description Get a single pharmacy with its stock and display status
// @Tags Pharmacies
// @Accept json
// @Produce json
// @Param id path string true "Pharmacy ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pharmacies/{id} [get]
func (h *PharmacyHandler) Get(c *fiber.Ctx) error {
	pharmacy, err := h.pharmacyService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPharmacyNotFound) {
			return response.NotFound(c, "Pharmacy not found")
		}
		return response.InternalServerError(c, "Failed to get pharmacy")
	}

	return response.Success(c, "Pharmacy retrieved successfully", pharmacy)
}

// SearchMedication handles the targeted medication search
// @Summary Search medication
// @Description Find subscribed pharmacies carrying a medication
// @Tags Pharmacies
// @Accept json
// @Produce json
// @Param body body SearchMedicationRequest true "Search parameters"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /search-medication [post]
func (h *PharmacyHandler) SearchMedication(c *fiber.Ctx) error {
	var req SearchMedicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.MedicationSearchInput{
		MedicationName: req.MedicationName,
		Wilaya:         strings.TrimSpace(req.Wilaya),
		Commune:        strings.TrimSpace(req.Commune),
		Quartier:       strings.TrimSpace(req.Quartier),
	}

	result, err := h.pharmacyService.SearchMedication(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMedicationName) {
			return response.BadRequest(c, "Medication name is required")
		}
		return response.InternalServerError(c, "Failed to search medication")
	}

	return response.Success(c, "Medication search completed", result)
}

// Wilayas lists the selectable wilayas
// @Summary List wilayas
// @Description List the wilayas offered by the search filters
// @Tags Regions
// @Produce json
// @Success 200 {object} response.Response
// @Router /regions/wilayas [get]
func (h *PharmacyHandler) Wilayas(c *fiber.Ctx) error {
	return response.Success(c, "Wilayas retrieved successfully", fiber.Map{
		"wilayas": domain.Wilayas,
	})
}

// Communes lists the communes of a wilaya
// @Summary List communes
// @Description List the known communes of a wilaya, with the default selection
// @Tags Regions
// @Produce json
// @Param wilaya path string true "Wilaya name"
// @Success 200 {object} response.Response
// @Router /regions/wilayas/{wilaya}/communes [get]
func (h *PharmacyHandler) Communes(c *fiber.Ctx) error {
	wilaya, err := unescapeParam(c, "wilaya")
	if err != nil {
		return response.BadRequest(c, "Invalid wilaya")
	}

	communes := domain.CommunesOf(wilaya)
	if communes == nil {
		communes = []string{}
	}

	return response.Success(c, "Communes retrieved successfully", fiber.Map{
		"wilaya":          wilaya,
		"communes":        communes,
		"default_commune": domain.DefaultCommune(wilaya),
	})
}

// unescapeParam decodes a path parameter; wilaya names carry accents.
func unescapeParam(c *fiber.Ctx, name string) (string, error) {
	return url.PathUnescape(c.Params(name))
}
