package handlers

import (
	"errors"
	"strconv"

	"pharmadz/internal/core/domain"
	"pharmadz/internal/core/services"
	"pharmadz/internal/pkg/response"
	"pharmadz/internal/pkg/spreadsheet"

	"github.com/gofiber/fiber/v2"
)

// StockHandler manages the staff stock endpoints
type StockHandler struct {
	stockService *services.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *services.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// ReplaceStockRequest represents a full stock list submission
type ReplaceStockRequest struct {
	Stock domain.StockList `json:"stock"`
}

// List returns the pharmacy's stock list
// @Summary Get stock
// @Description List the staff pharmacy's stock in insertion order
// @Tags Stock
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /pharmacy/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	pharmacyID, err := staffPharmacyID(c)
	if err != nil {
		return response.Forbidden(c, "No pharmacy bound to this account")
	}

	stock, err := h.stockService.List(c.Context(), pharmacyID)
	if err != nil {
		return h.mapStockError(c, err)
	}

	return response.Success(c, "Stock retrieved successfully", fiber.Map{
		"stock": stock,
		"total": len(stock),
	})
}

// Replace swaps the whole stock list
// @Summary Replace stock
// @Description Replace the pharmacy's whole stock list; the submitted list wins
// @Tags Stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReplaceStockRequest true "Full stock list"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /pharmacy/stock [put]
func (h *StockHandler) Replace(c *fiber.Ctx) error {
	pharmacyID, err := staffPharmacyID(c)
	if err != nil {
		return response.Forbidden(c, "No pharmacy bound to this account")
	}

	var req ReplaceStockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Stock == nil {
		req.Stock = domain.StockList{}
	}

	stock, err := h.stockService.Replace(c.Context(), pharmacyID, req.Stock)
	if err != nil {
		return h.mapStockError(c, err)
	}

	return response.Success(c, "Stock replaced successfully", fiber.Map{
		"stock": stock,
		"total": len(stock),
	})
}

// AppendItem adds one stock item
// @Summary Add stock item
// @Description Append one item at the end of the stock list
// @Tags Stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.StockItem true "Stock item"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /pharmacy/stock/items [post]
func (h *StockHandler) AppendItem(c *fiber.Ctx) error {
	pharmacyID, err := staffPharmacyID(c)
	if err != nil {
		return response.Forbidden(c, "No pharmacy bound to this account")
	}

	var item domain.StockItem
	if err := c.BodyParser(&item); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	stock, err := h.stockService.Append(c.Context(), pharmacyID, item)
	if err != nil {
		return h.mapStockError(c, err)
	}

	return response.Created(c, "Stock item added successfully", fiber.Map{
		"stock": stock,
		"total": len(stock),
	})
}

// UpdateItem patches the stock item at index
// @Summary Update stock item
// @Description Patch the stock item at the given position; absent fields are untouched
// @Tags Stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param index path int true "Item position"
// @Param body body domain.StockPatch true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pharmacy/stock/items/{index} [patch]
func (h *StockHandler) UpdateItem(c *fiber.Ctx) error {
	pharmacyID, err := staffPharmacyID(c)
	if err != nil {
		return response.Forbidden(c, "No pharmacy bound to this account")
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return response.BadRequest(c, "Invalid item position")
	}

	var patch domain.StockPatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	stock, err := h.stockService.Update(c.Context(), pharmacyID, index, patch)
	if err != nil {
		return h.mapStockError(c, err)
	}

	return response.Success(c, "Stock item updated successfully", fiber.Map{
		"stock": stock,
		"total": len(stock),
	})
}

// RemoveItem drops the stock item at index
// @Summary Remove stock item
// @Description Remove the stock item at the given position
// @Tags Stock
// @Produce json
// @Security BearerAuth
// @Param index path int true "Item position"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pharmacy/stock/items/{index} [delete]
func (h *StockHandler) RemoveItem(c *fiber.Ctx) error {
	pharmacyID, err := staffPharmacyID(c)
	if err != nil {
		return response.Forbidden(c, "No pharmacy bound to this account")
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return response.BadRequest(c, "Invalid item position")
	}

	stock, err := h.stockService.Remove(c.Context(), pharmacyID, index)
	if err != nil {
		return h.mapStockError(c, err)
	}

	return response.Success(c, "Stock item removed successfully", fiber.Map{
		"stock": stock,
		"total": len(stock),
	})
}

// Upload imports a stock spreadsheet
// @Summary Import stock file
// @Description Replace the stock list with the rows of an uploaded Excel workbook
// @Tags Stock
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Stock workbook (.xlsx or .xls)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /pharmacy/stock/upload-excel [post]
func (h *StockHandler) Upload(c *fiber.Ctx) error {
	pharmacyID, err := staffPharmacyID(c)
	if err != nil {
		return response.Forbidden(c, "No pharmacy bound to this account")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Failed to read uploaded file")
	}
	defer file.Close()

	stock, err := h.stockService.Import(c.Context(), pharmacyID, fileHeader.Filename, file)
	if err != nil {
		return h.mapStockError(c, err)
	}

	return response.Success(c, "Stock imported successfully", fiber.Map{
		"stock":       stock,
		"items_count": len(stock),
	})
}

// Template serves the import template
// @Summary Download stock template
// @Description Download the CSV template briefing the expected import schema
// @Tags Stock
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string
// @Router /pharmacy/stock/template [get]
func (h *StockHandler) Template(c *fiber.Ctx) error {
	content, err := spreadsheet.Template()
	if err != nil {
		return response.InternalServerError(c, "Failed to build template")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+spreadsheet.TemplateFilename+`"`)
	return c.SendString(content)
}

// mapStockError translates stock errors to HTTP responses.
func (h *StockHandler) mapStockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrPharmacyNotFound):
		return response.NotFound(c, "Pharmacy not found")
	case errors.Is(err, domain.ErrStockIndexOutOfRange):
		return response.NotFound(c, "Stock item not found")
	case errors.Is(err, domain.ErrEmptyMedicationName):
		return response.BadRequest(c, "Medication name is required")
	case errors.Is(err, domain.ErrNegativeQuantity):
		return response.BadRequest(c, "Quantity must not be negative")
	case errors.Is(err, domain.ErrNegativePrice):
		return response.BadRequest(c, "Price must not be negative")
	case errors.Is(err, spreadsheet.ErrUnsupportedFileType):
		return response.BadRequest(c, "Only .xlsx and .xls files are supported")
	case errors.Is(err, spreadsheet.ErrEmptySheet):
		return response.BadRequest(c, "The uploaded file has no data rows")
	case errors.Is(err, spreadsheet.ErrMissingColumns):
		return response.BadRequest(c, "Missing required columns: medication_name, quantity, price")
	default:
		return response.InternalServerError(c, "Failed to update stock")
	}
}

// staffPharmacyID resolves the pharmacy bound to the authenticated staff
// account. Set by the auth middleware from the access token claims.
func staffPharmacyID(c *fiber.Ctx) (string, error) {
	pharmacyID, ok := c.Locals("pharmacyID").(string)
	if !ok || pharmacyID == "" {
		return "", domain.ErrPharmacyRequired
	}
	return pharmacyID, nil
}
