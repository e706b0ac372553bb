package handlers

import (
	"errors"
	"strconv"
	"strings"

	"pharmadz/internal/core/domain"
	"pharmadz/internal/core/services"
	"pharmadz/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler serves the staff assistant endpoints
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest represents one assistant question
type ChatRequest struct {
	Message string `json:"message"`
}

// Ask sends a question to the assistant
// @Summary Ask the assistant
// @Description Ask the pharmacy assistant a question grounded in the pharmacy's stock
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChatRequest true "Question"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /pharmacy/chat [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	pharmacyID, err := staffPharmacyID(c)
	if err != nil {
		return response.Forbidden(c, "No pharmacy bound to this account")
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return response.BadRequest(c, "Message is required")
	}

	username, _ := c.Locals("username").(string)

	result, err := h.chatService.Ask(c.Context(), pharmacyID, username, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAssistantUnavailable):
			return response.ServiceUnavailable(c, "Assistant is temporarily unavailable")
		case errors.Is(err, domain.ErrPharmacyNotFound):
			return response.NotFound(c, "Pharmacy not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Message is required")
		default:
			return response.InternalServerError(c, "Failed to reach the assistant")
		}
	}

	return response.Success(c, "Assistant replied", result)
}

// AskPublic sends a question to the assistant for one pharmacy
// @Summary Ask the assistant (public)
// @Description Ask the assistant a question about one pharmacy's stock
// @Tags Chat
// @Produce json
// @Param pharmacyId path string true "Pharmacy ID"
// @Param message query string true "Question"
// @Param user_id query string false "User identifier"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /chat/{pharmacyId} [post]
func (h *ChatHandler) AskPublic(c *fiber.Ctx) error {
	pharmacyID := c.Params("pharmacyId")

	message := strings.TrimSpace(c.Query("message"))
	if message == "" {
		return response.BadRequest(c, "Message is required")
	}
	userID := c.Query("user_id", "anonymous")

	result, err := h.chatService.Ask(c.Context(), pharmacyID, userID, message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAssistantUnavailable):
			return response.ServiceUnavailable(c, "Assistant is temporarily unavailable")
		case errors.Is(err, domain.ErrPharmacyNotFound):
			return response.NotFound(c, "Pharmacy not found")
		default:
			return response.InternalServerError(c, "Failed to reach the assistant")
		}
	}

	return response.Success(c, "Assistant replied", result)
}

// History lists past assistant exchanges
// @Summary Chat history
// @Description List the latest assistant exchanges for the staff pharmacy
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max exchanges to return"
// @Success 200 {object} response.Response
// @Router /pharmacy/chat [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	pharmacyID, err := staffPharmacyID(c)
	if err != nil {
		return response.Forbidden(c, "No pharmacy bound to this account")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	messages, err := h.chatService.History(c.Context(), pharmacyID, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load chat history")
	}

	return response.Success(c, "Chat history retrieved successfully", fiber.Map{
		"messages": messages,
	})
}
