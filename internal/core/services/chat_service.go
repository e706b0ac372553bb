package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/adapters/persistence/repositories"
	"pharmadz/internal/config"
	"pharmadz/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService answers staff questions about their pharmacy through an
// external chat-completions API. Each exchange is scoped to one pharmacy and
// grounded in its current stock list.
type ChatService struct {
	pharmacyRepo repositories.PharmacyRepository
	chatRepo     repositories.ChatMessageRepository
	cfg          config.AssistantConfig
	client       *http.Client
}

// NewChatService creates a new chat service
func NewChatService(
	pharmacyRepo repositories.PharmacyRepository,
	chatRepo repositories.ChatMessageRepository,
	cfg config.AssistantConfig,
) *ChatService {
	return &ChatService{
		pharmacyRepo: pharmacyRepo,
		chatRepo:     chatRepo,
		cfg:          cfg,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

// ChatInput represents one assistant question
type ChatInput struct {
	Message string `json:"message" validate:"required"`
}

// ChatResult is one completed assistant exchange
type ChatResult struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Ask sends a staff question to the assistant and stores the exchange.
func (s *ChatService) Ask(ctx context.Context, pharmacyID, userID, message string) (*ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.cfg.APIKey == "" {
		return nil, domain.ErrAssistantUnavailable
	}

	pharmacy, err := s.pharmacyRepo.GetByID(ctx, pharmacyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPharmacyNotFound
		}
		return nil, err
	}

	answer, err := s.complete(ctx, systemPrompt(pharmacy), message)
	if err != nil {
		return nil, err
	}

	record := &models.ChatMessage{
		ID:         uuid.New().String(),
		PharmacyID: pharmacyID,
		UserID:     userID,
		Message:    message,
		Response:   answer,
	}
	if err := s.chatRepo.Create(ctx, record); err != nil {
		log.Printf("⚠️ Failed to store chat exchange: %v", err)
	}

	return &ChatResult{Message: message, Response: answer}, nil
}

// History returns the latest exchanges for a pharmacy, newest first.
func (s *ChatService) History(ctx context.Context, pharmacyID string, limit int) ([]*models.ChatMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.chatRepo.ListByPharmacy(ctx, pharmacyID, limit)
}

// complete runs one chat completion round trip.
func (s *ChatService) complete(ctx context.Context, system, user string) (string, error) {
	payload := chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("⚠️ Assistant request failed: %v", err)
		return "", domain.ErrAssistantUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️ Assistant returned status %d", resp.StatusCode)
		return "", domain.ErrAssistantUnavailable
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", domain.ErrAssistantUnavailable
	}
	if len(completion.Choices) == 0 {
		return "", domain.ErrAssistantUnavailable
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// systemPrompt grounds the assistant in the pharmacy's stock list.
func systemPrompt(pharmacy *models.Pharmacy) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tu es l'assistant de la pharmacie %s (%s, %s). ",
		pharmacy.Name, pharmacy.Location.Commune, pharmacy.Location.Wilaya)
	sb.WriteString("Réponds en français, de façon brève et factuelle, ")
	sb.WriteString("aux questions du personnel sur le stock et la gestion de la pharmacie.\n")

	if len(pharmacy.Stock) == 0 {
		sb.WriteString("Le stock est actuellement vide.")
		return sb.String()
	}

	sb.WriteString("Stock actuel:\n")
	for _, item := range pharmacy.Stock {
		availability := "disponible"
		if !item.Available {
			availability = "indisponible"
		}
		fmt.Fprintf(&sb, "- %s: %d unités, %.2f DA, %s\n",
			item.MedicationName, item.Quantity, item.Price, availability)
	}

	return sb.String()
}
