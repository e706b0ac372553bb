package repositories

import (
	"context"

	"pharmadz/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// chatMessageRepository implements ChatMessageRepository interface
type chatMessageRepository struct {
	db *gorm.DB
}

// NewChatMessageRepository creates a new chat message repository
func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

// Create creates a new chat message
func (r *chatMessageRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListByPharmacy lists the latest chat messages for a pharmacy
func (r *chatMessageRepository) ListByPharmacy(ctx context.Context, pharmacyID string, limit int) ([]*models.ChatMessage, error) {
	var messages []*models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ?", pharmacyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
