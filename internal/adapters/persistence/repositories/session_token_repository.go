package repositories

import (
	"context"
	"time"

	"pharmadz/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// sessionTokenRepository implements SessionTokenRepository interface
type sessionTokenRepository struct {
	db *gorm.DB
}

// NewSessionTokenRepository creates a new session token repository
func NewSessionTokenRepository(db *gorm.DB) SessionTokenRepository {
	return &sessionTokenRepository{db: db}
}

// Create creates a new one-time session token
func (r *sessionTokenRepository) Create(ctx context.Context, token *models.SessionToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByToken gets a session token by its value
func (r *sessionTokenRepository) GetByToken(ctx context.Context, token string) (*models.SessionToken, error) {
	var st models.SessionToken
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Consume marks a session token as used. The guard on consumed_at makes the
// exchange single-use even under concurrent requests.
func (r *sessionTokenRepository) Consume(ctx context.Context, id uint) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.SessionToken{}).
		Where("id = ?", id).
		Where("consumed_at IS NULL").
		Update("consumed_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteExpired deletes all expired tokens (cleanup job)
func (r *sessionTokenRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.SessionToken{}).Error
}
