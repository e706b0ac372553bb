package repositories

import (
	"context"
	"time"

	"pharmadz/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// SessionTokenRepository defines the one-time OAuth session token store
type SessionTokenRepository interface {
	Create(ctx context.Context, token *models.SessionToken) error
	GetByToken(ctx context.Context, token string) (*models.SessionToken, error)
	// Consume marks the token used; it fails for a token already consumed.
	Consume(ctx context.Context, id uint) error
	DeleteExpired(ctx context.Context) error
}

// PharmacyFilter narrows the pharmacy listing. Filters compose with AND;
// empty fields are ignored.
type PharmacyFilter struct {
	Wilaya         string
	Commune        string
	Quartier       string
	Medication     string // substring match against available stock items
	SubscribedOnly bool
}

// PharmacyRepository defines pharmacy repository interface
type PharmacyRepository interface {
	Create(ctx context.Context, pharmacy *models.Pharmacy) error
	GetByID(ctx context.Context, id string) (*models.Pharmacy, error)
	Update(ctx context.Context, pharmacy *models.Pharmacy) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PharmacyFilter) ([]*models.Pharmacy, error)
	ListPaginated(ctx context.Context, offset, limit int) ([]*models.Pharmacy, int64, error)
	// ReplaceStock swaps a pharmacy's whole stock list in one transaction.
	ReplaceStock(ctx context.Context, pharmacyID string, items []models.StockItem) error
}

// PrescriptionRepository defines prescription repository interface
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *models.Prescription) error
	ListByUser(ctx context.Context, userID string) ([]*models.Prescription, error)
	ListRecentByPharmacy(ctx context.Context, pharmacyID string, limit int) ([]*models.Prescription, error)
	CountByPharmacySince(ctx context.Context, pharmacyID string, since time.Time) (int64, error)
}

// ChatMessageRepository defines chat message repository interface
type ChatMessageRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	ListByPharmacy(ctx context.Context, pharmacyID string, limit int) ([]*models.ChatMessage, error)
}
