package services

import (
	"context"
	"errors"
	"log"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/adapters/persistence/repositories"
	"pharmadz/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminService covers the back-office pharmacy management surface
type AdminService struct {
	db           *gorm.DB
	pharmacyRepo repositories.PharmacyRepository
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, pharmacyRepo repositories.PharmacyRepository) *AdminService {
	return &AdminService{db: db, pharmacyRepo: pharmacyRepo}
}

// PlatformStats are the admin dashboard counters.
type PlatformStats struct {
	TotalPharmacies     int64 `json:"total_pharmacies"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
	TotalMedications    int64 `json:"total_medications"`
	GuardPharmacies     int64 `json:"guard_pharmacies"`
}

// CreatePharmacyInput represents pharmacy creation input
type CreatePharmacyInput struct {
	Name               string          `json:"name" validate:"required"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	Location           models.Location `json:"location"`
	IsGuard            bool            `json:"is_guard"`
	SubscriptionActive bool            `json:"subscription_active"`
}

// UpdatePharmacyInput represents a partial pharmacy update. Nil fields are
// left untouched; the ID never changes.
type UpdatePharmacyInput struct {
	Name               *string          `json:"name,omitempty"`
	Phone              *string          `json:"phone,omitempty"`
	Email              *string          `json:"email,omitempty"`
	Location           *models.Location `json:"location,omitempty"`
	IsGuard            *bool            `json:"is_guard,omitempty"`
	SubscriptionActive *bool            `json:"subscription_active,omitempty"`
}

// GetStats runs the platform counters.
func (s *AdminService) GetStats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Pharmacy{}).Count(&stats.TotalPharmacies).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Pharmacy{}).
		Where("subscription_active = ?", true).
		Count(&stats.ActiveSubscriptions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Pharmacy{}).
		Where("is_guard = ?", true).
		Count(&stats.GuardPharmacies).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.StockItem{}).
		Joins("JOIN pharmacies ON pharmacies.id = stock_items.pharmacy_id").
		Where("pharmacies.deleted_at IS NULL").
		Count(&stats.TotalMedications).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// ListPharmacies lists pharmacies for the back office, paginated.
func (s *AdminService) ListPharmacies(ctx context.Context, offset, limit int) ([]*models.Pharmacy, int64, error) {
	return s.pharmacyRepo.ListPaginated(ctx, offset, limit)
}

// CreatePharmacy registers a new pharmacy with a fresh ID.
func (s *AdminService) CreatePharmacy(ctx context.Context, input *CreatePharmacyInput) (*models.Pharmacy, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	pharmacy := &models.Pharmacy{
		ID:                 uuid.New().String(),
		Name:               input.Name,
		Phone:              input.Phone,
		Email:              input.Email,
		Location:           input.Location,
		IsGuard:            input.IsGuard,
		SubscriptionActive: input.SubscriptionActive,
	}

	if err := s.pharmacyRepo.Create(ctx, pharmacy); err != nil {
		return nil, err
	}

	log.Printf("✅ Pharmacy created: %s (%s)", pharmacy.Name, pharmacy.ID)
	return pharmacy, nil
}

// UpdatePharmacy applies a partial update to an existing pharmacy.
func (s *AdminService) UpdatePharmacy(ctx context.Context, id string, input *UpdatePharmacyInput) (*models.Pharmacy, error) {
	pharmacy, err := s.pharmacyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPharmacyNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		pharmacy.Name = *input.Name
	}
	if input.Phone != nil {
		pharmacy.Phone = *input.Phone
	}
	if input.Email != nil {
		pharmacy.Email = *input.Email
	}
	if input.Location != nil {
		pharmacy.Location = *input.Location
	}
	if input.IsGuard != nil {
		pharmacy.IsGuard = *input.IsGuard
	}
	if input.SubscriptionActive != nil {
		pharmacy.SubscriptionActive = *input.SubscriptionActive
	}

	if err := s.pharmacyRepo.Update(ctx, pharmacy); err != nil {
		return nil, err
	}

	log.Printf("✅ Pharmacy updated: %s", pharmacy.ID)
	return pharmacy, nil
}

// DeletePharmacy soft-deletes a pharmacy.
func (s *AdminService) DeletePharmacy(ctx context.Context, id string) error {
	if _, err := s.pharmacyRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPharmacyNotFound
		}
		return err
	}

	if err := s.pharmacyRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Pharmacy deleted: %s", id)
	return nil
}
