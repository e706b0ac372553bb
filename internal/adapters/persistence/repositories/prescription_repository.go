package repositories

import (
	"context"
	"time"

	"pharmadz/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// prescriptionRepository implements PrescriptionRepository interface
type prescriptionRepository struct {
	db *gorm.DB
}

// NewPrescriptionRepository creates a new prescription repository
func NewPrescriptionRepository(db *gorm.DB) PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

// Create creates a new prescription
func (r *prescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

// ListByUser lists a user's prescriptions, newest first
func (r *prescriptionRepository) ListByUser(ctx context.Context, userID string) ([]*models.Prescription, error) {
	var prescriptions []*models.Prescription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// ListRecentByPharmacy lists the latest prescriptions for a pharmacy
func (r *prescriptionRepository) ListRecentByPharmacy(ctx context.Context, pharmacyID string, limit int) ([]*models.Prescription, error) {
	var prescriptions []*models.Prescription
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ?", pharmacyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// CountByPharmacySince counts prescriptions for a pharmacy since a point in time
func (r *prescriptionRepository) CountByPharmacySince(ctx context.Context, pharmacyID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Prescription{}).
		Where("pharmacy_id = ?", pharmacyID).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
