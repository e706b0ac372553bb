package repositories

import (
	"context"

	"pharmadz/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// pharmacyRepository implements PharmacyRepository interface
type pharmacyRepository struct {
	db *gorm.DB
}

// NewPharmacyRepository creates a new pharmacy repository
func NewPharmacyRepository(db *gorm.DB) PharmacyRepository {
	return &pharmacyRepository{db: db}
}

// orderedStock preloads the stock list in insertion order
func orderedStock(db *gorm.DB) *gorm.DB {
	return db.Order("stock_items.position ASC")
}

// Create creates a new pharmacy with its stock list
func (r *pharmacyRepository) Create(ctx context.Context, pharmacy *models.Pharmacy) error {
	return r.db.WithContext(ctx).Create(pharmacy).Error
}

// GetByID gets a pharmacy by ID including its ordered stock list
func (r *pharmacyRepository) GetByID(ctx context.Context, id string) (*models.Pharmacy, error) {
	var pharmacy models.Pharmacy
	err := r.db.WithContext(ctx).
		Preload("Stock", orderedStock).
		Where("id = ?", id).
		First(&pharmacy).Error
	if err != nil {
		return nil, err
	}
	return &pharmacy, nil
}

// Update updates a pharmacy's own fields. The stock list is replaced only
// through ReplaceStock.
func (r *pharmacyRepository) Update(ctx context.Context, pharmacy *models.Pharmacy) error {
	return r.db.WithContext(ctx).Omit("Stock").Save(pharmacy).Error
}

// Delete soft deletes a pharmacy
func (r *pharmacyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Pharmacy{}).Error
}

// List lists pharmacies matching the filter, stock preloaded in order
func (r *pharmacyRepository) List(ctx context.Context, filter PharmacyFilter) ([]*models.Pharmacy, error) {
	query := r.db.WithContext(ctx).Model(&models.Pharmacy{})

	if filter.Wilaya != "" {
		query = query.Where("loc_wilaya = ?", filter.Wilaya)
	}
	if filter.Commune != "" {
		query = query.Where("loc_commune = ?", filter.Commune)
	}
	if filter.Quartier != "" {
		query = query.Where("loc_quartier = ?", filter.Quartier)
	}
	if filter.SubscribedOnly {
		query = query.Where("subscription_active = ?", true)
	}
	if filter.Medication != "" {
		query = query.
			Joins("JOIN stock_items ON stock_items.pharmacy_id = pharmacies.id").
			Where("stock_items.medication_name LIKE ?", "%"+filter.Medication+"%").
			Where("stock_items.available = ?", true).
			Distinct("pharmacies.*")
	}

	var pharmacies []*models.Pharmacy
	err := query.
		Preload("Stock", orderedStock).
		Order("pharmacies.created_at ASC").
		Find(&pharmacies).Error
	if err != nil {
		return nil, err
	}
	return pharmacies, nil
}

// ListPaginated lists pharmacies with pagination (admin listing)
func (r *pharmacyRepository) ListPaginated(ctx context.Context, offset, limit int) ([]*models.Pharmacy, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Pharmacy{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pharmacies []*models.Pharmacy
	err := r.db.WithContext(ctx).
		Preload("Stock", orderedStock).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&pharmacies).Error
	if err != nil {
		return nil, 0, err
	}
	return pharmacies, total, nil
}

// ReplaceStock swaps the whole stock list in one transaction. On any failure
// the transaction rolls back and the stored list keeps its previous value.
func (r *pharmacyRepository) ReplaceStock(ctx context.Context, pharmacyID string, items []models.StockItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pharmacy_id = ?", pharmacyID).Delete(&models.StockItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}
