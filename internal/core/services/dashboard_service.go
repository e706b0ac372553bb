package services

import (
	"context"
	"errors"
	"time"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/adapters/persistence/repositories"
	"pharmadz/internal/core/domain"

	"gorm.io/gorm"
)

// LowStockThreshold is the quantity under which an item counts as low stock.
const LowStockThreshold = 10

// RecentOrderWindow is how far back the dashboard order counter looks.
const RecentOrderWindow = 7 * 24 * time.Hour

// recentPrescriptionLimit caps the dashboard's recent prescription list.
const recentPrescriptionLimit = 5

// DashboardService aggregates the pharmacy staff dashboard
type DashboardService struct {
	db               *gorm.DB
	pharmacyRepo     repositories.PharmacyRepository
	prescriptionRepo repositories.PrescriptionRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	db *gorm.DB,
	pharmacyRepo repositories.PharmacyRepository,
	prescriptionRepo repositories.PrescriptionRepository,
) *DashboardService {
	return &DashboardService{
		db:               db,
		pharmacyRepo:     pharmacyRepo,
		prescriptionRepo: prescriptionRepo,
	}
}

// PharmacyStats are the dashboard counters for one pharmacy.
type PharmacyStats struct {
	TotalStock     int64 `json:"total_stock"`
	AvailableStock int64 `json:"available_stock"`
	LowStock       int64 `json:"low_stock"`
	RecentOrders   int64 `json:"recent_orders"`
}

// DashboardData is the staff dashboard payload.
type DashboardData struct {
	Pharmacy            *models.Pharmacy       `json:"pharmacy"`
	Stats               PharmacyStats          `json:"stats"`
	RecentPrescriptions []*models.Prescription `json:"recent_prescriptions"`
}

// GetPharmacyDashboard builds the dashboard for a staff account's pharmacy.
func (s *DashboardService) GetPharmacyDashboard(ctx context.Context, pharmacyID string) (*DashboardData, error) {
	pharmacy, err := s.pharmacyRepo.GetByID(ctx, pharmacyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPharmacyNotFound
		}
		return nil, err
	}

	stats, err := s.collectStats(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	recent, err := s.prescriptionRepo.ListRecentByPharmacy(ctx, pharmacyID, recentPrescriptionLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Pharmacy:            pharmacy,
		Stats:               *stats,
		RecentPrescriptions: recent,
	}, nil
}

// collectStats runs the dashboard counters.
func (s *DashboardService) collectStats(ctx context.Context, pharmacyID string) (*PharmacyStats, error) {
	var stats PharmacyStats

	stock := s.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("pharmacy_id = ?", pharmacyID)

	if err := stock.Session(&gorm.Session{}).Count(&stats.TotalStock).Error; err != nil {
		return nil, err
	}
	if err := stock.Session(&gorm.Session{}).
		Where("available = ?", true).
		Count(&stats.AvailableStock).Error; err != nil {
		return nil, err
	}
	if err := stock.Session(&gorm.Session{}).
		Where("quantity < ?", LowStockThreshold).
		Count(&stats.LowStock).Error; err != nil {
		return nil, err
	}

	recentOrders, err := s.prescriptionRepo.CountByPharmacySince(ctx, pharmacyID, time.Now().Add(-RecentOrderWindow))
	if err != nil {
		return nil, err
	}
	stats.RecentOrders = recentOrders

	return &stats, nil
}
