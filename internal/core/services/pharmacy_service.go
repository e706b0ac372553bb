package services

import (
	"context"
	"errors"
	"strings"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/adapters/persistence/repositories"
	"pharmadz/internal/core/domain"

	"gorm.io/gorm"
)

// PharmacyService serves the public search surface
type PharmacyService struct {
	pharmacyRepo repositories.PharmacyRepository
}

// NewPharmacyService creates a new pharmacy service
func NewPharmacyService(pharmacyRepo repositories.PharmacyRepository) *PharmacyService {
	return &PharmacyService{pharmacyRepo: pharmacyRepo}
}

// SearchInput represents public search filters. Empty fields are ignored;
// filters compose with AND.
type SearchInput struct {
	Wilaya     string `json:"wilaya"`
	Commune    string `json:"commune"`
	Quartier   string `json:"quartier"`
	Medication string `json:"medication"`
}

// PharmacyView decorates a pharmacy with its display status and marker color.
type PharmacyView struct {
	*models.Pharmacy
	Status      domain.StockStatus `json:"status"`
	MarkerColor string             `json:"marker_color"`
}

// SearchResult is a search response: the matching pharmacies plus the camera
// hint for the map. Viewport is nil when nothing matched, meaning the map
// keeps its prior view.
type SearchResult struct {
	Pharmacies []*PharmacyView  `json:"pharmacies"`
	Total      int              `json:"total"`
	Viewport   *domain.Viewport `json:"viewport,omitempty"`
}

// MedicationMatch pairs a pharmacy with its stock entries matching a
// medication query.
type MedicationMatch struct {
	Pharmacy *PharmacyView    `json:"pharmacy"`
	Items    domain.StockList `json:"items"`
}

// MedicationSearchInput represents a targeted medication search.
type MedicationSearchInput struct {
	MedicationName string `json:"medication_name" validate:"required"`
	Wilaya         string `json:"wilaya"`
	Commune        string `json:"commune"`
	Quartier       string `json:"quartier"`
}

// MedicationSearchResult lists subscribed pharmacies carrying a medication.
type MedicationSearchResult struct {
	Matches    []*MedicationMatch `json:"matches"`
	TotalFound int                `json:"total_found"`
}

// Search lists pharmacies under the given filters, classified for display.
func (s *PharmacyService) Search(ctx context.Context, input *SearchInput) (*SearchResult, error) {
	pharmacies, err := s.pharmacyRepo.List(ctx, repositories.PharmacyFilter{
		Wilaya:     input.Wilaya,
		Commune:    input.Commune,
		Quartier:   input.Quartier,
		Medication: input.Medication,
	})
	if err != nil {
		return nil, err
	}

	views := make([]*PharmacyView, 0, len(pharmacies))
	points := make([]domain.Point, 0, len(pharmacies))
	for _, p := range pharmacies {
		views = append(views, newPharmacyView(p))
		points = append(points, domain.Point{Lat: p.Location.Lat, Lng: p.Location.Lng})
	}

	return &SearchResult{
		Pharmacies: views,
		Total:      len(views),
		Viewport:   domain.FitViewport(points),
	}, nil
}

// GetByID returns one pharmacy, classified for display.
func (s *PharmacyService) GetByID(ctx context.Context, id string) (*PharmacyView, error) {
	pharmacy, err := s.pharmacyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPharmacyNotFound
		}
		return nil, err
	}
	return newPharmacyView(pharmacy), nil
}

// SearchMedication finds subscribed pharmacies carrying a medication. The
// name matches case-insensitively as a substring against available items.
func (s *PharmacyService) SearchMedication(ctx context.Context, input *MedicationSearchInput) (*MedicationSearchResult, error) {
	query := strings.ToLower(strings.TrimSpace(input.MedicationName))
	if query == "" {
		return nil, domain.ErrEmptyMedicationName
	}

	pharmacies, err := s.pharmacyRepo.List(ctx, repositories.PharmacyFilter{
		Wilaya:         input.Wilaya,
		Commune:        input.Commune,
		Quartier:       input.Quartier,
		SubscribedOnly: true,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]*MedicationMatch, 0)
	for _, p := range pharmacies {
		var items domain.StockList
		for _, item := range models.StockToDomain(p.Stock) {
			if item.Available && strings.Contains(strings.ToLower(item.MedicationName), query) {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			matches = append(matches, &MedicationMatch{
				Pharmacy: newPharmacyView(p),
				Items:    items,
			})
		}
	}

	return &MedicationSearchResult{
		Matches:    matches,
		TotalFound: len(matches),
	}, nil
}

// newPharmacyView classifies a pharmacy for map markers and list dots.
func newPharmacyView(p *models.Pharmacy) *PharmacyView {
	status := domain.Classify(p.IsGuard, models.StockToDomain(p.Stock).HasAvailable())
	return &PharmacyView{
		Pharmacy:    p,
		Status:      status,
		MarkerColor: status.MarkerColor(),
	}
}
