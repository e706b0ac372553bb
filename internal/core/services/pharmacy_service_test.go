package services

import (
	"context"
	"errors"
	"testing"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/core/domain"
)

func newPharmacyFixture(t *testing.T) (*PharmacyService, *fakePharmacyRepo) {
	t.Helper()

	repo := newFakePharmacyRepo()
	repo.pharmacies["ph-1"] = &models.Pharmacy{
		ID:   "ph-1",
		Name: "Pharmacie Central Alger",
		Location: models.Location{
			Lat: 36.7538, Lng: 3.0588,
			Wilaya: "Alger", Commune: "Alger Centre",
		},
		IsGuard:            true,
		SubscriptionActive: true,
		Stock: []models.StockItem{
			{MedicationName: "Paracétamol 500mg", Quantity: 50, Price: 120, Available: true},
		},
	}
	repo.pharmacies["ph-2"] = &models.Pharmacy{
		ID:   "ph-2",
		Name: "Pharmacie Hydra",
		Location: models.Location{
			Lat: 36.7225, Lng: 3.1572,
			Wilaya: "Alger", Commune: "Hydra",
		},
		SubscriptionActive: true,
		Stock: []models.StockItem{
			{MedicationName: "Paracétamol 500mg", Quantity: 25, Price: 125, Available: true},
			{MedicationName: "Doliprane 1000mg", Quantity: 0, Price: 180, Available: false},
		},
	}
	repo.pharmacies["ph-3"] = &models.Pharmacy{
		ID:   "ph-3",
		Name: "Pharmacie Oran Centre",
		Location: models.Location{
			Lat: 35.6976, Lng: -0.6337,
			Wilaya: "Oran", Commune: "Oran",
		},
		Stock: []models.StockItem{
			{MedicationName: "Aspirine 500mg", Quantity: 100, Price: 200, Available: false},
		},
	}

	return NewPharmacyService(repo), repo
}

func TestPharmacyServiceSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies pharmacies for the map", func(t *testing.T) {
		svc, _ := newPharmacyFixture(t)

		result, err := svc.Search(ctx, &SearchInput{})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if result.Total != 3 {
			t.Fatalf("total = %d, want 3", result.Total)
		}

		byID := make(map[string]*PharmacyView)
		for _, view := range result.Pharmacies {
			byID[view.ID] = view
		}
		if byID["ph-1"].Status != domain.StatusGuard || byID["ph-1"].MarkerColor != "#3b82f6" {
			t.Errorf("ph-1 = %q/%q, want guard/#3b82f6", byID["ph-1"].Status, byID["ph-1"].MarkerColor)
		}
		if byID["ph-2"].Status != domain.StatusAvailable {
			t.Errorf("ph-2 status = %q, want available", byID["ph-2"].Status)
		}
		// Quantity alone never makes a pharmacy available
		if byID["ph-3"].Status != domain.StatusUnavailable || byID["ph-3"].MarkerColor != "#ef4444" {
			t.Errorf("ph-3 = %q/%q, want unavailable/#ef4444", byID["ph-3"].Status, byID["ph-3"].MarkerColor)
		}
	})

	t.Run("multiple results carry a bounds viewport", func(t *testing.T) {
		svc, _ := newPharmacyFixture(t)

		result, err := svc.Search(ctx, &SearchInput{Wilaya: "Alger"})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if result.Total != 2 {
			t.Fatalf("total = %d, want 2", result.Total)
		}
		if result.Viewport == nil || result.Viewport.Bounds == nil {
			t.Fatalf("viewport = %+v, want bounds", result.Viewport)
		}
		if result.Viewport.Padding != domain.BoundsPadding {
			t.Errorf("padding = %d", result.Viewport.Padding)
		}
	})

	t.Run("a single result centers the map", func(t *testing.T) {
		svc, _ := newPharmacyFixture(t)

		result, err := svc.Search(ctx, &SearchInput{Wilaya: "Oran"})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if result.Viewport == nil || result.Viewport.Center == nil {
			t.Fatalf("viewport = %+v, want center", result.Viewport)
		}
		if result.Viewport.Zoom != domain.SingleResultZoom {
			t.Errorf("zoom = %d, want %d", result.Viewport.Zoom, domain.SingleResultZoom)
		}
	})

	t.Run("no results keeps the prior view", func(t *testing.T) {
		svc, _ := newPharmacyFixture(t)

		result, err := svc.Search(ctx, &SearchInput{Wilaya: "Batna"})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if result.Total != 0 || result.Viewport != nil {
			t.Errorf("result = %+v, want empty with nil viewport", result)
		}
	})
}

func TestPharmacyServiceGetByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPharmacyFixture(t)

	view, err := svc.GetByID(ctx, "ph-2")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if view.Status != domain.StatusAvailable {
		t.Errorf("status = %q, want available", view.Status)
	}

	if _, err := svc.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrPharmacyNotFound) {
		t.Errorf("err = %v, want ErrPharmacyNotFound", err)
	}
}

func TestPharmacyServiceSearchMedication(t *testing.T) {
	ctx := context.Background()

	t.Run("matches case-insensitively against available items", func(t *testing.T) {
		svc, _ := newPharmacyFixture(t)

		result, err := svc.SearchMedication(ctx, &MedicationSearchInput{MedicationName: "paracétamol"})
		if err != nil {
			t.Fatalf("SearchMedication() error = %v", err)
		}
		if result.TotalFound != 2 {
			t.Fatalf("total found = %d, want 2", result.TotalFound)
		}
		for _, match := range result.Matches {
			for _, item := range match.Items {
				if !item.Available {
					t.Errorf("unavailable item matched: %+v", item)
				}
			}
		}
	})

	t.Run("skips unsubscribed pharmacies", func(t *testing.T) {
		svc, repo := newPharmacyFixture(t)

		// ph-3 carries available Aspirine but has no active subscription
		repo.pharmacies["ph-3"].Stock[0].Available = true

		result, err := svc.SearchMedication(ctx, &MedicationSearchInput{MedicationName: "Aspirine"})
		if err != nil {
			t.Fatalf("SearchMedication() error = %v", err)
		}
		if result.TotalFound != 0 {
			t.Errorf("total found = %d, want 0", result.TotalFound)
		}
	})

	t.Run("requires a medication name", func(t *testing.T) {
		svc, _ := newPharmacyFixture(t)

		if _, err := svc.SearchMedication(ctx, &MedicationSearchInput{MedicationName: "   "}); !errors.Is(err, domain.ErrEmptyMedicationName) {
			t.Errorf("err = %v, want ErrEmptyMedicationName", err)
		}
	})
}
