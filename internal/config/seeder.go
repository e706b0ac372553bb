package config

import (
	"log"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedPharmacies(); err != nil {
		log.Printf("⚠️ Pharmacy seeder skipped: %v", err)
	}
	if err := s.seedAccounts(); err != nil {
		log.Printf("⚠️ Account seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedPharmacies inserts the sample Algeria pharmacies on first boot
func (s *Seeder) seedPharmacies() error {
	var count int64
	s.db.Model(&models.Pharmacy{}).Count(&count)
	if count > 0 {
		return nil // Pharmacies already present
	}

	pharmacies := []models.Pharmacy{
		{
			ID:    uuid.New().String(),
			Name:  "Pharmacie Central Alger",
			Phone: "021-123-456",
			Email: "central@pharmacy.dz",
			Location: models.Location{
				Lat: 36.7538, Lng: 3.0588,
				Address: "1 Rue Didouche Mourad, Alger Centre",
				Wilaya:  "Alger", Commune: "Alger Centre", Quartier: "Centre-ville",
			},
			IsGuard:            true,
			SubscriptionActive: true,
			Stock: []models.StockItem{
				{Position: 0, MedicationName: "Paracétamol 500mg", Quantity: 50, Price: 120.0, Available: true},
				{Position: 1, MedicationName: "Ibuprofène 400mg", Quantity: 30, Price: 250.0, Available: true},
				{Position: 2, MedicationName: "Amoxicilline 250mg", Quantity: 0, Price: 350.0, Available: false},
			},
		},
		{
			ID:    uuid.New().String(),
			Name:  "Pharmacie Hydra",
			Phone: "021-789-012",
			Location: models.Location{
				Lat: 36.7225, Lng: 3.1572,
				Address: "Avenue des Frères Bouadou, Hydra",
				Wilaya:  "Alger", Commune: "Hydra", Quartier: "Hydra",
			},
			SubscriptionActive: true,
			Stock: []models.StockItem{
				{Position: 0, MedicationName: "Paracétamol 500mg", Quantity: 25, Price: 125.0, Available: true},
				{Position: 1, MedicationName: "Doliprane 1000mg", Quantity: 40, Price: 180.0, Available: true},
			},
		},
		{
			ID:    uuid.New().String(),
			Name:  "Pharmacie Oran Centre",
			Phone: "041-345-678",
			Location: models.Location{
				Lat: 35.6976, Lng: -0.6337,
				Address: "Boulevard de la Révolution, Oran",
				Wilaya:  "Oran", Commune: "Oran", Quartier: "Centre-ville",
			},
			SubscriptionActive: true,
			Stock: []models.StockItem{
				{Position: 0, MedicationName: "Paracétamol 500mg", Quantity: 35, Price: 115.0, Available: true},
				{Position: 1, MedicationName: "Aspirine 500mg", Quantity: 20, Price: 200.0, Available: true},
			},
		},
	}

	if err := s.db.Create(&pharmacies).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d sample pharmacies", len(pharmacies))
	return nil
}

// seedAccounts seeds one staff and one admin account for development
func (s *Seeder) seedAccounts() error {
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil // Accounts already present
	}

	var first models.Pharmacy
	if err := s.db.Order("created_at ASC").First(&first).Error; err != nil {
		return err
	}

	staffPassword, err := password.Hash("password123")
	if err != nil {
		return err
	}

	// Dev-only credentials; create real accounts through registration
	adminPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	users := []models.User{
		{
			Username:   "pharmacie1",
			Password:   staffPassword,
			Role:       "pharmacy",
			PharmacyID: first.ID,
			Phone:      first.Phone,
			IsActive:   true,
		},
		{
			Username: "admin",
			Password: adminPassword,
			Role:     "admin",
			IsActive: true,
		},
	}

	if err := s.db.Create(&users).Error; err != nil {
		return err
	}

	log.Println("✅ Seeded staff and admin accounts")
	return nil
}
