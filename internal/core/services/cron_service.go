package services

import (
	"context"
	"log"

	"pharmadz/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled housekeeping jobs
type CronService struct {
	scheduler        *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	sessionTokenRepo repositories.SessionTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		scheduler:        cron.New(),
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
		sessionTokenRepo: repositories.NewSessionTokenRepository(db),
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() {
	// Purge expired auth tokens nightly
	if _, err := s.scheduler.AddFunc("30 3 * * *", s.purgeExpiredTokens); err != nil {
		log.Printf("❌ Failed to schedule token purge: %v", err)
		return
	}

	s.scheduler.Start()
	log.Println("✅ Cron jobs started")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.scheduler.Stop()
	log.Println("🛑 Cron jobs stopped")
}

// purgeExpiredTokens deletes expired refresh and session tokens.
func (s *CronService) purgeExpiredTokens() {
	ctx := context.Background()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("⚠️ Refresh token purge failed: %v", err)
	}
	if err := s.sessionTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("⚠️ Session token purge failed: %v", err)
	}

	log.Println("✅ Expired auth tokens purged")
}
