package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/adapters/persistence/repositories"
	"pharmadz/internal/config"
	"pharmadz/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OAuthService resolves identity-provider callbacks into local accounts and
// one-time session tokens. The provider is only consumed through its profile
// endpoint; the authorization leg happens on the client.
type OAuthService struct {
	userRepo         repositories.UserRepository
	sessionTokenRepo repositories.SessionTokenRepository
	cfg              *config.Config
	client           *http.Client
}

// NewOAuthService creates a new OAuth service
func NewOAuthService(
	userRepo repositories.UserRepository,
	sessionTokenRepo repositories.SessionTokenRepository,
	cfg *config.Config,
) *OAuthService {
	return &OAuthService{
		userRepo:         userRepo,
		sessionTokenRepo: sessionTokenRepo,
		cfg:              cfg,
		client:           &http.Client{Timeout: 10 * time.Second},
	}
}

// Profile is the subset of the provider profile the platform needs.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// FetchProfile loads the provider profile behind an access token.
func (s *OAuthService) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	if s.cfg.OAuth.ProfileURL == "" {
		return nil, domain.ErrProviderUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.OAuth.ProfileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domain.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️ Provider profile request failed: status %d", resp.StatusCode)
		return nil, domain.ErrTokenInvalid
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.ID == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &profile, nil
}

// HandleCallback completes the login round trip: it resolves the provider
// profile, upserts the matching account and mints a one-time session token.
// The returned URL sends the browser back to the login screen carrying the
// token in the fragment, where the client exchanges it exactly once.
func (s *OAuthService) HandleCallback(ctx context.Context, accessToken string) (string, error) {
	profile, err := s.FetchProfile(ctx, accessToken)
	if err != nil {
		return "", err
	}

	user, err := s.upsertUser(ctx, profile)
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", domain.ErrUserInactive
	}

	token, err := s.mintSessionToken(ctx, user.ID)
	if err != nil {
		return "", err
	}

	log.Printf("✅ OAuth callback resolved for user: %s", user.Username)

	return fmt.Sprintf("%s#session_id=%s", s.cfg.OAuth.LoginRedirectURL, token), nil
}

// upsertUser finds the account behind a provider profile, creating a staff
// account on first login. Accounts created this way start without a pharmacy
// binding; an admin attaches one later.
func (s *OAuthService) upsertUser(ctx context.Context, profile *Profile) (*models.User, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// No linked account yet: match by username (email) or create fresh
	username := profile.Email
	if username == "" {
		username = profile.ID
	}

	user, err = s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		user.GoogleID = &profile.ID
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{
		Username: username,
		Email:    profile.Email,
		GoogleID: &profile.ID,
		Role:     string(domain.RolePharmacy),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Account created from provider profile: %s", user.Username)
	return user, nil
}

// mintSessionToken stores a fresh one-time token for the user.
func (s *OAuthService) mintSessionToken(ctx context.Context, userID uint) (string, error) {
	token := uuid.New().String()

	record := &models.SessionToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.OAuth.TokenTTLMins) * time.Minute),
	}
	if err := s.sessionTokenRepo.Create(ctx, record); err != nil {
		return "", err
	}

	return token, nil
}
