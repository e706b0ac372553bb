package services

import (
	"context"
	"errors"
	"log"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/adapters/persistence/repositories"
	"pharmadz/internal/config"
	"pharmadz/internal/core/domain"
	"pharmadz/internal/pkg/jwt"
	"pharmadz/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	sessionTokenRepo repositories.SessionTokenRepository
	pharmacyRepo     repositories.PharmacyRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	sessionTokenRepo repositories.SessionTokenRepository,
	pharmacyRepo repositories.PharmacyRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		sessionTokenRepo: sessionTokenRepo,
		pharmacyRepo:     pharmacyRepo,
		cfg:              cfg,
	}
}

// RegisterInput represents staff registration input
type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	PharmacyID      string `json:"pharmacy_id" validate:"required"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response. RedirectTo is the
// role-dependent screen the client navigates to after the session opens.
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	RedirectTo   string               `json:"redirect_to"`
}

// Register creates a new pharmacy staff account. Registration never opens a
// session; the new account signs in through the regular login flow.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	// 1. Both password fields must match before anything is stored
	if input.Password != input.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	// 2. Staff accounts must be bound to an existing pharmacy
	if input.PharmacyID == "" {
		return nil, domain.ErrPharmacyRequired
	}
	if _, err := s.pharmacyRepo.GetByID(ctx, input.PharmacyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPharmacyNotFound
		}
		return nil, err
	}

	// 3. Check if username already exists
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// 4. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create user
	user := &models.User{
		Username:   input.Username,
		Password:   hashedPassword,
		Role:       string(domain.RolePharmacy),
		PharmacyID: input.PharmacyID,
		Phone:      input.Phone,
		Email:      input.Email,
		IsActive:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Staff account registered: %s (pharmacy: %s)", user.Username, user.PharmacyID)

	return user.ToResponse(), nil
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by username
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Open the session
	resp, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)
	return resp, nil
}

// ExchangeSessionToken swaps a one-time OAuth session token for a session.
// The token is consumed atomically: a second exchange with the same token
// fails even when two requests race.
func (s *AuthService) ExchangeSessionToken(ctx context.Context, token string) (*AuthResponse, error) {
	// 1. Look up the token
	stored, err := s.sessionTokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	// 2. Expired tokens are rejected before being consumed
	if stored.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// 3. Consume exactly once
	if err := s.sessionTokenRepo.Consume(ctx, stored.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	// 4. Resolve the user behind the token
	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	resp, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Session token exchanged for user: %s", user.Username)
	return resp, nil
}

// RefreshToken refreshes the access token using refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	// 2. Hash the token to find in DB
	tokenHash := password.HashToken(refreshToken)

	// 3. Find token in DB
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	// 4. Check if token is revoked or expired
	if storedToken.IsRevoked() {
		return nil, domain.ErrTokenInvalid
	}
	if storedToken.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// 5. Get user
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	// 6. Revoke old refresh token (token rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	resp, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Username)
	return resp, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)

	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// openSession issues a token pair for the user and persists the refresh half.
func (s *AuthService) openSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		RedirectTo:   domain.Role(user.Role).RedirectPath(),
	}, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.PharmacyID,
		user.Username,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
