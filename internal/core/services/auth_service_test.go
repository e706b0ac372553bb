package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/config"
	"pharmadz/internal/core/domain"
	"pharmadz/internal/pkg/password"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		OAuth: config.OAuthConfig{TokenTTLMins: 10},
	}
}

type authFixture struct {
	service      *AuthService
	userRepo     *fakeUserRepo
	refreshRepo  *fakeRefreshTokenRepo
	sessionRepo  *fakeSessionTokenRepo
	pharmacyRepo *fakePharmacyRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	refreshRepo := newFakeRefreshTokenRepo()
	sessionRepo := newFakeSessionTokenRepo()
	pharmacyRepo := newFakePharmacyRepo()

	pharmacyRepo.pharmacies["ph-1"] = &models.Pharmacy{
		ID:   "ph-1",
		Name: "Pharmacie Central Alger",
	}

	staffPassword, err := password.Hash("password123")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	adminPassword, err := password.Hash("admin123456")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	ctx := context.Background()
	_ = userRepo.Create(ctx, &models.User{
		Username:   "pharmacie1",
		Password:   staffPassword,
		Role:       string(domain.RolePharmacy),
		PharmacyID: "ph-1",
		IsActive:   true,
	})
	_ = userRepo.Create(ctx, &models.User{
		Username: "admin",
		Password: adminPassword,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	})

	return &authFixture{
		service:      NewAuthService(userRepo, refreshRepo, sessionRepo, pharmacyRepo, testConfig()),
		userRepo:     userRepo,
		refreshRepo:  refreshRepo,
		sessionRepo:  sessionRepo,
		pharmacyRepo: pharmacyRepo,
	}
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("staff login routes to the pharmacy dashboard", func(t *testing.T) {
		f := newAuthFixture(t)

		result, err := f.service.Login(ctx, &LoginInput{Username: "pharmacie1", Password: "password123"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if result.User.Role != string(domain.RolePharmacy) {
			t.Errorf("role = %q, want pharmacy", result.User.Role)
		}
		if result.RedirectTo != "/pharmacy-dashboard" {
			t.Errorf("redirect = %q, want /pharmacy-dashboard", result.RedirectTo)
		}
		if result.AccessToken == "" || result.RefreshToken == "" {
			t.Error("missing tokens in auth response")
		}
		if len(f.refreshRepo.tokens) != 1 {
			t.Errorf("stored refresh tokens = %d, want 1", len(f.refreshRepo.tokens))
		}
	})

	t.Run("admin login routes to the back office", func(t *testing.T) {
		f := newAuthFixture(t)

		result, err := f.service.Login(ctx, &LoginInput{Username: "admin", Password: "admin123456"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if result.RedirectTo != "/admin" {
			t.Errorf("redirect = %q, want /admin", result.RedirectTo)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.service.Login(ctx, &LoginInput{Username: "pharmacie1", Password: "wrong"})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.service.Login(ctx, &LoginInput{Username: "nobody", Password: "password123"})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		f := newAuthFixture(t)
		user, _ := f.userRepo.GetByUsername(ctx, "pharmacie1")
		user.IsActive = false
		_ = f.userRepo.Update(ctx, user)

		_, err := f.service.Login(ctx, &LoginInput{Username: "pharmacie1", Password: "password123"})
		if !errors.Is(err, domain.ErrUserInactive) {
			t.Errorf("err = %v, want ErrUserInactive", err)
		}
	})
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a staff account without opening a session", func(t *testing.T) {
		f := newAuthFixture(t)

		user, err := f.service.Register(ctx, &RegisterInput{
			Username:        "pharmacie2",
			Password:        "secret-pass-1",
			ConfirmPassword: "secret-pass-1",
			PharmacyID:      "ph-1",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if user.Role != string(domain.RolePharmacy) {
			t.Errorf("role = %q, want pharmacy", user.Role)
		}
		if len(f.refreshRepo.tokens) != 0 {
			t.Errorf("register stored %d refresh tokens, want none", len(f.refreshRepo.tokens))
		}
	})

	t.Run("password mismatch stores nothing", func(t *testing.T) {
		f := newAuthFixture(t)
		before := len(f.userRepo.users)

		_, err := f.service.Register(ctx, &RegisterInput{
			Username:        "pharmacie2",
			Password:        "secret-pass-1",
			ConfirmPassword: "different",
			PharmacyID:      "ph-1",
		})
		if !errors.Is(err, domain.ErrPasswordMismatch) {
			t.Fatalf("err = %v, want ErrPasswordMismatch", err)
		}
		if len(f.userRepo.users) != before {
			t.Error("user stored despite password mismatch")
		}
	})

	t.Run("unknown pharmacy", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.service.Register(ctx, &RegisterInput{
			Username:        "pharmacie2",
			Password:        "secret-pass-1",
			ConfirmPassword: "secret-pass-1",
			PharmacyID:      "missing",
		})
		if !errors.Is(err, domain.ErrPharmacyNotFound) {
			t.Errorf("err = %v, want ErrPharmacyNotFound", err)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.service.Register(ctx, &RegisterInput{
			Username:        "pharmacie1",
			Password:        "secret-pass-1",
			ConfirmPassword: "secret-pass-1",
			PharmacyID:      "ph-1",
		})
		if !errors.Is(err, domain.ErrUserAlreadyExists) {
			t.Errorf("err = %v, want ErrUserAlreadyExists", err)
		}
	})
}

func TestAuthServiceExchangeSessionToken(t *testing.T) {
	ctx := context.Background()

	seedToken := func(f *authFixture, token string, expiresAt time.Time) {
		user, _ := f.userRepo.GetByUsername(ctx, "pharmacie1")
		_ = f.sessionRepo.Create(ctx, &models.SessionToken{
			Token:     token,
			UserID:    user.ID,
			ExpiresAt: expiresAt,
		})
	}

	t.Run("a token works exactly once", func(t *testing.T) {
		f := newAuthFixture(t)
		seedToken(f, "one-time", time.Now().Add(10*time.Minute))

		result, err := f.service.ExchangeSessionToken(ctx, "one-time")
		if err != nil {
			t.Fatalf("first exchange error = %v", err)
		}
		if result.User.Username != "pharmacie1" {
			t.Errorf("user = %q, want pharmacie1", result.User.Username)
		}
		if result.RedirectTo != "/pharmacy-dashboard" {
			t.Errorf("redirect = %q, want /pharmacy-dashboard", result.RedirectTo)
		}

		_, err = f.service.ExchangeSessionToken(ctx, "one-time")
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("second exchange err = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		f := newAuthFixture(t)
		seedToken(f, "stale", time.Now().Add(-time.Minute))

		_, err := f.service.ExchangeSessionToken(ctx, "stale")
		if !errors.Is(err, domain.ErrTokenExpired) {
			t.Errorf("err = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.service.ExchangeSessionToken(ctx, "never-issued")
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("err = %v, want ErrTokenInvalid", err)
		}
	})
}

func TestAuthServiceRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		f := newAuthFixture(t)

		login, err := f.service.Login(ctx, &LoginInput{Username: "pharmacie1", Password: "password123"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		refreshed, err := f.service.RefreshToken(ctx, login.RefreshToken)
		if err != nil {
			t.Fatalf("RefreshToken() error = %v", err)
		}
		if refreshed.AccessToken == "" {
			t.Error("missing new access token")
		}

		// The rotated-out token must no longer work
		if _, err := f.service.RefreshToken(ctx, login.RefreshToken); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("reused token err = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newAuthFixture(t)

		if _, err := f.service.RefreshToken(ctx, "not-a-jwt"); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("err = %v, want ErrTokenInvalid", err)
		}
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	login, err := f.service.Login(ctx, &LoginInput{Username: "pharmacie1", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := f.service.Logout(ctx, login.RefreshToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if _, err := f.service.RefreshToken(ctx, login.RefreshToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("refresh after logout err = %v, want ErrTokenInvalid", err)
	}
}
