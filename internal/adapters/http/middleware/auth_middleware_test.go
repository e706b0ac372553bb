package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pharmadz/internal/config"
	"pharmadz/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
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
	}
}

func newProtectedApp(cfg *config.Config, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()

	chain := []fiber.Handler{AuthMiddleware(cfg)}
	chain = append(chain, extra...)
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"username":    c.Locals("username"),
			"role":        c.Locals("role"),
			"pharmacy_id": c.Locals("pharmacyID"),
		})
	})

	app.Get("/protected", chain...)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()

	t.Run("rejects requests without a token", func(t *testing.T) {
		app := newProtectedApp(cfg)

		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		app := newProtectedApp(cfg)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("accepts a bearer token and sets the claims", func(t *testing.T) {
		app := newProtectedApp(cfg)

		token, err := jwt.GenerateAccessToken(1, "ph-1", "pharmacie1", "pharmacy", cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
		if err != nil {
			t.Fatalf("generating token: %v", err)
		}

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var body map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body["username"] != "pharmacie1" || body["role"] != "pharmacy" || body["pharmacy_id"] != "ph-1" {
			t.Errorf("claims = %v", body)
		}
	})

	t.Run("accepts the token from the cookie", func(t *testing.T) {
		app := newProtectedApp(cfg)

		token, err := jwt.GenerateAccessToken(2, "", "admin", "admin", cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
		if err != nil {
			t.Fatalf("generating token: %v", err)
		}

		req := httptest.NewRequest("GET", "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})
}

func TestRoleMiddleware(t *testing.T) {
	cfg := testConfig()

	staffToken, err := jwt.GenerateAccessToken(1, "ph-1", "pharmacie1", "pharmacy", cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	adminToken, err := jwt.GenerateAccessToken(2, "", "admin", "admin", cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	t.Run("staff role cannot reach the back office", func(t *testing.T) {
		app := newProtectedApp(cfg, AdminOnly())

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+staffToken)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
	})

	t.Run("admin role passes", func(t *testing.T) {
		app := newProtectedApp(cfg, AdminOnly())

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("admin role cannot use the staff surface", func(t *testing.T) {
		app := newProtectedApp(cfg, PharmacyStaffOnly())

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
	})
}
