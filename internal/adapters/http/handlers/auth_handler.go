package handlers

import (
	"errors"
	"strings"
	"time"

	"pharmadz/internal/config"
	"pharmadz/internal/core/domain"
	"pharmadz/internal/core/services"
	"pharmadz/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService  *services.AuthService
	oauthService *services.OAuthService
	cfg          *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, oauthService *services.OAuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		oauthService: oauthService,
		cfg:          cfg,
	}
}

// RegisterRequest represents staff registration request body
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	PharmacyID      string `json:"pharmacy_id"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles staff registration
// @Summary Register pharmacy staff
// @Description Create a pharmacy staff account bound to an existing pharmacy
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}
	if len(req.Password) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}
	if req.PharmacyID == "" {
		return response.BadRequest(c, "Pharmacy is required")
	}

	input := &services.RegisterInput{
		Username:        strings.TrimSpace(req.Username),
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		PharmacyID:      strings.TrimSpace(req.PharmacyID),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
	}

	user, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordMismatch):
			return response.BadRequest(c, "Passwords do not match")
		case errors.Is(err, domain.ErrPharmacyRequired):
			return response.BadRequest(c, "Pharmacy is required")
		case errors.Is(err, domain.ErrPharmacyNotFound):
			return response.NotFound(c, "Pharmacy not found")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "Username already exists")
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	// Registration never opens a session; the client routes to login
	return response.Created(c, "Account registered successfully", fiber.Map{
		"user":        user,
		"redirect_to": "/login",
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user and return tokens plus the role redirect
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid username or password")
		case errors.Is(err, domain.ErrUserInactive):
			return response.Forbidden(c, "User account is inactive")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
		"redirect_to":  result.RedirectTo,
	})
}

// SessionData exchanges a one-time session token for a session
// @Summary Exchange session token
// @Description Swap a one-time OAuth session token for a session; a token works exactly once
// @Tags Auth
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "One-time session token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/session-data [get]
func (h *AuthHandler) SessionData(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Get("X-Session-ID"))
	if token == "" {
		return response.BadRequest(c, "Session token required")
	}

	result, err := h.authService.ExchangeSessionToken(c.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			return response.Unauthorized(c, "Session token expired")
		case errors.Is(err, domain.ErrTokenInvalid):
			return response.Unauthorized(c, "Invalid or already used session token")
		case errors.Is(err, domain.ErrUserInactive):
			return response.Forbidden(c, "User account is inactive")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.Unauthorized(c, "Invalid session token")
		default:
			return response.InternalServerError(c, "Failed to resolve session")
		}
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Session resolved successfully", fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
		"redirect_to":  result.RedirectTo,
	})
}

// OAuthCallback completes the identity provider round trip
// @Summary OAuth callback
// @Description Resolve the provider profile and redirect to the login screen with a one-time session token
// @Tags Auth
// @Produce json
// @Param access_token query string true "Provider access token"
// @Success 302
// @Failure 401 {object} response.Response
// @Router /auth/oauth/callback [get]
func (h *AuthHandler) OAuthCallback(c *fiber.Ctx) error {
	accessToken := c.Query("access_token")
	if accessToken == "" {
		return response.BadRequest(c, "Access token required")
	}

	redirectURL, err := h.oauthService.HandleCallback(c.Context(), accessToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProviderUnavailable):
			return response.ServiceUnavailable(c, "Identity provider unavailable")
		case errors.Is(err, domain.ErrTokenInvalid):
			return response.Unauthorized(c, "Invalid provider token")
		case errors.Is(err, domain.ErrUserInactive):
			return response.Forbidden(c, "User account is inactive")
		default:
			return response.InternalServerError(c, "Failed to complete login")
		}
	}

	return c.Redirect(redirectURL, fiber.StatusFound)
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Refresh access token using refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token not found")
	}

	result, err := h.authService.RefreshToken(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Refresh token expired, please login again")
		case errors.Is(err, domain.ErrTokenInvalid):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Invalid refresh token")
		case errors.Is(err, domain.ErrUserInactive):
			h.clearAuthCookies(c)
			return response.Forbidden(c, "User account is inactive")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Token refreshed successfully", fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// Logout handles user logout
// @Summary Logout user
// @Description Logout user and revoke refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken != "" {
		_ = h.authService.Logout(c.Context(), refreshToken)
	}

	h.clearAuthCookies(c)

	return response.Success(c, "Logged out successfully", nil)
}

// LogoutAll handles logout from all devices
// @Summary Logout from all devices
// @Description Revoke all refresh tokens for the user
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.LogoutAll(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to logout from all devices")
	}

	h.clearAuthCookies(c)

	return response.Success(c, "Logged out from all devices", nil)
}

// Me returns the current user info
// @Summary Get current user
// @Description Get the currently authenticated user's information
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// setAuthCookies sets access and refresh token cookies
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearAuthCookies clears auth cookies
func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
