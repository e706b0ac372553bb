package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Database  DatabaseConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	OAuth     OAuthConfig
	Assistant AssistantConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// OAuthConfig holds the external identity provider configuration. The
// provider itself is an external collaborator; only its profile endpoint is
// consumed here.
type OAuthConfig struct {
	ProfileURL       string
	ClientID         string
	ClientSecret     string
	LoginRedirectURL string // frontend login screen receiving #session_id=...
	TokenTTLMins     int    // lifetime of the one-time session token
}

// AssistantConfig holds the pharmacy assistant (chat completions) settings
type AssistantConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "8001"),
		Database:  loadDatabaseConfig(appMode),
		JWT:       loadJWTConfig(appMode),
		Cookie:    loadCookieConfig(appMode),
		OAuth:     loadOAuthConfig(),
		Assistant: loadAssistantConfig(),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "pharmacy_platform"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadOAuthConfig loads the identity provider config
func loadOAuthConfig() OAuthConfig {
	ttl, _ := strconv.Atoi(getEnv("OAUTH_TOKEN_TTL_MINUTES", "10"))

	return OAuthConfig{
		ProfileURL:       getEnv("OAUTH_PROFILE_URL", ""),
		ClientID:         getEnv("OAUTH_CLIENT_ID", ""),
		ClientSecret:     getEnv("OAUTH_CLIENT_SECRET", ""),
		LoginRedirectURL: getEnv("OAUTH_LOGIN_REDIRECT_URL", "/login"),
		TokenTTLMins:     ttl,
	}
}

// loadAssistantConfig loads the assistant config
func loadAssistantConfig() AssistantConfig {
	maxTokens, _ := strconv.Atoi(getEnv("ASSISTANT_MAX_TOKENS", "300"))

	return AssistantConfig{
		BaseURL:   getEnv("ASSISTANT_BASE_URL", "https://api.openai.com/v1"),
		APIKey:    getEnv("OPENAI_API_KEY", ""),
		Model:     getEnv("ASSISTANT_MODEL", "gpt-3.5-turbo"),
		MaxTokens: maxTokens,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://pharmadz.app"
	}
	return origins
}
