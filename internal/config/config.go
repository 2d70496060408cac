package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	Environment  string // "development" or "production"

	// Authentication
	JWTSecret        string
	SigningAlgorithm string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	VerifyTokenTTL   time.Duration

	// Links embedded in outbound emails point at the frontend.
	FrontendURL string
	CORSOrigins []string

	// Outbound mail API
	MailAPIURL string
	MailAPIKey string
	MailFrom   string
}

// Load loads configuration from environment variables or sets defaults.
// The signing secret has no default: a process serving tokens signed with a
// known empty secret would make every token forgeable, so startup fails instead.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	accessMin, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil {
		return nil, err
	}
	refreshMin, err := strconv.Atoi(getEnv("REFRESH_TOKEN_EXPIRE_MINUTES", "1440"))
	if err != nil {
		return nil, err
	}
	verifyHours, err := strconv.Atoi(getEnv("VERIFY_TOKEN_EXPIRE_HOURS", "24"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./marketpulse.db"),
		Environment:      getEnv("APP_ENV", "development"),
		JWTSecret:        secret,
		SigningAlgorithm: getEnv("SIGNING_ALGORITHM", "HS256"),
		AccessTokenTTL:   time.Duration(accessMin) * time.Minute,
		RefreshTokenTTL:  time.Duration(refreshMin) * time.Minute,
		VerifyTokenTTL:   time.Duration(verifyHours) * time.Hour,
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
		CORSOrigins:      strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),
		MailAPIURL:       getEnv("MAIL_API_URL", ""),
		MailAPIKey:       getEnv("MAIL_API_KEY", ""),
		MailFrom:         getEnv("MAIL_FROM", "noreply@themarketpulse.app"),
	}, nil
}

// IsProduction reports whether the app runs with the production configuration.
// Debug-only behavior such as logging live verification links must check this.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
