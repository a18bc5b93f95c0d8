package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything the process reads from the environment. It is
// loaded once in main and passed to the constructors that need it - request
// handlers never touch os.Getenv themselves.
type Config struct {
	Addr         string
	DatabaseURL  string
	TemplatesDir string

	Session SessionConfig
	Google  GoogleConfig
	Suggest SuggestConfig
}

// SessionConfig drives session token issuance and verification.
type SessionConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// GoogleConfig holds the OAuth credentials for the Google sign-in provider.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// SuggestConfig points at the hosted generative model used for title
// suggestions.
type SuggestConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		Addr:         getenv("ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DB_URL"),
		TemplatesDir: getenv("TEMPLATES_DIR", "templates"),
		Session: SessionConfig{
			Secret:   os.Getenv("JWT_SECRET"),
			Issuer:   getenv("SESSION_ISSUER", "taskdeck"),
			Audience: getenv("SESSION_AUDIENCE", "taskdeck"),
			TTL:      24 * time.Hour,
		},
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			CallbackURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
		},
		Suggest: SuggestConfig{
			BaseURL: getenv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   getenv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: 10 * time.Second,
		},
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}
	if cfg.Session.Secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
