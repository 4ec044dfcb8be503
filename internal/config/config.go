package config

import (
	"os"
	"time"
)

// Config holds everything the server reads from the environment.
// Defaults mirror local development; production sets real values.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigin  string
}

// Load builds a Config from environment variables. godotenv is loaded
// by main before this runs, so a .env file works too.
func Load() Config {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: getenv("DATABASE_URL", "sqlite://backend.db"),
		JWTSecret:   getenv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:    24 * time.Hour,
		CORSOrigin:  getenv("CORS_ORIGIN", "*"),
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.TokenTTL = d
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
