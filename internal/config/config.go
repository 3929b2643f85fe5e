// Package config loads server configuration from a .env file (if present)
// and environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the server configuration.
type Config struct {
	Env       string // "development" or "production"
	Addr      string
	DBPath    string
	LogLevel  string
	LogFormat string

	// APIBaseURL is the public base URL handed to API clients.
	// Required in production, optional elsewhere.
	APIBaseURL string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// Load reads configuration, layering environment variables over a .env
// file. A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:        getEnv("APP_ENV", "development"),
		Addr:       getEnv("UGRECOVER_ADDR", ":8080"),
		DBPath:     getEnv("UGRECOVER_DB", "ugrecover.sqlite3"),
		LogLevel:   getEnv("UGRECOVER_LOG_LEVEL", "info"),
		LogFormat:  getEnv("UGRECOVER_LOG_FORMAT", "json"),
		APIBaseURL: os.Getenv("UGRECOVER_API_URL"),
	}

	if cfg.Env == "production" && cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("UGRECOVER_API_URL is required in production")
	}

	return cfg, nil
}
