package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pavannkulkarni/travel-companion-app/internal/aggregator"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL      string
	Addr             string
	GoogleMapsAPIKey string
	BearerSecret     string
	AllowedOrigins   string
	LogLevel         string
	LogFormat        string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		return Config{}, fmt.Errorf("%w: GOOGLE_MAPS_API_KEY env var is required", aggregator.ErrMissingAPIKey)
	}

	addr := fmt.Sprintf(":%s", envOrDefault("PORT", "8080"))

	return Config{
		DatabaseURL:      dsn,
		Addr:             addr,
		GoogleMapsAPIKey: apiKey,
		BearerSecret:     os.Getenv("API_BEARER_SECRET"),
		AllowedOrigins:   envOrDefault("CORS_ALLOWED_ORIGINS", "*"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
