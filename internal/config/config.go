package config

import (
	"os"
	"strconv"
	"time"

	"edunest/internal/errors"
)

// Config represents the complete service configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Backend  BackendConfig
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the reference-data database connection settings.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// BackendConfig holds the EduNest REST backend settings. The token is
// supplied by the deployment environment; this service never mints one.
type BackendConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Backend: BackendConfig{
			BaseURL: os.Getenv("BACKEND_BASE_URL"),
			Token:   os.Getenv("BACKEND_TOKEN"),
			Timeout: time.Duration(getEnvIntOrDefault("BACKEND_TIMEOUT_SECONDS", 30)) * time.Second,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if cfg.Backend.BaseURL == "" {
		return errors.ConfigInvalid("BACKEND_BASE_URL is required")
	}
	if cfg.Backend.Token == "" {
		return errors.ConfigInvalid("BACKEND_TOKEN is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
