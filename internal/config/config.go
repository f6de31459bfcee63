package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingDatabaseConfig is returned when the database URL or auth token is not set
var ErrMissingDatabaseConfig = errors.New("missing database URL or auth token")

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	Database    DatabaseConfig
	Listing     ListingConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL              string
	AuthToken        string
	MaxOpenConns     int
	ConnMaxLifetime  time.Duration
	AutoCreateSchema bool
}

// ListingConfig bounds the page sizes accepted by the list handler
type ListingConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Validate checks that the database endpoint and credential are present
func (c DatabaseConfig) Validate() error {
	if c.URL == "" || c.AuthToken == "" {
		return ErrMissingDatabaseConfig
	}
	return nil
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8888")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1m")
	v.SetDefault("DB_AUTO_CREATE_SCHEMA", false)
	v.SetDefault("LIST_DEFAULT_PAGE_SIZE", 50)
	v.SetDefault("LIST_MAX_PAGE_SIZE", 100)

	lifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			URL:              v.GetString("TURSO_DB_URL"),
			AuthToken:        v.GetString("TURSO_DB_AUTH_TOKEN"),
			MaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime:  lifetime,
			AutoCreateSchema: v.GetBool("DB_AUTO_CREATE_SCHEMA"),
		},
		Listing: ListingConfig{
			DefaultPageSize: v.GetInt("LIST_DEFAULT_PAGE_SIZE"),
			MaxPageSize:     v.GetInt("LIST_MAX_PAGE_SIZE"),
		},
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
