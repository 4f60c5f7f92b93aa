// Package config loads and validates application settings from environment
// variables, with optional .env support for local development.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the server needs.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	MigrationsPath string

	JWTSecret string
	JWTExpiry time.Duration

	LogLevel string

	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment and validates it.
// A .env file is optional; real environments provide variables directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "eventmanagement"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@eventmanagement.local"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}

	expiry := getEnv("JWT_EXPIRY", "24h")
	d, err := time.ParseDuration(expiry)
	if err != nil {
		return nil, fmt.Errorf("config: JWT_EXPIRY invalid (%q): %w", expiry, err)
	}
	cfg.JWTExpiry = d

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("config: JWT_EXPIRY must be positive")
	}
	if strings.TrimSpace(c.DBName) == "" {
		return fmt.Errorf("config: DB_NAME is required")
	}
	return nil
}

// DSN builds a libpq-compatible connection string for pgx.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// URL builds a postgres:// URL, used by the migration runner.
func (c *Config) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
