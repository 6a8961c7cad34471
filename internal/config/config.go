// Package config loads service configuration from environment variables,
// with .env support for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the service needs to start.
type Config struct {
	Port        string // HTTP listen port
	DatabaseURL string // PostgreSQL connection URL
	APIKey      string // Gemini API key

	// Optional model overrides; empty values fall back to the defaults in
	// the llm package.
	ModelLite     string
	ModelStandard string
	ModelAdvanced string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present; real environment variables win.
func Load() (*Config, error) {
	// Ignore a missing .env; production sets real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getenvDefault("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		ModelLite:     os.Getenv("MODEL_LITE"),
		ModelStandard: os.Getenv("MODEL_STANDARD"),
		ModelAdvanced: os.Getenv("MODEL_ADVANCED"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
