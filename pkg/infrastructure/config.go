package infrastructure

import (
	"fmt"
	"os"
)

// Config collects everything the service reads from the environment.
// Secrets (database DSN, API key) have no baked-in defaults: they must be
// injected, never committed.
type Config struct {
	Port        string
	DatabaseURL string

	AnthropicAPIKey string
	AnthropicModel  string

	// DataDir is the root for uploaded documents and generated exports,
	// served back under /files.
	DataDir string

	TemplateDir string
	ChromePath  string

	LogLevel string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", "3000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  os.Getenv("ANTHROPIC_MODEL"),
		DataDir:         getenv("DATA_DIR", "proposal-data"),
		TemplateDir:     getenv("TEMPLATE_DIR", "templates"),
		ChromePath:      os.Getenv("CHROME_PATH"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}

	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
