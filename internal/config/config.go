package config

import (
	"fmt"
	"os"

	"desexport/internal/logger"
)

type Config struct {
	// Stripe Configuration
	StripeAPIKey string

	// Export Configuration
	OutputDir string

	// Optional: Google Sheets delivery
	SheetURL       string
	SheetWorksheet string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		StripeAPIKey:   getEnv("STRIPE_API_KEY", ""),
		OutputDir:      getEnv("DES_OUTPUT_DIR", "output"),
		SheetURL:       getEnv("DES_SHEET_URL", ""),
		SheetWorksheet: getEnv("DES_SHEET_WORKSHEET", "DES"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// validate checks the static parts of the configuration. The Stripe API key
// is deliberately not required here: commands that need it report the
// missing-credential condition themselves, before any network call.
func (c *Config) validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("DES_OUTPUT_DIR must not be empty")
	}
	if c.SheetURL != "" && c.SheetWorksheet == "" {
		return fmt.Errorf("DES_SHEET_WORKSHEET is required when DES_SHEET_URL is set")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
