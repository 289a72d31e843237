package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the dashboard service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Data source URLs
	CoinGeckoBaseURL   string        `env:"COINGECKO_BASE_URL,default=https://api.coingecko.com/api/v3"`
	USGSBaseURL        string        `env:"USGS_BASE_URL,default=https://earthquake.usgs.gov/fdsnws/event/1"`
	SignificantFeedURL string        `env:"SIGNIFICANT_FEED_URL,default=https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/significant_month.atom"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT,default=30s"`

	// Presets override (YAML); the embedded defaults are used when empty
	PresetsFile string `env:"PRESETS_FILE"`

	// Export storage
	StorageMode     string `env:"STORAGE_MODE,default=local"`
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`
	GCSBucket       string `env:"GCS_BUCKET"`

	// OpenAI configuration (optional narrative)
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL,default=gpt-4o-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
	LogFile     string `env:"LOG_FILE"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadWithLookuper(ctx, envconfig.OsLookuper())
}

// LoadWithLookuper loads configuration from the given lookuper
func LoadWithLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express
func (c *Config) Validate() error {
	switch c.StorageMode {
	case "local":
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when STORAGE_MODE=gcs")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_MODE %q", c.StorageMode)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

// NarrativeEnabled reports whether an OpenAI key is configured
func (c *Config) NarrativeEnabled() bool {
	return c.OpenAIAPIKey != ""
}
