package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/currency"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"120s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"120s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	ProviderBaseURL     string        `envconfig:"PROVIDER_BASE_URL" default:"https://api.payroll.example.com/rest/v2"`
	ProviderAPIKey      string        `envconfig:"PROVIDER_API_KEY" required:"true"`
	ProviderPageSize    int           `envconfig:"PROVIDER_PAGE_SIZE" default:"50"`
	ProviderPageTimeout time.Duration `envconfig:"PROVIDER_PAGE_TIMEOUT" default:"15s"`

	ReportingCurrency string `envconfig:"REPORTING_CURRENCY" default:"USD"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.ProviderAPIKey == "" {
		return nil, errors.New("provider api key must be provided")
	}
	if cfg.ProviderPageSize <= 0 {
		return nil, errors.New("provider page size must be positive")
	}
	if _, err := currency.ParseISO(cfg.ReportingCurrency); err != nil {
		return nil, fmt.Errorf("reporting currency %q is not a valid ISO code: %w", cfg.ReportingCurrency, err)
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
