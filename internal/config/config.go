package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const devCSRFKey = "dev-csrf-key-change-in-production"

// Config holds the dashboard settings read from the environment.
type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	Env           string        `env:"ENV" envDefault:"development"`
	APIBaseURL    string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	APITimeout    time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	CookieName    string        `env:"COOKIE_NAME" envDefault:"access_token"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`
	PageLimit     int           `env:"PAGE_LIMIT" envDefault:"3"`
	CSRFKey       string        `env:"CSRF_KEY" envDefault:"dev-csrf-key-change-in-production"`
	AuthRateRPS   float64       `env:"AUTH_RATE_RPS" envDefault:"5"`
	AuthRateBurst int           `env:"AUTH_RATE_BURST" envDefault:"10"`
}

// Load parses the environment into a Config and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CSRFSecret returns the CSRF key padded or truncated to 32 bytes.
func (c Config) CSRFSecret() []byte {
	key := make([]byte, 32)
	copy(key, c.CSRFKey)
	return key
}

func (c Config) validate() error {
	if c.Env == "production" && c.CSRFKey == devCSRFKey {
		return errors.New("CSRF_KEY must be set in production environment")
	}
	if c.PageLimit < 1 {
		return fmt.Errorf("PAGE_LIMIT must be positive, got %d", c.PageLimit)
	}
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	return nil
}
