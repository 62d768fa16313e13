// Package config loads application settings from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the client.
type Config struct {
	// BaseURL is the address of the remote form service.
	BaseURL string `env:"FORMFILL_BASE_URL" envDefault:"https://dynamic-form-generator-9rl7.onrender.com"`
	// HTTPTimeout bounds every request to the service.
	HTTPTimeout time.Duration `env:"FORMFILL_HTTP_TIMEOUT" envDefault:"10s"`
	LogLevel    string        `env:"FORMFILL_LOG_LEVEL" envDefault:"warn"`
	Env         string        `env:"FORMFILL_ENV" envDefault:"production"`
}

// IsDevelopment reports whether the client runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// SlogLevel maps the configured level name onto slog's scale. Unknown
// names fall back to warn so a typo never silences errors.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Load reads an optional .env file, parses the environment, and
// validates the result.
func Load() (*Config, error) {
	// Missing .env is fine; variables may come from the real environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("FORMFILL_BASE_URL %q is not an absolute URL", cfg.BaseURL)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("FORMFILL_HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}
	return cfg, nil
}
