// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file
is honoured through 'joho/godotenv' for development.

Usage:

	_ = config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components via constructors. The spreadsheet
    provider receives only its own projection ([Config.Sheets]).
  - Zero Hidden State: No global variables are used to store config.

The spreadsheet credential and sheet id are deliberately optional here: the
provider reports them missing on each fetch, so the server still starts and can
serve readiness and diagnostics.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/figures/internal/figure"
)

// # Configuration Schema

// Config holds all runtime configuration for the figures server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`
	LogFormat   string `env:"LOG_FORMAT"   envDefault:"json"`

	// Spreadsheet backend (Google Sheets values API)
	SheetsAPIKey  string        `env:"GOOGLE_SHEETS_API_KEY"`
	SheetID       string        `env:"GOOGLE_SHEET_ID"`
	SheetsBaseURL string        `env:"SHEETS_BASE_URL" envDefault:"https://sheets.googleapis.com/v4"`
	SheetsRange   string        `env:"SHEETS_RANGE"    envDefault:"Sheet1!A2:I"`
	SheetsTimeout time.Duration `env:"SHEETS_TIMEOUT"  envDefault:"10s"`

	// Gallery presentation
	ImageHost        string `env:"IMAGE_HOST"        envDefault:"drive.google.com"`
	ImagePlaceholder string `env:"IMAGE_PLACEHOLDER" envDefault:"/static/placeholder.svg"`

	// Key-Value store (Redis), optional. Enables the shared rate-limit window.
	RedisURL string `env:"REDIS_URL"`

	// Rate limiting per client IP
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges. All failures are reported together.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%q) must be 1-65535", c.ServerPort))
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: json, text", c.LogFormat))
	}

	if c.SheetsTimeout <= 0 {
		errs = append(errs, "SHEETS_TIMEOUT must be positive")
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, "RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimitBurst <= 0 {
		errs = append(errs, "RATE_LIMIT_BURST must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Sheets returns the provider configuration projected from c.
func (c *Config) Sheets() figure.SheetsConfig {
	return figure.SheetsConfig{
		Credential: c.SheetsAPIKey,
		SheetID:    c.SheetID,
		BaseURL:    c.SheetsBaseURL,
		Range:      c.SheetsRange,
	}
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins permitted in production.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}
