// Package config provides startup configuration loaded from environment
// variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// devSecret is the fallback signing secret for local development. Production
// refuses to start with it.
const devSecret = "dev-secret-change-in-production"

// Config holds all application configuration.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Env         string `env:"ENV" envDefault:"development"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/authgate?parseTime=true"`

	// Token signing secret and lifetime. The secret must be externally
	// supplied outside development.
	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	// Password hashing work factor (bcrypt rounds).
	HashCost int `env:"HASH_COST" envDefault:"10"`

	// Per-IP rate limit applied to the register/login endpoints.
	AuthRateRPS   float64 `env:"AUTH_RATE_RPS" envDefault:"5"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST" envDefault:"10"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load parses environment variables into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.IsProduction() && cfg.JWTSecret == devSecret {
		return nil, errors.New("JWT_SECRET must be set in production environment")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must not be empty")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("TOKEN_TTL must be positive")
	}

	return cfg, nil
}
