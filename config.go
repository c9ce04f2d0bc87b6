package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// insecureDevSecret keeps local development working without configuration.
// NOTE: override SECRET_KEY in any real deployment.
const insecureDevSecret = "insecure-dev-secret"

// Config holds the process-wide settings, loaded once at startup.
//
// Fields:
//   - HTTPAddr: bind address for the HTTP server.
//   - DatabaseDSN: sqlite DSN (sqliteshim).
//   - SecretKey: HMAC secret for signing tokens (HS256).
//   - TokenTTL: lifetime of issued tokens.
//   - TokenIssuer: value of the iss claim, also enforced on verification.
type Config struct {
	HTTPAddr    string        `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseDSN string        `env:"DATABASE_DSN" envDefault:"file:authsvc.db"`
	SecretKey   string        `env:"SECRET_KEY" envDefault:"insecure-dev-secret"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	TokenIssuer string        `env:"TOKEN_ISSUER" envDefault:"authsvc"`
}

// LoadConfig builds a Config from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values are usable.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("config: SECRET_KEY must not be empty")
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	return nil
}

// IsInsecureSecret reports whether the process is running on the
// development default signing key.
func (c *Config) IsInsecureSecret() bool {
	return c.SecretKey == insecureDevSecret
}
