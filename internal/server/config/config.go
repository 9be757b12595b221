// Package config handles configuration for the blog server: defaults, the
// environment (optionally seeded from a .env file), a JSON overlay and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the blog server. It is built once at
// startup and handed to every component that needs it.
//
// Fields:
//   - Port: HTTP listen port.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - SecretKey: HMAC secret for signing access tokens (HS256). No default.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - CorsAllowedOrigins: origins allowed to call the API from a browser.
//   - LogLevel: debug, info, warn or error.
//   - S3*: object storage for post images; empty S3Bucket disables images.
type Config struct {
	Port                         string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	CorsAllowedOrigins           []string
	LogLevel                     string
	S3AccessKey                  string
	S3SecretKey                  string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
}

// LoadDefaults populates Config with development defaults. The signing
// secret and the DSN are deliberately left empty.
func (c *Config) LoadDefaults() {
	c.Port = "3000"
	c.AccessTokenValidityDuration = 1 * time.Hour
	c.RefreshTokenValidityDuration = 7 * 24 * time.Hour
	c.CorsAllowedOrigins = []string{"*"}
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then the environment,
// then an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

var (
	ErrNoSecretKey = errors.New("JWT_SECRET is required")
	ErrNoDSN       = errors.New("DATABASE_URL is required")
)

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrNoSecretKey
	}
	if c.DatabaseDSN == "" {
		return ErrNoDSN
	}
	if c.AccessTokenValidityDuration <= 0 {
		return errors.New("access token validity must be positive")
	}
	if c.RefreshTokenValidityDuration <= 0 {
		return errors.New("refresh token validity must be positive")
	}
	return nil
}

// ImagesEnabled reports whether object storage for post images is configured.
func (c *Config) ImagesEnabled() bool {
	return c.S3Bucket != ""
}
