package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory, when present, is loaded first; variables already set in
// the process environment win over it.
//
//	PORT                          listen port
//	DATABASE_URL                  PostgreSQL DSN
//	JWT_SECRET                    access token signing secret
//	ACCESS_TOKEN_TTL              duration, e.g. "1h"
//	REFRESH_TOKEN_TTL             duration, e.g. "168h"
//	CORS_ALLOWED_ORIGINS          comma separated
//	LOG_LEVEL                     debug|info|warn|error
//	S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET, S3_REGION, S3_ENDPOINT
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString(&cfg.Port, "PORT")
	setString(&cfg.DatabaseDSN, "DATABASE_URL")
	setString(&cfg.SecretKey, "JWT_SECRET")
	setDuration(&cfg.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL")
	setDuration(&cfg.RefreshTokenValidityDuration, "REFRESH_TOKEN_TTL")
	if v := getEnv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CorsAllowedOrigins = splitCSV(v)
	}
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.S3AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3SecretKey, "S3_SECRET_KEY")
	setString(&cfg.S3Bucket, "S3_BUCKET")
	setString(&cfg.S3Region, "S3_REGION")
	setString(&cfg.S3BaseEndpoint, "S3_ENDPOINT")
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func setString(dst *string, key string) {
	if v := getEnv(key); v != "" {
		*dst = v
	}
}

// setDuration ignores unparsable values and keeps the previous setting.
func setDuration(dst *time.Duration, key string) {
	v := getEnv(key)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
