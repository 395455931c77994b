package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	Auth        AuthConfig
	CORS        CORSConfig
	Logging     LoggingConfig
	RateLimit   RateLimitConfig
	Environment string

	// MaxBodyBytes caps request bodies before they reach a handler.
	MaxBodyBytes int64
}

type ServerConfig struct {
	Host string
	Port int
}

type StorageConfig struct {
	// DriveFolderID is the Google Drive folder backing the store. When
	// empty the server falls back to an in-memory store (local mode).
	DriveFolderID      string
	ServiceAccountFile string

	// CMSPrefix is the sub-folder holding the collection documents.
	CMSPrefix string
}

type AuthConfig struct {
	// OAuthClientID is the audience Google ID tokens are validated against.
	OAuthClientID string

	// AllowEmails is the admin allow-list, matched case-insensitively.
	AllowEmails []string

	// DevTokenSecret switches the gate to the HS256 dev verifier when set.
	DevTokenSecret string
}

type CORSConfig struct {
	AllowedOrigins  []string
	AllowAllOrigins bool
}

type LoggingConfig struct {
	Level  string
	Format string
}

type RateLimitConfig struct {
	// PerMinute is the per-client request budget. Zero disables limiting.
	PerMinute int
	Burst     int
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("PORT", 8080),
		},
		Storage: StorageConfig{
			DriveFolderID:      getEnv("GOOGLE_DRIVE_FOLDER_ID", ""),
			ServiceAccountFile: getEnv("SERVICE_ACCOUNT_FILE", "service-account.json"),
			CMSPrefix:          getEnv("CMS_PREFIX", "cms"),
		},
		Auth: AuthConfig{
			OAuthClientID:  getEnv("GOOGLE_OAUTH_CLIENT_ID", ""),
			AllowEmails:    splitList(getEnv("ADMIN_ALLOW_EMAILS", "")),
			DevTokenSecret: getEnv("DEV_TOKEN_SECRET", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 0),
			Burst:     getEnvInt("RATE_LIMIT_BURST", 20),
		},
		Environment:  getEnv("ENVIRONMENT", "development"),
		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 5<<20)),
	}

	origins := getEnv("ALLOWED_ORIGINS", "*")
	if origins == "*" {
		cfg.CORS.AllowAllOrigins = true
	} else {
		cfg.CORS.AllowedOrigins = splitList(origins)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("PORT out of range: %d", cfg.Server.Port)
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
