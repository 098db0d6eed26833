package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the gateway
type Config struct {
	// Upstream Fexa API
	BaseURL            string
	ClientID           string
	ClientSecret       string
	TokenEndpoint      string
	TokenRefreshBuffer time.Duration
	RequestTimeout     time.Duration

	// Per-resource endpoint overrides. The visits endpoint has moved between
	// API versions, so it stays configurable instead of hardcoded.
	VisitsEndpoint string

	// Cache policy
	ClientCacheTTL       time.Duration
	ReferenceCacheTTL    time.Duration
	CacheRefreshInterval time.Duration // 0 disables the background refresh ticker

	ServerPort string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:              getEnv("FEXA_BASE_URL", ""),
		ClientID:             getEnv("FEXA_CLIENT_ID", ""),
		ClientSecret:         getEnv("FEXA_CLIENT_SECRET", ""),
		TokenEndpoint:        getEnv("FEXA_TOKEN_ENDPOINT", "/oauth/token"),
		TokenRefreshBuffer:   getDurationEnv("FEXA_TOKEN_REFRESH_BUFFER", 300*time.Second),
		RequestTimeout:       getDurationEnv("FEXA_REQUEST_TIMEOUT", 30*time.Second),
		VisitsEndpoint:       getEnv("FEXA_VISITS_ENDPOINT", "/api/ev1/visits"),
		ClientCacheTTL:       getDurationEnv("CLIENT_CACHE_TTL", 4*time.Hour),
		ReferenceCacheTTL:    getDurationEnv("REFERENCE_CACHE_TTL", time.Hour),
		CacheRefreshInterval: getDurationEnv("CACHE_REFRESH_INTERVAL", 0),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
	}

	if cfg.BaseURL == "" {
		return nil, &ConfigError{Message: "FEXA_BASE_URL must be set"}
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &ConfigError{Message: "FEXA_CLIENT_ID and FEXA_CLIENT_SECRET must be set"}
	}
	if cfg.RequestTimeout <= 0 {
		return nil, &ConfigError{Message: "FEXA_REQUEST_TIMEOUT must be greater than 0"}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
