package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults for optional settings
const (
	DefaultFreeLimit    = 3
	DefaultQuotaFile    = "data/quota.json"
	DefaultFetchTimeout = 10 // seconds
)

type Config struct {
	TelegramBotToken string
	FreeLimit        int
	VIPUsers         []string
	QuotaFile        string
	PostgreDSN       string
	RedisAddr        string
	RedisPassword    string
	FetchTimeout     int // seconds
	MetricsPort      string
	LogLevel         string
}

func Load() (*Config, error) {
	// .env is optional; deployments may use plain environment variables
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		FreeLimit:        DefaultFreeLimit,
		VIPUsers:         parseVIPList(os.Getenv("VIP_USERS")),
		QuotaFile:        getEnvOrDefault("QUOTA_FILE", DefaultQuotaFile),
		PostgreDSN:       os.Getenv("POSTGRE_DSN"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		FetchTimeout:     DefaultFetchTimeout,
		MetricsPort:      os.Getenv("METRICS_PORT"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if v := os.Getenv("FREE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return nil, fmt.Errorf("FREE_LIMIT must be a non-negative integer, got %q", v)
		}
		cfg.FreeLimit = limit
	}

	if v := os.Getenv("FETCH_TIMEOUT_SECONDS"); v != "" {
		timeout, err := strconv.Atoi(v)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("FETCH_TIMEOUT_SECONDS must be a positive integer, got %q", v)
		}
		cfg.FetchTimeout = timeout
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	required := map[string]string{
		"TELEGRAM_BOT_TOKEN": c.TelegramBotToken,
	}

	for key, value := range required {
		if value == "" {
			return fmt.Errorf("required environment variable %s is not set", key)
		}
	}

	return nil
}

// HasPostgresConfig reports whether a Postgres quota backend is configured.
func (c *Config) HasPostgresConfig() bool {
	return c.PostgreDSN != ""
}

// HasRedisConfig reports whether a Redis quota backend is configured.
func (c *Config) HasRedisConfig() bool {
	return c.RedisAddr != ""
}

func (c *Config) HasMetricsConfig() bool {
	return c.MetricsPort != ""
}

// parseVIPList splits a comma-separated identity list, dropping empties.
func parseVIPList(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// getEnvOrDefault returns the environment variable value or a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
