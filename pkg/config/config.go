package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort    int
	DatabaseURL string

	// Fixed-window rate limit applied per client IP.
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Commit-conflict retry budget for the order transaction.
	TxMaxAttempts int
	TxRetryBase   time.Duration
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPPort:    getEnvInt("HTTP_PORT", 3001),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 10),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		TxMaxAttempts: getEnvInt("TX_MAX_ATTEMPTS", 3),
		TxRetryBase:   getEnvDuration("TX_RETRY_BASE", 25*time.Millisecond),
	}
}

// IsTest reports whether the process runs in test mode, where the server
// uses the in-memory store instead of Postgres.
func (c Config) IsTest() bool {
	return c.AppEnv == "test"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
