package server

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// Environment variables read by DefaultConfig.
const (
	EnvPort           = "PORT"
	EnvLogLevel       = "LOG_LEVEL"
	EnvRateLimit      = "RATE_LIMIT"
	EnvRateLimitBurst = "RATE_LIMIT_BURST"
	EnvCatalog        = "ADVISOR_CATALOG"
)

// DefaultConfig returns sensible defaults, overridden by the environment.
// A .env file in the working directory is loaded first when present; it
// never overrides variables already set.
func DefaultConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg := &Config{
		Address:         "",
		Port:            8080,
		RateLimit:       100, // 100 req/s
		RateLimitBurst:  200, // burst of 200
		MaxRequestBytes: 1 << 20,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		LogLevel:        slog.LevelInfo.String(),
	}

	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 && port < 65536 {
			cfg.Port = port
		} else {
			slog.Warn("ignoring invalid port", "env", EnvPort, "value", v)
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv(EnvRateLimit); v != "" {
		if limit, err := strconv.ParseFloat(v, 64); err == nil && limit > 0 {
			cfg.RateLimit = rate.Limit(limit)
		} else {
			slog.Warn("ignoring invalid rate limit", "env", EnvRateLimit, "value", v)
		}
	}

	if v := os.Getenv(EnvRateLimitBurst); v != "" {
		if burst, err := strconv.Atoi(v); err == nil && burst > 0 {
			cfg.RateLimitBurst = burst
		} else {
			slog.Warn("ignoring invalid rate limit burst", "env", EnvRateLimitBurst, "value", v)
		}
	}

	cfg.CatalogSource = os.Getenv(EnvCatalog)

	return cfg
}
