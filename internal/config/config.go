package config

import (
	"fmt"
	"os"
	"time"
)

// Store backends.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Stats  StatsConfig

	LogLevel string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// StoreConfig selects and configures the snapshot backend.
type StoreConfig struct {
	Backend     string
	Name        string
	RedisURL    string
	PostgresDSN string
}

// StatsConfig tunes the aggregator.
type StatsConfig struct {
	LivenessWindow  time.Duration
	HourlyRetention time.Duration
	DailyRetention  time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("TELEMETRY_ADDR", ":8080"),
			ShutdownTimeout: getEnvDuration("TELEMETRY_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Store: StoreConfig{
			Backend:     getEnv("TELEMETRY_STORE_BACKEND", BackendRedis),
			Name:        getEnv("TELEMETRY_NAME", "default"),
			RedisURL:    getEnv("TELEMETRY_REDIS_URL", "redis://localhost:6379/0"),
			PostgresDSN: getEnv("TELEMETRY_POSTGRES_DSN", ""),
		},
		Stats: StatsConfig{
			LivenessWindow:  getEnvDuration("TELEMETRY_LIVENESS_WINDOW", 90*time.Second),
			HourlyRetention: getEnvDuration("TELEMETRY_HOURLY_RETENTION", 14*24*time.Hour),
			DailyRetention:  getEnvDuration("TELEMETRY_DAILY_RETENTION", 60*24*time.Hour),
		},
		LogLevel: getEnv("TELEMETRY_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("TELEMETRY_REDIS_URL is required for the redis backend")
		}
	case BackendPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("TELEMETRY_POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Store.Name == "" {
		return fmt.Errorf("TELEMETRY_NAME must not be empty")
	}
	if c.Stats.LivenessWindow <= 0 {
		return fmt.Errorf("TELEMETRY_LIVENESS_WINDOW must be positive")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
