package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Optional Bearer token; auth is disabled when empty.
	APIKey string

	// Worker pool for async render jobs.
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration

	// Request limits.
	MaxInputBytes int64
}

func Load() Config {
	cfg := Config{
		Port:   envOr("PORT", "8090"),
		APIKey: os.Getenv("DOCVIEW_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		JobTTL:       envDuration("JOB_TTL", 1*time.Hour),

		MaxInputBytes: envInt64("MAX_INPUT_BYTES", 4194304), // 4MB
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.MaxInputBytes <= 0 {
		cfg.MaxInputBytes = 4194304
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
