// Package config provides configuration management for the temporal
// reasoning engine.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration for the engine's ambient stack. The
// core algebra/extractor/forecast packages take no configuration of
// their own; every parameter they need arrives as an explicit function
// argument, so this struct covers only the orchestrator's worker pool,
// memoization cache, and observability surface.
type Config struct {
	// Worker Pool
	WorkerCount     int           `json:"worker_count"` // goroutines in the orchestrator's pool
	WorkerQueue     int           `json:"worker_queue"`  // buffered job channel capacity
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// Timeline Extraction
	EnableDurationSearch bool `json:"enable_duration_search"`

	// Memoization
	CacheTTL      time.Duration `json:"cache_ttl"`
	CacheMaxItems int           `json:"cache_max_items"`

	// Observability
	EnableTracing   bool `json:"enable_tracing"`
	EnableAuditLog  bool `json:"enable_audit_log"`
	MetricsEndpoint bool `json:"metrics_endpoint"`

	// Health & Metrics HTTP Server
	HealthPort     int    `json:"health_port"` // 0 disables the health/metrics server
	HealthBindAddr string `json:"health_bind_addr"`

	// Logging
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"` // json or console
}

// Load builds a Config from defaults overridden by environment
// variables. There is no config-file loading path: this engine wraps
// no external service credentials, so the only configuration surface
// is the ambient stack below, small enough to live entirely in env
// vars.
func Load() (*Config, error) {
	cfg := &Config{
		WorkerCount:          4,
		WorkerQueue:          16,
		ShutdownTimeout:      30 * time.Second,
		EnableDurationSearch: true,
		CacheTTL:             5 * time.Minute,
		CacheMaxItems:        1000,
		EnableTracing:        true,
		EnableAuditLog:       true,
		MetricsEndpoint:      true,
		HealthPort:           8080,
		HealthBindAddr:       "127.0.0.1", // bind to localhost by default for security
		LogLevel:             "info",
		LogFormat:            "json",
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	loadStringEnvs(cfg)
	loadDurationEnvs(cfg)
	loadIntEnvs(cfg)
	loadBoolEnvs(cfg)
}

func loadStringEnvs(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TEMPORAL_HEALTH_BIND_ADDR"); v != "" {
		cfg.HealthBindAddr = v
	}
}

func loadDurationEnvs(cfg *Config) {
	if v := os.Getenv("TEMPORAL_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShutdownTimeout = d
		}
	}
	if v := os.Getenv("TEMPORAL_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}
}

func loadIntEnvs(cfg *Config) {
	if v := os.Getenv("TEMPORAL_WORKER_COUNT"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.WorkerCount = n
		}
	}
	if v := os.Getenv("TEMPORAL_WORKER_QUEUE"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.WorkerQueue = n
		}
	}
	if v := os.Getenv("TEMPORAL_CACHE_MAX_ITEMS"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.CacheMaxItems = n
		}
	}
	if v := os.Getenv("TEMPORAL_HEALTH_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.HealthPort = port
		}
	}
}

func loadBoolEnvs(cfg *Config) {
	if v := os.Getenv("TEMPORAL_ENABLE_DURATION_SEARCH"); v != "" {
		cfg.EnableDurationSearch = v == "true" || v == "1"
	}
	if v := os.Getenv("TEMPORAL_ENABLE_TRACING"); v != "" {
		cfg.EnableTracing = v == "true" || v == "1"
	}
	if v := os.Getenv("TEMPORAL_ENABLE_AUDIT_LOG"); v != "" {
		cfg.EnableAuditLog = v == "true" || v == "1"
	}
	if v := os.Getenv("TEMPORAL_METRICS_ENDPOINT"); v != "" {
		cfg.MetricsEndpoint = v == "true" || v == "1"
	}
}

// Validate checks if the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.WorkerCount <= 0 {
		return errors.New("worker_count must be positive")
	}
	if c.WorkerQueue <= 0 {
		return errors.New("worker_queue must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	if c.CacheTTL < 0 {
		return errors.New("cache_ttl must be non-negative")
	}
	if c.CacheMaxItems < 0 {
		return errors.New("cache_max_items must be non-negative")
	}
	if c.HealthPort < 0 || c.HealthPort > 65535 {
		return errors.New("health_port must be in [0, 65535]")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	validLogFormats := map[string]bool{"json": true, "console": true}
	if !validLogFormats[strings.ToLower(c.LogFormat)] {
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}

	return nil
}
