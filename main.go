// Package main implements the temporal reasoning engine's process
// entry point: it loads configuration, wires up the orchestrator
// Facade with its ambient stack (cache, metrics, tracing, audit,
// session), optionally starts the health/metrics HTTP endpoint, and
// runs until a shutdown signal arrives.
//
// This binary has no stdio or network business-API surface of its own
// (the library surface and CLI façade are the supported ways to reach
// the engine); it exists to demonstrate and soak-test the wiring, and
// as a long-running host for the health/metrics endpoint.
//
// Configuration is provided through environment variables; see
// internal/config for the full list.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tareqmamari/logs-mcp-server/internal/audit"
	"github.com/tareqmamari/logs-mcp-server/internal/cache"
	"github.com/tareqmamari/logs-mcp-server/internal/config"
	"github.com/tareqmamari/logs-mcp-server/internal/health"
	"github.com/tareqmamari/logs-mcp-server/internal/logging"
	"github.com/tareqmamari/logs-mcp-server/internal/metrics"
	"github.com/tareqmamari/logs-mcp-server/internal/session"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/dateparser"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/extractor"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/forecast"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/orchestrator"
	"github.com/tareqmamari/logs-mcp-server/internal/tracing"
)

// Build information - set at build time via ldflags.
// For GoReleaser builds: -X main.version={{.Version}} -X main.commit={{.Commit}} ...
// For manual builds: go build -ldflags "-X main.version=v0.5.0"
var (
	version = "dev"     // e.g., "v0.4.0" or "dev"
	commit  = "unknown" // Git commit SHA
	builtBy = "manual"  // "goreleaser" or "manual"
)

func main() {
	// Load .env file if it exists (optional, for development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync() // ignore error on cleanup
	}()

	logger.Info("starting temporal reasoning engine",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("built_by", builtBy),
	)

	shutdownOTel, err := tracing.InitOTel(tracing.OTelConfig{
		ServiceName:    "temporal-engine",
		ServiceVersion: version,
		Environment:    envOrDefault("ENVIRONMENT", "development"),
		Enabled:        cfg.EnableTracing,
	})
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	met := metrics.New(logger)
	auditLogger := audit.NewLogger(logger, cfg.EnableAuditLog)
	sessionStore := session.New()

	var memo *cache.Cache
	if cfg.CacheMaxItems > 0 {
		memo = cache.New(cfg.CacheMaxItems)
	}

	parser := dateparser.NewNaturalLanguageParser()
	ext := extractor.NewExtractor(parser, logger, extractor.WithDurationSearch(cfg.EnableDurationSearch))
	forecaster := forecast.NaiveDriftForecaster{}

	facade := orchestrator.NewFacade(ext, forecaster, logger, orchestrator.Options{
		Workers:   cfg.WorkerCount,
		QueueSize: cfg.WorkerQueue,
		Cache:     memo,
		CacheTTL:  cfg.CacheTTL,
		Metrics:   met,
		Audit:     auditLogger,
		Session:   sessionStore,
	})

	var healthServer *health.Server
	healthDone := make(chan error, 1)
	if cfg.HealthPort != 0 {
		checker := health.New(func() int64 { return met.GetStats().QueueDepth }, logger)
		healthServer = health.NewServer(checker, logger, cfg.HealthPort, cfg.HealthBindAddr, cfg.MetricsEndpoint, met.GetPrometheusRegistry())
		go func() { healthDone <- healthServer.Start() }()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-healthDone:
		if err != nil {
			logger.Error("health server error", zap.Error(err))
		}
	}

	logger.Info("initiating graceful shutdown", zap.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if healthServer != nil {
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("health server shutdown error", zap.Error(err))
		}
	}

	facadeDone := make(chan struct{})
	go func() {
		facade.Close()
		close(facadeDone)
	}()

	select {
	case <-facadeDone:
		logger.Info("worker pool drained")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, forcing exit",
			zap.Duration("timeout", cfg.ShutdownTimeout))
	}

	if err := shutdownOTel(context.Background()); err != nil {
		logger.Warn("otel shutdown error", zap.Error(err))
	}

	time.Sleep(100 * time.Millisecond)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
