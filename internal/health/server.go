// Package health provides health checking and HTTP endpoints for the
// temporal reasoning engine.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tareqmamari/logs-mcp-server/internal/tracing"
)

// Server provides HTTP endpoints for liveness and metrics. It exposes:
//   - /healthz - process liveness and worker pool queue depth
//   - /metrics - Prometheus metrics (if enabled)
type Server struct {
	checker        *Checker
	logger         *zap.Logger
	httpServer     *http.Server
	port           int
	metricsEnabled bool
}

// NewServer creates a new health HTTP server.
// bindAddr specifies the interface to bind to (default: 127.0.0.1 for security).
// Use "0.0.0.0" only when the endpoint needs to be accessible externally
// (e.g., in containerized environments). registry may be nil if
// metricsEnabled is false.
func NewServer(checker *Checker, logger *zap.Logger, port int, bindAddr string, metricsEnabled bool, registry *prometheus.Registry) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		checker:        checker,
		logger:         logger,
		port:           port,
		metricsEnabled: metricsEnabled,
	}

	if bindAddr == "" {
		bindAddr = "127.0.0.1"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.healthHandler)

	if metricsEnabled && registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", bindAddr, port),
		Handler:           mux,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	return s
}

// Start starts the HTTP health server.
func (s *Server) Start() error {
	s.logger.Info("starting health HTTP server",
		zap.Int("port", s.port),
		zap.Bool("metrics_enabled", s.metricsEnabled),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("health server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down health HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Response represents the response from the /healthz endpoint.
type Response struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// healthHandler handles /healthz. The engine has no external
// dependency to check, so liveness is unconditional once the server
// is serving; the queue-depth check can still report degraded.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status, checks := s.checker.CheckAll()

	response := Response{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	info := tracing.NewTraceInfo()
	for header, value := range info.Headers() {
		w.Header().Set(header, value)
	}
	w.Header().Set("Content-Type", "application/json")

	switch status {
	case StatusHealthy, StatusDegraded:
		w.WriteHeader(http.StatusOK)
	case StatusUnhealthy:
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("failed to encode health response", zap.Error(err))
	}
}
