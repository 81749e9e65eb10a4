// Package metrics provides metrics collection and reporting for the
// temporal reasoning engine's orchestrator.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const labelOperation = "operation"

// Metrics tracks operational metrics for the orchestrator's worker
// pool, with both internal atomic counters for fast access and
// Prometheus metrics for the /metrics endpoint.
type Metrics struct {
	totalOperations      atomic.Uint64
	successfulOperations atomic.Uint64
	failedOperations     atomic.Uint64

	totalLatency atomic.Int64 // microseconds
	latencyCount atomic.Uint64
	maxLatency   atomic.Int64
	minLatency   atomic.Int64

	queueDepth atomic.Int64

	opsMu       sync.RWMutex
	opUsage     map[string]uint64
	opErrors    map[string]uint64
	opLatency   map[string]int64 // microseconds, rolling average

	logger   *zap.Logger
	registry *prometheus.Registry

	promOperationsTotal      prometheus.Counter
	promOperationsSuccessful prometheus.Counter
	promOperationsFailed     prometheus.Counter
	promOperationLatency     prometheus.Histogram
	promQueueDepth           prometheus.Gauge
	promOpCalls              *prometheus.CounterVec
	promOpErrors             *prometheus.CounterVec
	promOpLatency            *prometheus.HistogramVec
}

// New creates a new metrics tracker with Prometheus integration.
func New(logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		opUsage:   make(map[string]uint64),
		opErrors:  make(map[string]uint64),
		opLatency: make(map[string]int64),
		logger:    logger,
		registry:  registry,

		promOperationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "temporal_engine",
			Name:      "operations_total",
			Help:      "Total number of orchestrator operations dispatched",
		}),
		promOperationsSuccessful: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "temporal_engine",
			Name:      "operations_successful_total",
			Help:      "Total number of successful orchestrator operations",
		}),
		promOperationsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "temporal_engine",
			Name:      "operations_failed_total",
			Help:      "Total number of failed orchestrator operations",
		}),
		promOperationLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "temporal_engine",
			Name:      "operation_latency_seconds",
			Help:      "Operation latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 15), // 0.1ms to ~1.6s
		}),
		promQueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "temporal_engine",
			Name:      "worker_pool_queue_depth",
			Help:      "Number of jobs currently queued in the orchestrator's worker pool",
		}),
		promOpCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "temporal_engine",
			Name:      "operation_calls_total",
			Help:      "Total calls per operation (extract_events, get_relation, is_plausible_cause, validate_compliance, forecast)",
		}, []string{labelOperation}),
		promOpErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "temporal_engine",
			Name:      "operation_errors_total",
			Help:      "Total errors per operation",
		}, []string{labelOperation}),
		promOpLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "temporal_engine",
			Name:      "operation_latency_seconds_by_op",
			Help:      "Operation latency in seconds, labeled by operation",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 15),
		}, []string{labelOperation}),
	}

	m.minLatency.Store(int64(time.Hour))

	return m
}

// RecordOperation records one completed orchestrator operation.
func (m *Metrics) RecordOperation(operation string, success bool, latency time.Duration) {
	m.totalOperations.Add(1)
	m.promOperationsTotal.Inc()
	m.promOperationLatency.Observe(latency.Seconds())

	if success {
		m.successfulOperations.Add(1)
		m.promOperationsSuccessful.Inc()
	} else {
		m.failedOperations.Add(1)
		m.promOperationsFailed.Inc()
	}

	m.recordLatency(latency)
	m.recordOpUsage(operation, success, latency)

	m.promOpCalls.WithLabelValues(operation).Inc()
	m.promOpLatency.WithLabelValues(operation).Observe(latency.Seconds())
	if !success {
		m.promOpErrors.WithLabelValues(operation).Inc()
	}
}

// SetQueueDepth updates the worker pool's current queue depth gauge.
func (m *Metrics) SetQueueDepth(depth int64) {
	m.queueDepth.Store(depth)
	m.promQueueDepth.Set(float64(depth))
}

func (m *Metrics) recordOpUsage(operation string, success bool, latency time.Duration) {
	m.opsMu.Lock()
	defer m.opsMu.Unlock()

	m.opUsage[operation]++
	if !success {
		m.opErrors[operation]++
	}

	if latency > 0 && m.opUsage[operation] > 0 {
		current := m.opLatency[operation]
		count := float64(m.opUsage[operation])
		avg := (float64(current)*(count-1) + float64(latency.Microseconds())) / count
		m.opLatency[operation] = int64(avg)
	}
}

func (m *Metrics) recordLatency(latency time.Duration) {
	latencyUs := latency.Microseconds()

	m.totalLatency.Add(latencyUs)
	m.latencyCount.Add(1)

	for {
		currentMax := m.maxLatency.Load()
		if latencyUs <= currentMax {
			break
		}
		if m.maxLatency.CompareAndSwap(currentMax, latencyUs) {
			break
		}
	}

	for {
		currentMin := m.minLatency.Load()
		if latencyUs >= currentMin {
			break
		}
		if m.minLatency.CompareAndSwap(currentMin, latencyUs) {
			break
		}
	}
}

// GetStats returns current statistics.
func (m *Metrics) GetStats() Stats {
	m.opsMu.RLock()
	opUsage := make(map[string]uint64, len(m.opUsage))
	opErrors := make(map[string]uint64, len(m.opErrors))
	opLatency := make(map[string]time.Duration, len(m.opLatency))
	for k, v := range m.opUsage {
		opUsage[k] = v
	}
	for k, v := range m.opErrors {
		opErrors[k] = v
	}
	for k, v := range m.opLatency {
		opLatency[k] = time.Duration(v) * time.Microsecond
	}
	m.opsMu.RUnlock()

	latencyCount := m.latencyCount.Load()
	var avgLatency time.Duration
	if latencyCount > 0 {
		avgLatencyMicros := float64(m.totalLatency.Load()) / float64(latencyCount)
		avgLatency = time.Duration(avgLatencyMicros) * time.Microsecond
	}

	return Stats{
		TotalOperations:      m.totalOperations.Load(),
		SuccessfulOperations: m.successfulOperations.Load(),
		FailedOperations:     m.failedOperations.Load(),
		QueueDepth:           m.queueDepth.Load(),
		AverageLatency:       avgLatency,
		MaxLatency:           time.Duration(m.maxLatency.Load()) * time.Microsecond,
		MinLatency:           time.Duration(m.minLatency.Load()) * time.Microsecond,
		OperationUsage:       opUsage,
		OperationErrors:      opErrors,
		OperationLatency:     opLatency,
	}
}

// LogStats logs current statistics.
func (m *Metrics) LogStats() {
	stats := m.GetStats()

	var errorRate float64
	if stats.TotalOperations > 0 {
		errorRate = float64(stats.FailedOperations) / float64(stats.TotalOperations) * 100
	}

	m.logger.Info("Orchestrator metrics",
		zap.Uint64("total_operations", stats.TotalOperations),
		zap.Uint64("successful_operations", stats.SuccessfulOperations),
		zap.Uint64("failed_operations", stats.FailedOperations),
		zap.Float64("error_rate_pct", errorRate),
		zap.Int64("queue_depth", stats.QueueDepth),
		zap.Duration("avg_latency", stats.AverageLatency),
		zap.Duration("max_latency", stats.MaxLatency),
		zap.Duration("min_latency", stats.MinLatency),
		zap.Any("operation_usage", stats.OperationUsage),
	)
}

// Stats represents current metrics.
type Stats struct {
	TotalOperations      uint64
	SuccessfulOperations uint64
	FailedOperations     uint64
	QueueDepth           int64
	AverageLatency       time.Duration
	MaxLatency           time.Duration
	MinLatency           time.Duration
	OperationUsage       map[string]uint64
	OperationErrors      map[string]uint64
	OperationLatency     map[string]time.Duration
}

// GetPrometheusRegistry returns this Metrics instance's Prometheus
// registry, for use with promhttp.HandlerFor in internal/health's
// /metrics endpoint.
func (m *Metrics) GetPrometheusRegistry() *prometheus.Registry {
	return m.registry
}
