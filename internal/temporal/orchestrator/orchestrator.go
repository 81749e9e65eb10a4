// Package orchestrator provides the single entry point external
// callers use to reach the engine's core operations: a single
// synchronous core, with one facade wrapping each method in a
// worker-thread dispatch for cooperative callers. Async is never
// introduced into the core itself. The synchronous methods call
// straight through to the core packages; the Async methods submit a
// job to a bounded worker pool and hand back a channel, backed by a
// fixed set of goroutines draining a channel and torn down via a
// WaitGroup plus a close-once guard.
//
// The Facade is also where the engine's ambient stack attaches: every
// operation is metered, traced, and audit-logged around the pure core
// call, and Extract is additionally memoized (a cache hit returns
// before that instrumentation runs).
package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tareqmamari/logs-mcp-server/internal/audit"
	"github.com/tareqmamari/logs-mcp-server/internal/cache"
	"github.com/tareqmamari/logs-mcp-server/internal/metrics"
	"github.com/tareqmamari/logs-mcp-server/internal/session"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/algebra"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/causality"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/compliance"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/extractor"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/forecast"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/model"
	"github.com/tareqmamari/logs-mcp-server/internal/tracing"
)

// defaultWorkers is a modest default; cooperative callers rarely need
// more than a handful of concurrent extractions in flight.
const defaultWorkers = 4

// defaultCacheTTL bounds how long a memoized Extract result is reused.
const defaultCacheTTL = 5 * time.Minute

// Facade is the single entry point external callers (a CLI, an MCP
// tool, an HTTP handler) use to reach every core operation.
type Facade struct {
	extractor  *extractor.Extractor
	forecaster forecast.Forecaster
	logger     *zap.Logger

	cache    *cache.Cache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	audit    *audit.Logger
	session  *session.Store

	jobs      chan func()
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Options configures the ambient stack a Facade wires around the core.
// A nil field disables that concern (or falls back to a no-op), so
// NewFacade remains usable from tests without standing up the whole
// stack.
type Options struct {
	Workers   int
	QueueSize int
	Cache     *cache.Cache
	CacheTTL  time.Duration
	Metrics   *metrics.Metrics
	Audit     *audit.Logger
	Session   *session.Store
}

// NewFacade constructs a Facade backed by opts.Workers goroutines. A
// workers value <= 0 falls back to defaultWorkers; a nil logger falls
// back to zap.NewNop(), matching the rest of the engine's constructors.
// A QueueSize <= 0 falls back to four times the worker count. A
// CacheTTL <= 0 falls back to defaultCacheTTL.
func NewFacade(ext *extractor.Extractor, forecaster forecast.Forecaster, logger *zap.Logger, opts Options) *Facade {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = workers * 4
	}
	cacheTTL := opts.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	f := &Facade{
		extractor:  ext,
		forecaster: forecaster,
		logger:     logger,
		cache:      opts.Cache,
		cacheTTL:   cacheTTL,
		metrics:    opts.Metrics,
		audit:      opts.Audit,
		session:    opts.Session,
		jobs:       make(chan func(), queueSize),
	}

	for i := 0; i < workers; i++ {
		f.wg.Add(1)
		go f.runWorker()
	}

	return f
}

func (f *Facade) runWorker() {
	defer f.wg.Done()
	for job := range f.jobs {
		job()
		f.reportQueueDepth()
	}
}

func (f *Facade) reportQueueDepth() {
	if f.metrics != nil {
		f.metrics.SetQueueDepth(int64(len(f.jobs)))
	}
}

// Close stops accepting new async work and blocks until every
// in-flight job drains.
func (f *Facade) Close() {
	f.closeOnce.Do(func() { close(f.jobs) })
	f.wg.Wait()
}

// instrument wraps a core call with tracing, metrics, and audit
// logging. operation names the span/metric/audit label (extract_events,
// get_relation, is_plausible_cause, validate_compliance, forecast); fn performs
// the actual work and returns how many result items it produced (for
// the audit log) and any error.
func (f *Facade) instrument(ctx context.Context, operation string, fn func(ctx context.Context) (int, error)) error {
	ctx, span := tracing.OperationSpan(ctx, operation)
	defer span.End()

	start := time.Now()
	resultCount, err := fn(ctx)
	latency := time.Since(start)

	if err != nil {
		tracing.RecordError(span, err)
	} else {
		tracing.SetSuccess(span)
		tracing.SetResult(span, operation, resultCount)
	}

	if f.metrics != nil {
		f.metrics.RecordOperation(operation, err == nil, latency)
	}
	if f.audit != nil {
		f.audit.LogOperation(ctx, operation, err == nil, latency, resultCount, err)
	}
	if f.session != nil && err != nil {
		f.session.RecordError(operation, err.Error())
	}

	return err
}

// Extract is the synchronous form of extract_events.
func (f *Facade) Extract(ctx context.Context, text string, reference time.Time) ([]*model.TemporalEvent, error) {
	var events []*model.TemporalEvent

	if f.cache != nil {
		key := extractCacheKey(text, reference)
		cached, hit := f.cache.Get(key)
		_, cspan := tracing.CacheSpan(ctx, "extract_events", hit)
		cspan.End()
		if hit {
			if ev, ok := cached.([]*model.TemporalEvent); ok {
				if f.session != nil {
					f.session.RecordExtraction(len(text), len(ev))
				}
				return ev, nil
			}
		}
	}

	err := f.instrument(ctx, "extract_events", func(ctx context.Context) (int, error) {
		var err error
		events, err = f.extractor.Extract(ctx, text, reference)
		return len(events), err
	})

	if err == nil {
		if f.cache != nil {
			f.cache.Set(extractCacheKey(text, reference), events, f.cacheTTL)
		}
		if f.session != nil {
			f.session.RecordExtraction(len(text), len(events))
		}
	}

	return events, err
}

func extractCacheKey(text string, reference time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", text, reference.UnixNano())))
	return "extract_events:" + hex.EncodeToString(sum[:])
}

// Relation is the synchronous form of get_relation.
func (f *Facade) Relation(a, b *model.TemporalEvent) (algebra.Relation, error) {
	var rel algebra.Relation
	err := f.instrument(context.Background(), "get_relation", func(context.Context) (int, error) {
		var err error
		rel, err = causality.GetRelation(a, b)
		return 1, err
	})
	return rel, err
}

// IsPlausibleCause is the synchronous form of is_plausible_cause.
func (f *Facade) IsPlausibleCause(cause, effect *model.TemporalEvent) bool {
	var plausible bool
	_ = f.instrument(context.Background(), "is_plausible_cause", func(context.Context) (int, error) {
		plausible = causality.IsPlausibleCause(cause, effect)
		return 1, nil
	})
	return plausible
}

// Validate is the synchronous form of a compliance Rule's validate.
func (f *Facade) Validate(rule compliance.Rule, target, reference time.Time) (*compliance.Result, error) {
	var result *compliance.Result
	err := f.instrument(context.Background(), "validate_compliance", func(context.Context) (int, error) {
		var err error
		result, err = rule.Validate(target, reference)
		return 1, err
	})
	return result, err
}

// Forecast is the synchronous form of the forecast boundary operation.
func (f *Facade) Forecast(req forecast.ForecastRequest) (*forecast.ForecastResult, error) {
	var result *forecast.ForecastResult
	err := f.instrument(context.Background(), "forecast", func(context.Context) (int, error) {
		var err error
		result, err = f.forecaster.Forecast(req)
		n := 0
		if result != nil {
			n = len(result.Median)
		}
		return n, err
	})
	if err == nil && f.session != nil {
		f.session.RecordForecast(len(req.History), req.PredictionLength)
	}
	return result, err
}

// ExtractResult is the payload ExtractAsync delivers on its channel.
type ExtractResult struct {
	Events []*model.TemporalEvent
	Err    error
}

// ExtractAsync submits Extract to the worker pool and returns a
// single-value, self-closing channel. If ctx is cancelled before a
// worker picks up the job, the channel receives ctx.Err() instead.
func (f *Facade) ExtractAsync(ctx context.Context, text string, reference time.Time) <-chan ExtractResult {
	out := make(chan ExtractResult, 1)
	job := func() {
		events, err := f.Extract(ctx, text, reference)
		out <- ExtractResult{Events: events, Err: err}
		close(out)
	}
	f.dispatch(ctx, job, func(err error) {
		out <- ExtractResult{Err: err}
		close(out)
	})
	return out
}

// RelationResult is the payload RelationAsync delivers on its channel.
type RelationResult struct {
	Relation algebra.Relation
	Err      error
}

// RelationAsync submits Relation to the worker pool.
func (f *Facade) RelationAsync(ctx context.Context, a, b *model.TemporalEvent) <-chan RelationResult {
	out := make(chan RelationResult, 1)
	job := func() {
		rel, err := f.Relation(a, b)
		out <- RelationResult{Relation: rel, Err: err}
		close(out)
	}
	f.dispatch(ctx, job, func(err error) {
		out <- RelationResult{Err: err}
		close(out)
	})
	return out
}

// IsPlausibleCauseAsync submits IsPlausibleCause to the worker pool.
func (f *Facade) IsPlausibleCauseAsync(ctx context.Context, cause, effect *model.TemporalEvent) <-chan bool {
	out := make(chan bool, 1)
	job := func() {
		out <- f.IsPlausibleCause(cause, effect)
		close(out)
	}
	f.dispatch(ctx, job, func(error) {
		out <- false
		close(out)
	})
	return out
}

// ForecastResultEnvelope is the payload ForecastAsync delivers on its
// channel; named distinctly from forecast.ForecastResult to keep the
// async wrapping visible at call sites.
type ForecastResultEnvelope struct {
	Result *forecast.ForecastResult
	Err    error
}

// ForecastAsync submits Forecast to the worker pool.
func (f *Facade) ForecastAsync(ctx context.Context, req forecast.ForecastRequest) <-chan ForecastResultEnvelope {
	out := make(chan ForecastResultEnvelope, 1)
	job := func() {
		res, err := f.Forecast(req)
		out <- ForecastResultEnvelope{Result: res, Err: err}
		close(out)
	}
	f.dispatch(ctx, job, func(err error) {
		out <- ForecastResultEnvelope{Err: err}
		close(out)
	})
	return out
}

// dispatch enqueues job on the worker pool, falling back to onCancel if
// ctx is cancelled before a worker slot frees up or after the pool has
// been closed.
func (f *Facade) dispatch(ctx context.Context, job func(), onCancel func(error)) {
	defer func() {
		if r := recover(); r != nil {
			// jobs channel closed underneath an in-flight caller; treat
			// as cancellation rather than propagating the panic.
			onCancel(context.Canceled)
		}
	}()
	select {
	case f.jobs <- job:
		f.reportQueueDepth()
	case <-ctx.Done():
		onCancel(ctx.Err())
	}
}
