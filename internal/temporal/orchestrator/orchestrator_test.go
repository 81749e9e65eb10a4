package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tareqmamari/logs-mcp-server/internal/audit"
	"github.com/tareqmamari/logs-mcp-server/internal/cache"
	"github.com/tareqmamari/logs-mcp-server/internal/metrics"
	"github.com/tareqmamari/logs-mcp-server/internal/session"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/algebra"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/dateparser"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/extractor"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/forecast"
	"github.com/tareqmamari/logs-mcp-server/internal/temporal/model"
)

func newTestFacade(t *testing.T) *Facade {
	t.Helper()
	stub := &dateparser.StubParser{
		Matches: []dateparser.Match{
			{Snippet: "Jan 1", Instant: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	ext := extractor.NewExtractor(stub, zap.NewNop())
	f := NewFacade(ext, forecast.NaiveDriftForecaster{}, zap.NewNop(), Options{
		Workers: 2,
		Cache:   cache.New(100),
		Metrics: metrics.New(zap.NewNop()),
		Audit:   audit.NewLogger(zap.NewNop(), true),
		Session: session.New(),
	})
	t.Cleanup(f.Close)
	return f
}

func TestFacade_Extract_DelegatesToCore(t *testing.T) {
	f := newTestFacade(t)
	events, err := f.Extract(context.Background(), "Start on Jan 1.", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestFacade_Forecast_DelegatesToCore(t *testing.T) {
	f := newTestFacade(t)
	res, err := f.Forecast(forecast.ForecastRequest{History: []float64{1, 2, 3}, PredictionLength: 2, ConfidenceLevel: 0.8})
	require.NoError(t, err)
	assert.Len(t, res.Median, 2)
}

func TestFacade_Relation_AndIsPlausibleCause(t *testing.T) {
	f := newTestFacade(t)
	a, err := model.NewTemporalEvent("a", "a", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), model.DateOnly, nil, nil, "a")
	require.NoError(t, err)
	b, err := model.NewTemporalEvent("b", "b", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), model.DateOnly, nil, nil, "b")
	require.NoError(t, err)

	rel, err := f.Relation(a, b)
	require.NoError(t, err)
	assert.Equal(t, algebra.Before, rel)
	assert.True(t, f.IsPlausibleCause(a, b))
	assert.False(t, f.IsPlausibleCause(b, a))
}

// TestFacade_ConcurrentSyncCallsAreSafe exercises the facade from many
// goroutines at once; the synchronous methods hold no mutable shared
// state of their own, so this must never race or deadlock.
func TestFacade_ConcurrentSyncCallsAreSafe(t *testing.T) {
	f := newTestFacade(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.Extract(context.Background(), "Start on Jan 1.", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestNewFacade_DefaultsWorkersAndLogger(t *testing.T) {
	stub := &dateparser.StubParser{}
	ext := extractor.NewExtractor(stub, nil)
	f := NewFacade(ext, forecast.NaiveDriftForecaster{}, nil, Options{})
	defer f.Close()
	assert.NotNil(t, f.logger)
	assert.Equal(t, defaultWorkers*4, cap(f.jobs))
}

func TestFacade_Extract_CachesRepeatedCalls(t *testing.T) {
	stub := &dateparser.StubParser{
		Matches: []dateparser.Match{
			{Snippet: "Jan 1", Instant: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	ext := extractor.NewExtractor(stub, zap.NewNop())
	c := cache.New(10)
	f := NewFacade(ext, forecast.NaiveDriftForecaster{}, zap.NewNop(), Options{Cache: c})
	defer f.Close()

	reference := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first, err := f.Extract(context.Background(), "Start on Jan 1.", reference)
	require.NoError(t, err)

	second, err := f.Extract(context.Background(), "Start on Jan 1.", reference)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Size())
}

func TestFacade_Extract_RecordsSessionAndMetrics(t *testing.T) {
	f := newTestFacade(t)
	_, err := f.Extract(context.Background(), "Start on Jan 1.", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	last := f.session.GetLastExtraction()
	require.NotNil(t, last)
	assert.Equal(t, 1, last.EventCount)

	stats := f.metrics.GetStats()
	assert.Equal(t, uint64(1), stats.TotalOperations)
	assert.Equal(t, uint64(1), stats.SuccessfulOperations)
}

// TestFacade_Close_IsIdempotent verifies that a repeated shutdown
// signal never panics.
func TestFacade_Close_IsIdempotent(t *testing.T) {
	f := newTestFacade(t)
	f.Close()
	assert.NotPanics(t, f.Close)
}

func TestFacade_ExtractAsync_DeliversResultOnChannel(t *testing.T) {
	f := newTestFacade(t)
	ch := f.ExtractAsync(context.Background(), "Start on Jan 1.", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	res := <-ch
	require.NoError(t, res.Err)
	require.Len(t, res.Events, 1)
}

func TestFacade_ForecastAsync_DeliversResultOnChannel(t *testing.T) {
	f := newTestFacade(t)
	ch := f.ForecastAsync(context.Background(), forecast.ForecastRequest{History: []float64{1, 2, 3}, PredictionLength: 1, ConfidenceLevel: 0.8})
	res := <-ch
	require.NoError(t, res.Err)
	require.Len(t, res.Result.Median, 1)
}

// TestFacade_ExtractAsync_AfterClosePoolYieldsCancellationError covers
// the dispatch fallback: a job submitted after Close has torn down the
// pool must report cancellation rather than panic the caller.
func TestFacade_ExtractAsync_AfterClosePoolYieldsCancellationError(t *testing.T) {
	f := newTestFacade(t)
	f.Close()

	ch := f.ExtractAsync(context.Background(), "Start on Jan 1.", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	res := <-ch
	assert.Error(t, res.Err)
}

func TestFacade_IsPlausibleCauseAsync_DeliversResult(t *testing.T) {
	f := newTestFacade(t)
	a, err := model.NewTemporalEvent("a", "a", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), model.DateOnly, nil, nil, "a")
	require.NoError(t, err)
	b, err := model.NewTemporalEvent("b", "b", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), model.DateOnly, nil, nil, "b")
	require.NoError(t, err)

	ch := f.IsPlausibleCauseAsync(context.Background(), a, b)
	assert.True(t, <-ch)
}
