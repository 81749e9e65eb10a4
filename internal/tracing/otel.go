// Package tracing provides distributed tracing support for the
// orchestrator, using OpenTelemetry. The orchestrator opens one span per
// operation call, synchronous or submitted through the worker pool,
// named "temporal_engine.operation." plus the operation
// (extract_events, get_relation, is_plausible_cause,
// validate_compliance, forecast), closed when the call returns.
package tracing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// OTelConfig holds OpenTelemetry configuration.
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Enabled        bool
}

var globalTracer trace.Tracer

// InitOTel initializes OpenTelemetry with the given configuration.
// Returns a shutdown function that should be called on application
// exit.
func InitOTel(cfg OTelConfig) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(os.Stderr),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	globalTracer = tp.Tracer(cfg.ServiceName)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}

// GetTracer returns the global tracer, falling back to a no-op tracer
// if InitOTel was never called or tracing is disabled.
func GetTracer() trace.Tracer {
	if globalTracer == nil {
		return otel.Tracer("noop")
	}
	return globalTracer
}

// SpanKind categorizes a trace span.
type SpanKind string

const (
	SpanKindOperation SpanKind = "operation"
	SpanKindCache     SpanKind = "cache"
)

// OperationSpan starts a new span for an orchestrator operation
// (extract_events, get_relation, is_plausible_cause,
// validate_compliance, forecast).
func OperationSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "temporal_engine.operation."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("temporal_engine.operation", operation),
			attribute.String("temporal_engine.span.kind", string(SpanKindOperation)),
		),
	)
}

// CacheSpan starts a new span for a memoization cache lookup.
func CacheSpan(ctx context.Context, operation string, hit bool) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "temporal_engine.cache."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("cache.operation", operation),
			attribute.Bool("cache.hit", hit),
			attribute.String("temporal_engine.span.kind", string(SpanKindCache)),
		),
	)
}

// RecordError records an error on the span.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	}
}

// SetSuccess marks the span as successful.
func SetSuccess(span trace.Span) {
	span.SetAttributes(attribute.Bool("temporal_engine.success", true))
}

// SetResult records the result shape of an operation.
func SetResult(span trace.Span, resultType string, itemCount int) {
	span.SetAttributes(
		attribute.String("temporal_engine.result.type", resultType),
		attribute.Int("temporal_engine.result.count", itemCount),
	)
}

// TraceInfo carries trace and span IDs for audit logging and for
// response-header correlation on the health server's endpoints.
type TraceInfo struct {
	TraceID      string
	SpanID       string
	ParentSpanID string
}

// Response headers the health server attaches to every /healthz reply
// so a caller can correlate a liveness check against server-side logs.
const (
	TraceIDHeader      = "X-Trace-ID"
	SpanIDHeader       = "X-Span-ID"
	ParentSpanIDHeader = "X-Parent-Span-ID"
	RequestIDHeader    = "X-Request-ID"
)

// NewTraceInfo creates a TraceInfo with freshly generated IDs, for
// callers operating outside an active otel span (the health server has
// no request-scoped span of its own).
func NewTraceInfo() *TraceInfo {
	return &TraceInfo{
		TraceID: generateID(),
		SpanID:  generateShortID(),
	}
}

func generateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "00000000000000000000000000000000"
	}
	return hex.EncodeToString(b)
}

func generateShortID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "0000000000000000"
	}
	return hex.EncodeToString(b)
}

// Headers returns trace info as HTTP response headers.
func (t *TraceInfo) Headers() map[string]string {
	headers := map[string]string{
		TraceIDHeader:   t.TraceID,
		SpanIDHeader:    t.SpanID,
		RequestIDHeader: t.TraceID,
	}
	if t.ParentSpanID != "" {
		headers[ParentSpanIDHeader] = t.ParentSpanID
	}
	return headers
}

// FromContext extracts trace information from the active otel span in
// ctx, for audit logging.
func FromContext(ctx context.Context) *TraceInfo {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return &TraceInfo{}
	}

	sc := span.SpanContext()
	return &TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}
