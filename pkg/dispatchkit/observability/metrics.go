package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records dispatch metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCall records a dispatched call with its duration and error status.
	RecordCall(ctx context.Context, dispatcher, token string, duration time.Duration, err error)

	// RecordFallback records a call routed to the default implementation.
	RecordFallback(ctx context.Context, dispatcher, token string)

	// RecordMiss records a call with no implementation and no default.
	RecordMiss(ctx context.Context, dispatcher, token string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	calls       metric.Int64Counter
	callLatency metric.Float64Histogram
	callErrors  metric.Int64Counter
	fallbacks   metric.Int64Counter
	misses      metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("dispatchkit")

	calls, err := meter.Int64Counter("dispatchkit.calls",
		metric.WithDescription("Number of dispatched calls"),
	)
	if err != nil {
		return nil, err
	}

	callLatency, err := meter.Float64Histogram("dispatchkit.call.latency_ms",
		metric.WithDescription("Dispatched call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	callErrors, err := meter.Int64Counter("dispatchkit.call.errors",
		metric.WithDescription("Number of dispatched calls that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	fallbacks, err := meter.Int64Counter("dispatchkit.fallbacks",
		metric.WithDescription("Number of calls routed to the default implementation"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter("dispatchkit.misses",
		metric.WithDescription("Number of calls with no implementation available"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		calls:       calls,
		callLatency: callLatency,
		callErrors:  callErrors,
		fallbacks:   fallbacks,
		misses:      misses,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCall records a dispatched call.
func (m *otelMetrics) RecordCall(ctx context.Context, dispatcher, token string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("dispatcher", dispatcher),
		attribute.String("token", token),
	}

	m.calls.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.callLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.callErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordFallback records a call routed to the default implementation.
func (m *otelMetrics) RecordFallback(ctx context.Context, dispatcher, token string) {
	attrs := []attribute.KeyValue{
		attribute.String("dispatcher", dispatcher),
		attribute.String("token", token),
	}
	m.fallbacks.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordMiss records a call with no implementation available.
func (m *otelMetrics) RecordMiss(ctx context.Context, dispatcher, token string) {
	attrs := []attribute.KeyValue{
		attribute.String("dispatcher", dispatcher),
		attribute.String("token", token),
	}
	m.misses.Add(ctx, 1, metric.WithAttributes(attrs...))
}
