package dispatchkit

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/randalmurphal/dispatchkit/pkg/dispatchkit/journal"
	"github.com/randalmurphal/dispatchkit/pkg/dispatchkit/observability"
)

// Option configures a dispatcher at construction.
type Option func(*settings)

type settings struct {
	name    string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	journal journal.Store
}

func defaultSettings() *settings {
	return &settings{
		name:    uuid.New().String(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// WithName sets the dispatcher name used in logs, metrics, spans, and
// journal entries. Defaults to a generated UUID.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithLogger enables structured logging for registrations and calls.
//
// Logs include dispatcher, token, and duration_ms fields. A nil logger
// disables logging (the default).
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics collection.
//
// Metrics are recorded via the global meter provider. If instrument
// creation fails, calls proceed with a no-op recorder.
func WithMetrics(enabled bool) Option {
	return func(s *settings) {
		if enabled {
			s.metrics = observability.NewMetricsRecorder()
		} else {
			s.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry span creation for dispatched calls.
//
// Each call produces a dispatchkit.call span carrying the dispatcher
// name and computed token.
func WithTracing(enabled bool) Option {
	return func(s *settings) {
		if enabled {
			s.spans = observability.NewSpanManager()
		} else {
			s.spans = observability.NoopSpanManager{}
		}
	}
}

// WithJournal enables call journaling to the given store.
//
// Every call appends one entry recording the token, outcome, error,
// and duration. Append failures are logged and never fail the call.
func WithJournal(store journal.Store) Option {
	return func(s *settings) {
		s.journal = store
	}
}
