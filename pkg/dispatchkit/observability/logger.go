// Package observability provides production-grade observability features
// for dispatchkit: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds dispatch context to a logger.
// Returns a new logger with dispatcher and token fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "webhooks", "user.created")
//	enriched.Info("doing work") // includes dispatcher, token
func EnrichLogger(logger *slog.Logger, dispatcher, token string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("dispatcher", dispatcher),
		slog.String("token", token),
	)
}

// LogRegister logs an implementation registration.
func LogRegister(logger *slog.Logger, dispatcher, token string, replaced bool) {
	if logger == nil {
		return
	}
	logger.Debug("implementation registered",
		slog.String("dispatcher", dispatcher),
		slog.String("token", token),
		slog.Bool("replaced", replaced),
	)
}

// LogDispatch logs the start of a dispatched call.
func LogDispatch(logger *slog.Logger, dispatcher, token string) {
	if logger == nil {
		return
	}
	logger.Debug("dispatching call",
		slog.String("dispatcher", dispatcher),
		slog.String("token", token),
	)
}

// LogDispatchComplete logs successful call completion.
func LogDispatchComplete(logger *slog.Logger, dispatcher, token string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("call completed",
		slog.String("dispatcher", dispatcher),
		slog.String("token", token),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDispatchError logs a call whose implementation returned an error.
func LogDispatchError(logger *slog.Logger, dispatcher, token string, err error) {
	if logger == nil {
		return
	}
	logger.Error("call failed",
		slog.String("dispatcher", dispatcher),
		slog.String("token", token),
		slog.String("error", err.Error()),
	)
}

// LogFallback logs a call routed to the default implementation.
func LogFallback(logger *slog.Logger, dispatcher, token string) {
	if logger == nil {
		return
	}
	logger.Debug("falling back to default implementation",
		slog.String("dispatcher", dispatcher),
		slog.String("token", token),
	)
}

// LogMiss logs a call with no matching implementation and no default.
func LogMiss(logger *slog.Logger, dispatcher, token string) {
	if logger == nil {
		return
	}
	logger.Error("no implementation found",
		slog.String("dispatcher", dispatcher),
		slog.String("token", token),
	)
}

// LogJournalError logs a journal append failure (non-fatal).
func LogJournalError(logger *slog.Logger, dispatcher, token string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal append failed",
		slog.String("dispatcher", dispatcher),
		slog.String("token", token),
		slog.String("error", err.Error()),
	)
}
