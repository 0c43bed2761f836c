/*
Package dispatchkit provides single-dispatch routing for Go functions.

# Overview

dispatchkit is a Go library for routing calls to implementations by a
string token. A key function computes the token from the argument, and
the dispatcher invokes whichever implementation is registered for it.
It's designed for plugin-style call sites such as format handlers,
message routers, and per-type processors, with optional journaling and
observability.

The library is built around a small core with:
  - Type-safe generics for arguments and results
  - Fluent registration with last-write-wins semantics
  - Optional default implementation for unmatched tokens
  - OpenTelemetry integration for observability

# Basic Usage

Create a dispatcher with a key function, register implementations, and
call it:

	type Shape struct {
	    Kind string
	    Side float64
	}

	func main() {
	    d := dispatchkit.New[Shape, float64](func(s Shape) (string, error) {
	        return s.Kind, nil
	    })

	    d.Register("square", func(ctx context.Context, s Shape) (float64, error) {
	        return s.Side * s.Side, nil
	    }).Register("triangle", func(ctx context.Context, s Shape) (float64, error) {
	        return s.Side * s.Side * math.Sqrt(3) / 4, nil
	    })

	    area, err := d.Call(context.Background(), Shape{Kind: "square", Side: 3})
	    if err != nil {
	        log.Fatal(err)
	    }
	    fmt.Println(area) // 9
	}

Registering a second implementation for the same token replaces the
first. Registration may happen at any time, including between calls.

# Default Implementations

Use NewWithDefault to handle tokens with no registered implementation:

	d := dispatchkit.NewWithDefault(keyFn, func(ctx context.Context, s Shape) (float64, error) {
	    return 0, fmt.Errorf("cannot compute area of %s", s.Kind)
	})

The default is fixed at construction and lives outside the token table:
registering any token, including "", never shadows or replaces it. A
dispatcher without a default returns an UnknownTokenError naming the
computed token when nothing matches.

# Key Functions

The keys subpackage provides ready-made key functions:

	// Route by a field in a JSON payload
	d := dispatchkit.New[[]byte, string](keys.JSONField("event.type"))

	// Route by the argument's dynamic type name
	d := dispatchkit.New[any, string](keys.TypeName[any]())

Key function errors abort the call before any lookup and are returned
to the caller unchanged.

# Journaling

Record every call to a persistent journal:

	store, err := journal.NewSQLiteStore("./calls.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

	d := dispatchkit.New[Shape, float64](keyFn, dispatchkit.WithJournal(store))

Each call appends an Entry recording the token, how the call resolved
(handled, default, or miss), the error if any, and the duration.
Journal failures are logged but never fail the call.

# Observability

Enable logging, metrics, and tracing:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	d := dispatchkit.New[Shape, float64](keyFn,
	    dispatchkit.WithName("area"),
	    dispatchkit.WithLogger(logger),
	    dispatchkit.WithMetrics(true),
	    dispatchkit.WithTracing(true))

Logs include structured fields: dispatcher, token, duration_ms.
OpenTelemetry metrics: dispatchkit.calls, dispatchkit.call.latency_ms, etc.
OpenTelemetry tracing: one dispatchkit.call span per call.

# Error Handling

Implementation errors pass through Call unchanged, so sentinel
comparisons work across the dispatch boundary:

	_, err := d.Call(ctx, shape)
	if errors.Is(err, ErrTooSmall) {
	    // the implementation's own error, not a wrapper
	}

A failed lookup returns an UnknownTokenError:

	var unknownErr *dispatchkit.UnknownTokenError
	if errors.As(err, &unknownErr) {
	    log.Printf("no handler for token %q", unknownErr.Token)
	}

# Thread Safety

  - Dispatcher[A, R] IS safe for concurrent use (Register and Call may race)
  - Group[A, R] IS safe for concurrent use
  - Store implementations are safe for concurrent use

# Subpackages

  - journal: Call journaling (memory, SQLite)
  - keys: Ready-made key functions and combinators
  - manifest: Declarative dispatcher construction from YAML/JSON
  - observability: Logging, metrics, and tracing helpers
*/
package dispatchkit
