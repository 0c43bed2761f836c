package dispatchkit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/dispatchkit/pkg/dispatchkit/journal"
	"github.com/randalmurphal/dispatchkit/pkg/dispatchkit/observability"
)

// Dispatcher routes calls to implementations by a string token.
//
// A key function computes the token from the argument. Call invokes
// the implementation registered for that token, falling back to the
// default when no registration matches. The zero value is not usable;
// construct with New or NewWithDefault.
//
// A Dispatcher is safe for concurrent use. Register and Call may be
// interleaved freely; each call observes the registrations present at
// its lookup.
type Dispatcher[A, R any] struct {
	mu    sync.RWMutex
	keyFn KeyFunc[A]
	table map[string]Func[A, R]

	// def lives outside the token table so no registration can shadow
	// or replace it. hasDef distinguishes a missing default from one
	// that was never set.
	def    Func[A, R]
	hasDef bool

	name    string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	journal journal.Store
}

// New creates a dispatcher with no default implementation.
//
// Calls whose token has no registered implementation fail with an
// UnknownTokenError. Panics if keyFn is nil.
func New[A, R any](keyFn KeyFunc[A], opts ...Option) *Dispatcher[A, R] {
	if keyFn == nil {
		panic("dispatchkit: key function cannot be nil")
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}

	return &Dispatcher[A, R]{
		keyFn:   keyFn,
		table:   make(map[string]Func[A, R]),
		name:    s.name,
		logger:  s.logger,
		metrics: s.metrics,
		spans:   s.spans,
		journal: s.journal,
	}
}

// NewWithDefault creates a dispatcher that falls back to def when a
// call's token has no registered implementation.
//
// The default is fixed for the dispatcher's lifetime: Register cannot
// replace it, and no token, including "", shadows it. Panics if keyFn
// or def is nil.
func NewWithDefault[A, R any](keyFn KeyFunc[A], def Func[A, R], opts ...Option) *Dispatcher[A, R] {
	if def == nil {
		panic("dispatchkit: implementation cannot be nil")
	}

	d := New[A, R](keyFn, opts...)
	d.def = def
	d.hasDef = true
	return d
}

// Name returns the dispatcher name used in logs, metrics, spans, and
// journal entries.
func (d *Dispatcher[A, R]) Name() string {
	return d.name
}

// Register binds an implementation to a token, replacing any existing
// registration for that token. Returns the dispatcher for chaining.
//
// Panics if fn is nil.
func (d *Dispatcher[A, R]) Register(token string, fn Func[A, R]) *Dispatcher[A, R] {
	if fn == nil {
		panic("dispatchkit: implementation cannot be nil")
	}

	d.mu.Lock()
	_, replaced := d.table[token]
	d.table[token] = fn
	d.mu.Unlock()

	observability.LogRegister(d.logger, d.name, token, replaced)
	return d
}

// resolution classifies how a call's token was resolved.
type resolution int

const (
	resolvedNone resolution = iota
	resolvedToken
	resolvedDefault
)

func (d *Dispatcher[A, R]) resolve(token string) (Func[A, R], resolution) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if fn, ok := d.table[token]; ok {
		return fn, resolvedToken
	}
	if d.hasDef {
		return d.def, resolvedDefault
	}
	return nil, resolvedNone
}

// Call dispatches a single call.
//
// The key function computes the token from arg, the matching
// implementation runs with ctx, and its result is returned. Key
// function and implementation errors are returned unchanged; Call
// never wraps them. When no implementation matches and no default
// exists, Call returns an UnknownTokenError naming the token.
//
// A key function error aborts the call before any lookup, so nothing
// is recorded for it.
func (d *Dispatcher[A, R]) Call(ctx context.Context, arg A) (result R, err error) {
	token, err := d.keyFn(arg)
	if err != nil {
		var zero R
		return zero, err
	}

	start := time.Now()

	ctx, span := d.spans.StartCallSpan(ctx, d.name, token)
	defer func() {
		d.spans.EndSpanWithError(span, err)
	}()

	observability.LogDispatch(d.logger, d.name, token)

	fn, res := d.resolve(token)
	switch res {
	case resolvedDefault:
		observability.LogFallback(d.logger, d.name, token)
		d.metrics.RecordFallback(ctx, d.name, token)
	case resolvedNone:
		observability.LogMiss(d.logger, d.name, token)
		d.metrics.RecordMiss(ctx, d.name, token)

		err = &UnknownTokenError{Dispatcher: d.name, Token: token}
		duration := time.Since(start)
		d.metrics.RecordCall(ctx, d.name, token, duration, err)
		d.appendJournal(ctx, token, journal.OutcomeMiss, err, duration)

		var zero R
		return zero, err
	}

	result, err = fn(ctx, arg)
	duration := time.Since(start)

	d.metrics.RecordCall(ctx, d.name, token, duration, err)

	outcome := journal.OutcomeHandled
	if res == resolvedDefault {
		outcome = journal.OutcomeDefault
	}
	d.appendJournal(ctx, token, outcome, err, duration)

	if err != nil {
		observability.LogDispatchError(d.logger, d.name, token, err)
		return result, err
	}

	observability.LogDispatchComplete(d.logger, d.name, token, float64(duration.Milliseconds()))
	return result, nil
}

// Func returns the dispatcher's Call method as a plain Func.
//
// Useful for registering a whole dispatcher as one implementation in
// another dispatcher.
func (d *Dispatcher[A, R]) Func() Func[A, R] {
	return d.Call
}

func (d *Dispatcher[A, R]) appendJournal(ctx context.Context, token string, outcome journal.Outcome, callErr error, duration time.Duration) {
	if d.journal == nil {
		return
	}

	entry := journal.New(d.name, token, outcome).
		WithError(callErr).
		WithDuration(duration)

	if err := d.journal.Append(ctx, entry); err != nil {
		observability.LogJournalError(d.logger, d.name, token, err)
	}
}
