package dispatchkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/dispatchkit/pkg/dispatchkit/journal"
)

// testLogHandler captures log records for testing.
type testLogHandler struct {
	buf   *bytes.Buffer
	level slog.Level
}

func newTestLogHandler() *testLogHandler {
	return &testLogHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	enc := json.NewEncoder(h.buf)
	return enc.Encode(data)
}

func (h *testLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *testLogHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *testLogHandler) getRecords() []map[string]any {
	var records []map[string]any
	lines := bytes.Split(h.buf.Bytes(), []byte("\n"))
	for _, line := range lines {
		if len(line) > 0 {
			var m map[string]any
			if err := json.Unmarshal(line, &m); err == nil {
				records = append(records, m)
			}
		}
	}
	return records
}

func TestCall_WithLogger(t *testing.T) {
	h := newTestLogHandler()
	logger := slog.New(h)

	d := New[Event, string](byKind, WithName("events"), WithLogger(logger)).
		Register("created", echo)

	_, err := d.Call(context.Background(), Event{Kind: "created", Payload: "x"})
	require.NoError(t, err)

	// Check log records
	records := h.getRecords()
	require.NotEmpty(t, records, "Expected log records")

	var foundRegister, foundDispatch, foundComplete bool
	for _, r := range records {
		msg, _ := r["msg"].(string)
		switch msg {
		case "implementation registered":
			foundRegister = true
			assert.Equal(t, "events", r["dispatcher"])
			assert.Equal(t, "created", r["token"])
			assert.Equal(t, false, r["replaced"])
		case "dispatching call":
			foundDispatch = true
			assert.Equal(t, "created", r["token"])
		case "call completed":
			foundComplete = true
			assert.Equal(t, "events", r["dispatcher"])
			assert.Contains(t, r, "duration_ms")
		}
	}

	assert.True(t, foundRegister, "Expected 'implementation registered' log")
	assert.True(t, foundDispatch, "Expected 'dispatching call' log")
	assert.True(t, foundComplete, "Expected 'call completed' log")
}

func TestCall_WithLogger_ReplacedRegistration(t *testing.T) {
	h := newTestLogHandler()
	logger := slog.New(h)

	New[Event, string](byKind, WithLogger(logger)).
		Register("created", echo).
		Register("created", echo)

	records := h.getRecords()
	require.Len(t, records, 2)
	assert.Equal(t, false, records[0]["replaced"])
	assert.Equal(t, true, records[1]["replaced"])
}

func TestCall_WithLogger_Error(t *testing.T) {
	h := newTestLogHandler()
	logger := slog.New(h)

	errBoom := errors.New("boom")
	d := New[Event, string](byKind, WithName("events"), WithLogger(logger)).
		Register("created", makeFailingImpl(errBoom))

	_, err := d.Call(context.Background(), Event{Kind: "created"})
	require.Error(t, err)

	records := h.getRecords()

	var foundError bool
	for _, r := range records {
		if r["msg"] == "call failed" {
			foundError = true
			assert.Equal(t, "created", r["token"])
			assert.Equal(t, "boom", r["error"])
			assert.Equal(t, "ERROR", r["level"])
		}
	}

	assert.True(t, foundError, "Expected 'call failed' log")
}

func TestCall_WithLogger_Fallback(t *testing.T) {
	h := newTestLogHandler()
	logger := slog.New(h)

	d := NewWithDefault(byKind, echo, WithName("events"), WithLogger(logger))

	_, err := d.Call(context.Background(), Event{Kind: "archived"})
	require.NoError(t, err)

	records := h.getRecords()

	var foundFallback bool
	for _, r := range records {
		if r["msg"] == "falling back to default implementation" {
			foundFallback = true
			assert.Equal(t, "archived", r["token"])
		}
	}

	assert.True(t, foundFallback, "Expected fallback log")
}

func TestCall_WithLogger_Miss(t *testing.T) {
	h := newTestLogHandler()
	logger := slog.New(h)

	d := New[Event, string](byKind, WithName("events"), WithLogger(logger))

	_, err := d.Call(context.Background(), Event{Kind: "archived"})
	require.Error(t, err)

	records := h.getRecords()

	var foundMiss bool
	for _, r := range records {
		if r["msg"] == "no implementation found" {
			foundMiss = true
			assert.Equal(t, "archived", r["token"])
			assert.Equal(t, "ERROR", r["level"])
		}
	}

	assert.True(t, foundMiss, "Expected miss log")
}

func TestCall_WithLogger_JournalAppendFailure(t *testing.T) {
	h := newTestLogHandler()
	logger := slog.New(h)

	d := New[Event, string](byKind, WithLogger(logger), WithJournal(failingStore{})).
		Register("created", echo)

	_, err := d.Call(context.Background(), Event{Kind: "created"})
	require.NoError(t, err)

	records := h.getRecords()

	var foundWarn bool
	for _, r := range records {
		if r["msg"] == "journal append failed" {
			foundWarn = true
			assert.Equal(t, "disk full", r["error"])
			assert.Equal(t, "WARN", r["level"])
		}
	}

	assert.True(t, foundWarn, "Expected journal warning log")
}

func TestCall_WithMetrics_Disabled(t *testing.T) {
	// Metrics disabled by default - should not panic
	d := New[Event, string](byKind).Register("created", echo)

	result, err := d.Call(context.Background(), Event{Kind: "created", Payload: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", result)
}

func TestCall_WithMetrics_Enabled(t *testing.T) {
	// Enable metrics - should not panic even without provider
	d := New[Event, string](byKind, WithMetrics(true)).Register("created", echo)

	result, err := d.Call(context.Background(), Event{Kind: "created", Payload: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", result)
}

func TestCall_WithMetrics_Enabled_Miss(t *testing.T) {
	d := New[Event, string](byKind, WithMetrics(true))

	_, err := d.Call(context.Background(), Event{Kind: "archived"})
	assert.ErrorIs(t, err, ErrNoImplementation)
}

func TestCall_WithTracing_Enabled(t *testing.T) {
	// Enable tracing - should not panic even without provider
	d := New[Event, string](byKind, WithTracing(true)).Register("created", echo)

	result, err := d.Call(context.Background(), Event{Kind: "created", Payload: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", result)
}

func TestCall_WithTracing_Enabled_Error(t *testing.T) {
	errBoom := errors.New("boom")
	d := New[Event, string](byKind, WithTracing(true)).
		Register("created", makeFailingImpl(errBoom))

	_, err := d.Call(context.Background(), Event{Kind: "created"})
	assert.Same(t, errBoom, err)
}

func TestCall_WithAllObservability(t *testing.T) {
	h := newTestLogHandler()
	logger := slog.New(h)
	store := journal.NewMemoryStore()

	d := New[Event, string](byKind,
		WithName("events"),
		WithLogger(logger),
		WithMetrics(true),
		WithTracing(true),
		WithJournal(store)).
		Register("created", echo)

	result, err := d.Call(context.Background(), Event{Kind: "created", Payload: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", result)

	// Verify logs and journal entries were captured
	assert.NotEmpty(t, h.getRecords())
	assert.Equal(t, 1, store.Len())
}
