package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Version is the current journal entry format version.
// Increment when making breaking changes to entry structure.
const Version = 1

// Outcome classifies how a dispatched call was resolved.
type Outcome string

// Outcomes recorded in journal entries.
const (
	// OutcomeHandled means a token-specific implementation ran.
	OutcomeHandled Outcome = "handled"

	// OutcomeDefault means the default implementation ran.
	OutcomeDefault Outcome = "default"

	// OutcomeMiss means no implementation was available for the token.
	OutcomeMiss Outcome = "miss"
)

// Entry is the persisted record of a single dispatched call.
type Entry struct {
	// Metadata
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	// Call identity
	Dispatcher string `json:"dispatcher"`
	Token      string `json:"token"`

	// Result
	Outcome    Outcome `json:"outcome"`
	Error      string  `json:"error,omitempty"`
	DurationMS float64 `json:"duration_ms"`
}

// Marshal serializes an entry to JSON.
func (e *Entry) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Unmarshal deserializes an entry from JSON.
func Unmarshal(data []byte) (*Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// New creates a journal entry for a dispatched call.
// The entry ID is auto-generated.
func New(dispatcher, token string, outcome Outcome) *Entry {
	return &Entry{
		ID:         uuid.New().String(),
		Version:    Version,
		Timestamp:  time.Now().UTC(),
		Dispatcher: dispatcher,
		Token:      token,
		Outcome:    outcome,
	}
}

// WithError records the error the call returned, if any.
func (e *Entry) WithError(err error) *Entry {
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration records how long the call took.
func (e *Entry) WithDuration(d time.Duration) *Entry {
	e.DurationMS = float64(d.Milliseconds())
	return e
}
