// Package journal provides persistent call journaling for dispatchers.
//
// A journal records every dispatched call as an Entry: which dispatcher
// handled it, the computed token, how the call was resolved, and how long
// it took. Stores implement durable or in-memory persistence of entries.
//
// Two implementations are provided:
//   - MemoryStore: in-memory storage for testing and development
//   - SQLiteStore: durable storage backed by a SQLite database
package journal

import (
	"context"
	"errors"
)

// Store persists journal entries.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Append saves an entry to the journal.
	Append(ctx context.Context, e *Entry) error

	// List returns entries for a dispatcher, newest first.
	// A limit <= 0 returns all entries.
	List(ctx context.Context, dispatcher string, limit int) ([]*Entry, error)

	// CountByToken returns the number of entries per token for a dispatcher.
	CountByToken(ctx context.Context, dispatcher string) (map[string]int, error)

	// Purge removes all entries for a dispatcher.
	Purge(ctx context.Context, dispatcher string) error

	// Close releases resources held by the store.
	Close() error
}

// Store errors.
var (
	// ErrNilEntry is returned when appending a nil entry.
	ErrNilEntry = errors.New("nil journal entry")

	// ErrStoreClosed is returned when using a store after Close.
	ErrStoreClosed = errors.New("journal store closed")
)
