package dispatchkit

import (
	"context"
	"fmt"
)

// Test argument types used across tests

// Event is a simple routed argument for testing dispatch.
type Event struct {
	Kind    string
	Payload string
}

// byKind keys an Event by its Kind field.
func byKind(e Event) (string, error) {
	return e.Kind, nil
}

// Helper implementations

// echo returns the event payload unchanged.
func echo(ctx context.Context, e Event) (string, error) {
	return e.Payload, nil
}

// makeTaggingImpl creates an implementation that prefixes its output
// so tests can tell which implementation ran.
func makeTaggingImpl(tag string) Func[Event, string] {
	return func(ctx context.Context, e Event) (string, error) {
		return fmt.Sprintf("%s:%s", tag, e.Payload), nil
	}
}

// makeFailingImpl creates an implementation that returns the given error.
func makeFailingImpl(err error) Func[Event, string] {
	return func(ctx context.Context, e Event) (string, error) {
		return "", err
	}
}

// makePanicImpl creates an implementation that panics with the given value.
func makePanicImpl(value any) Func[Event, string] {
	return func(ctx context.Context, e Event) (string, error) {
		panic(value)
	}
}
