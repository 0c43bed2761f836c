package dispatchkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoImplementation is returned when a call's token has no
	// registered implementation and the dispatcher has no default.
	ErrNoImplementation = errors.New("no implementation for token")
)

// UnknownTokenError reports a call whose token matched no registered
// implementation on a dispatcher without a default.
//
// It unwraps to ErrNoImplementation.
type UnknownTokenError struct {
	Dispatcher string // dispatcher name
	Token      string // token computed by the key function
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("dispatcher %s: no implementation for token %q", e.Dispatcher, e.Token)
}

func (e *UnknownTokenError) Unwrap() error {
	return ErrNoImplementation
}
