// Package manifest provides declarative dispatcher construction from
// YAML or JSON documents.
//
// A manifest names a dispatcher and maps dispatch tokens to named
// implementations. Build resolves those names against implementations
// supplied in code and produces a ready dispatcher, so routing tables
// can live in configuration instead of source.
package manifest

import (
	"errors"
	"fmt"
)

// Manifest describes a dispatcher's routing table.
type Manifest struct {
	// Name is the dispatcher name used in logs, metrics, and journals.
	Name string `yaml:"name" json:"name"`

	// Routes maps dispatch tokens to implementation names.
	Routes map[string]string `yaml:"routes" json:"routes"`

	// Default names the implementation used when no route matches the
	// token. Empty means the dispatcher has no default.
	Default string `yaml:"default,omitempty" json:"default,omitempty"`
}

// ErrUnknownImplementation is returned when a manifest names an
// implementation that was not supplied to Build.
var ErrUnknownImplementation = errors.New("unknown implementation")

// UnknownImplementationError reports a manifest route or default whose
// implementation name was not supplied to Build.
//
// It unwraps to ErrUnknownImplementation.
type UnknownImplementationError struct {
	Token   string // route token, empty for the default slot
	Impl    string // implementation name the manifest asked for
	Default bool   // true when the default slot named the implementation
}

func (e *UnknownImplementationError) Error() string {
	if e.Default {
		return fmt.Sprintf("manifest: default names unknown implementation %q", e.Impl)
	}
	return fmt.Sprintf("manifest: route %q names unknown implementation %q", e.Token, e.Impl)
}

func (e *UnknownImplementationError) Unwrap() error {
	return ErrUnknownImplementation
}
