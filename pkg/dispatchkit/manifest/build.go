package manifest

import (
	"sort"

	"github.com/randalmurphal/dispatchkit/pkg/dispatchkit"
)

// Build constructs a dispatcher from a manifest.
//
// Every route target and the default (if set) must name a key in
// impls; otherwise Build returns an UnknownImplementationError and
// constructs nothing. Route targets are checked in token order, then
// the default, so the reported error is deterministic.
//
// The manifest's name is applied via WithName; options in opts are
// applied after it and may override it. Panics if keyFn is nil.
func Build[A, R any](m Manifest, keyFn dispatchkit.KeyFunc[A], impls map[string]dispatchkit.Func[A, R], opts ...dispatchkit.Option) (*dispatchkit.Dispatcher[A, R], error) {
	tokens := make([]string, 0, len(m.Routes))
	for token := range m.Routes {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	for _, token := range tokens {
		implName := m.Routes[token]
		if _, ok := impls[implName]; !ok {
			return nil, &UnknownImplementationError{Token: token, Impl: implName}
		}
	}

	var def dispatchkit.Func[A, R]
	if m.Default != "" {
		fn, ok := impls[m.Default]
		if !ok {
			return nil, &UnknownImplementationError{Impl: m.Default, Default: true}
		}
		def = fn
	}

	if m.Name != "" {
		opts = append([]dispatchkit.Option{dispatchkit.WithName(m.Name)}, opts...)
	}

	var d *dispatchkit.Dispatcher[A, R]
	if def != nil {
		d = dispatchkit.NewWithDefault(keyFn, def, opts...)
	} else {
		d = dispatchkit.New[A, R](keyFn, opts...)
	}

	for _, token := range tokens {
		d.Register(token, impls[m.Routes[token]])
	}
	return d, nil
}
