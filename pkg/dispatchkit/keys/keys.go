// Package keys provides ready-made key functions and combinators for
// dispatchers.
//
// Key functions compute the dispatch token from a call's argument.
// This package covers the common cases: the argument itself, a field
// inside a JSON payload, the argument's dynamic type, and token
// normalization on top of any other key function.
package keys

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/randalmurphal/dispatchkit/pkg/dispatchkit"
)

// Identity returns the argument itself as the token.
func Identity(arg string) (string, error) {
	return arg, nil
}

// Stringer keys by the argument's String method.
func Stringer[T fmt.Stringer]() dispatchkit.KeyFunc[T] {
	return func(arg T) (string, error) {
		return arg.String(), nil
	}
}

// TypeName keys by the argument's dynamic type, qualified by package
// path for named types. Pointers are dereferenced, so *bytes.Buffer
// and bytes.Buffer both produce "bytes.Buffer". A nil argument
// produces "<nil>".
func TypeName[T any]() dispatchkit.KeyFunc[T] {
	return func(arg T) (string, error) {
		t := reflect.TypeOf(arg)
		if t == nil {
			return "<nil>", nil
		}
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t.Name() == "" {
			// Unnamed types (slices, maps, funcs) have no package path.
			return t.String(), nil
		}
		if pkg := t.PkgPath(); pkg != "" {
			return pkg + "." + t.Name(), nil
		}
		return t.Name(), nil
	}
}

// JSONField keys by a field in a JSON payload, addressed by a gjson
// path such as "type" or "event.kind". Missing fields fail the call.
func JSONField(path string) dispatchkit.KeyFunc[[]byte] {
	return func(payload []byte) (string, error) {
		result := gjson.GetBytes(payload, path)
		if !result.Exists() {
			return "", fmt.Errorf("json field %q not found", path)
		}
		return result.String(), nil
	}
}

// Map transforms the token computed by keyFn. Errors from keyFn pass
// through unchanged and transform does not run.
func Map[A any](keyFn dispatchkit.KeyFunc[A], transform func(string) string) dispatchkit.KeyFunc[A] {
	return func(arg A) (string, error) {
		token, err := keyFn(arg)
		if err != nil {
			return "", err
		}
		return transform(token), nil
	}
}

// Lower lowercases the token computed by keyFn.
func Lower[A any](keyFn dispatchkit.KeyFunc[A]) dispatchkit.KeyFunc[A] {
	return Map(keyFn, strings.ToLower)
}

// TrimSpace trims leading and trailing whitespace from the token
// computed by keyFn.
func TrimSpace[A any](keyFn dispatchkit.KeyFunc[A]) dispatchkit.KeyFunc[A] {
	return Map(keyFn, strings.TrimSpace)
}
