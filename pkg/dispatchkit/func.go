package dispatchkit

import "context"

// Func is an implementation invoked by a dispatcher.
//
// It receives the call's context and argument and returns a result.
// Errors returned by a Func pass through Call unchanged.
type Func[A, R any] func(ctx context.Context, arg A) (R, error)

// KeyFunc computes the dispatch token for an argument.
//
// The token selects which registered implementation handles the call.
// An error aborts the call before any lookup and is returned to the
// caller unchanged.
type KeyFunc[A any] func(arg A) (string, error)
