package tokenstore

import "errors"

var (
	// ErrUnavailable marks every failure to reach or talk to the backend:
	// timeouts, refused connections, cancelled contexts, closed stores.
	ErrUnavailable = errors.New("tokenstore: backend unavailable")
	// ErrNotInteger is returned by Incr when the stored value is not an integer.
	ErrNotInteger = errors.New("tokenstore: value is not an integer")
)
