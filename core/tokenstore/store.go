package tokenstore

import (
	"context"
	"time"
)

// Store is the key-value contract the token managers are built on.
// Every method is a single synchronous round-trip to the backend.
//
// A missing key is never an error: Exists reports false, Get returns a nil
// slice and Delete/Expire are no-ops. Backend failures are wrapped with
// ErrUnavailable and are not retried.
type Store interface {
	// Exists reports whether key holds a live value.
	Exists(ctx context.Context, key string) (bool, error)
	// Get returns the value stored under key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key with the given time-to-live.
	// A non-positive ttl stores the value without expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key.
	Delete(ctx context.Context, key string) error
	// Expire resets the time-to-live of key without touching its value.
	Expire(ctx context.Context, key string, ttl time.Duration) error
	// Incr atomically increments the integer stored under key and returns the
	// new value. A missing key is treated as zero.
	Incr(ctx context.Context, key string) (int64, error)
}

// Locker is implemented by stores that can set a key only when it is absent.
// It backs short-lived advisory locks.
type Locker interface {
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}

// Key joins a namespace prefix and a token into a store key.
func Key(prefix, token string) string {
	if prefix == "" {
		return token
	}
	return prefix + ":" + token
}
