package ratelimiter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Limiter decides whether one more request for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// Result describes the state of a key after a request was counted.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the request fits in the limit.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is the wait until the window resets, or zero if allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

const (
	DefaultLimit  = 20
	DefaultWindow = time.Second
	DefaultPrefix = "rate_limit"
)

// Config configures a limiter: at most Limit requests per Window.
type Config struct {
	Limit  int           `env:"RATE_LIMIT" envDefault:"20"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1s"`
	Prefix string        `env:"RATE_LIMIT_PREFIX" envDefault:"rate_limit"`
}

func (c Config) validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %s", ErrInvalidConfig, c.Window)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	return c
}

// RequestKey hashes the client IP and the request URL, so every client
// is limited separately on every URL. The source port is dropped so new
// connections share the client's counter.
func RequestKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	sum := sha256.Sum256([]byte(host + r.URL.String()))
	return hex.EncodeToString(sum[:])
}
