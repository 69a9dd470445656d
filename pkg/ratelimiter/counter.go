package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/webutils/core/tokenstore"
)

// CounterLimiter counts requests per key in fixed windows stored in a
// tokenstore.Store. The first request of a window creates the counter with
// the window as its TTL.
type CounterLimiter struct {
	store tokenstore.Store
	cfg   Config
	now   func() time.Time
}

// NewCounterLimiter creates a store-backed limiter. Zero config fields take
// the defaults; negative ones panic.
func NewCounterLimiter(store tokenstore.Store, cfg Config) *CounterLimiter {
	if store == nil {
		panic("ratelimiter: store is required")
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		panic(err)
	}
	return &CounterLimiter{store: store, cfg: cfg, now: time.Now}
}

// Allow implements Limiter.
func (l *CounterLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	k := tokenstore.Key(l.cfg.Prefix, key)

	n, err := l.store.Incr(ctx, k)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if n == 1 {
		if err := l.store.Expire(ctx, k, l.cfg.Window); err != nil {
			// A counter without TTL would block the key forever.
			derr := l.store.Delete(context.WithoutCancel(ctx), k)
			if derr != nil {
				derr = fmt.Errorf("ratelimiter: counter %s left without ttl: %w", k, derr)
			}
			return nil, errors.Join(ErrStoreUnavailable, err, derr)
		}
	}

	return &Result{
		Limit:     l.cfg.Limit,
		Remaining: l.cfg.Limit - int(n),
		ResetAt:   l.now().Add(l.cfg.Window),
	}, nil
}
