package ratelimiter

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory. Buckets
// refill at Limit per Window with a burst of Limit. Idle buckets are dropped
// by the cleanup loop started with Start.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	cfg    Config
	every  rate.Limit
	idle   time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// MemoryOption configures a MemoryLimiter.
type MemoryOption func(*MemoryLimiter)

// WithIdleTimeout sets how long an unused bucket is kept.
func WithIdleTimeout(d time.Duration) MemoryOption {
	return func(l *MemoryLimiter) {
		if d > 0 {
			l.idle = d
		}
	}
}

func WithLogger(logger *slog.Logger) MemoryOption {
	return func(l *MemoryLimiter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewMemoryLimiter creates an in-process limiter. Zero config fields take
// the defaults; negative ones panic.
func NewMemoryLimiter(cfg Config, opts ...MemoryOption) *MemoryLimiter {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		panic(err)
	}

	l := &MemoryLimiter{
		visitors: make(map[string]*visitor),
		cfg:      cfg,
		every:    rate.Limit(float64(cfg.Limit) / cfg.Window.Seconds()),
		idle:     3 * time.Minute,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow implements Limiter. It never returns an error.
func (l *MemoryLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.cfg.Limit)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	res := &Result{Limit: l.cfg.Limit}
	if v.limiter.AllowN(now, 1) {
		res.Remaining = int(v.limiter.TokensAt(now))
		res.ResetAt = now.Add(l.refillTime(l.cfg.Limit - res.Remaining))
		return res, nil
	}

	res.Remaining = -1
	res.ResetAt = now.Add(l.refillTime(1))
	return res, nil
}

// Start removes idle buckets until ctx is cancelled. It blocks.
func (l *MemoryLimiter) Start(ctx context.Context) {
	ticker := time.NewTicker(l.idle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.cleanup(); n > 0 {
				l.logger.DebugContext(ctx, "idle rate limit buckets removed", slog.Int("count", n))
			}
		}
	}
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func (l *MemoryLimiter) cleanup() int {
	cutoff := l.now().Add(-l.idle)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for k, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, k)
			removed++
		}
	}
	return removed
}

func (l *MemoryLimiter) refillTime(tokens int) time.Duration {
	if tokens <= 0 {
		return 0
	}
	return time.Duration(float64(tokens) / float64(l.every) * float64(time.Second))
}
