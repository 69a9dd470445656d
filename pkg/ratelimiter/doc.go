// Package ratelimiter limits request rates per key.
//
// CounterLimiter is a fixed-window counter kept in a tokenstore.Store, so it
// is shared by every process talking to the same Redis. MemoryLimiter uses
// golang.org/x/time/rate token buckets held in-process.
//
//	limiter := ratelimiter.NewCounterLimiter(store, ratelimiter.Config{Limit: 20, Window: time.Second})
//	res, err := limiter.Allow(ctx, ratelimiter.RequestKey(r))
//	if err != nil {
//		// store unavailable
//	}
//	if !res.Allowed() {
//		w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter().Seconds())))
//	}
package ratelimiter
