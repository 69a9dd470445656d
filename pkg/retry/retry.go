// Package retry repeats an operation at a fixed interval until it succeeds
// or a deadline passes. Connection bootstrap code uses it to wait for
// backing services to come up.
package retry

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is joined with the last attempt's error when the deadline
// passes.
var ErrTimeout = errors.New("retry: timed out")

// Until calls fn every interval until it returns nil, timeout elapses or
// ctx is done. onRetry, if not nil, is called after every failed attempt
// with the attempt number (starting at 1) and its error.
func Until(ctx context.Context, interval, timeout time.Duration, fn func(context.Context) error, onRetry func(attempt int, err error)) error {
	if interval <= 0 {
		interval = time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	timer := time.NewTimer(0)
	defer timer.Stop()

	var lastErr error
	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			if lastErr == nil {
				lastErr = ctx.Err()
			}
			return errors.Join(ErrTimeout, lastErr)
		case <-timer.C:
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if onRetry != nil {
			onRetry(attempt, lastErr)
		}
		timer.Reset(interval)
	}
}
