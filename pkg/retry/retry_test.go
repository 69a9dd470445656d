package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webutils/pkg/retry"
)

func TestUntil(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		var attempts []int
		err := retry.Until(context.Background(), time.Millisecond, time.Second,
			func(context.Context) error {
				calls++
				if calls < 3 {
					return errors.New("not ready")
				}
				return nil
			},
			func(attempt int, err error) { attempts = append(attempts, attempt) },
		)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{1, 2}, attempts)
	})

	t.Run("times out with the last error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection refused")
		err := retry.Until(context.Background(), 5*time.Millisecond, 30*time.Millisecond,
			func(context.Context) error { return boom }, nil)
		assert.ErrorIs(t, err, retry.ErrTimeout)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("parent cancellation stops retries", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := retry.Until(ctx, time.Millisecond, time.Second,
			func(context.Context) error { return errors.New("x") }, nil)
		assert.ErrorIs(t, err, retry.ErrTimeout)
	})
}
