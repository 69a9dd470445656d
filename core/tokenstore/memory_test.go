package tokenstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webutils/core/tokenstore"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set get exists delete", func(t *testing.T) {
		t.Parallel()
		store := tokenstore.NewMemoryStore()

		require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))

		ok, err := store.Exists(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)

		val, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", string(val))

		require.NoError(t, store.Delete(ctx, "k"))
		val, err = store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, val)
		require.NoError(t, store.Delete(ctx, "k"))
	})

	t.Run("stored value is copied", func(t *testing.T) {
		t.Parallel()
		store := tokenstore.NewMemoryStore()

		buf := []byte("abc")
		require.NoError(t, store.Set(ctx, "k", buf, 0))
		buf[0] = 'x'

		val, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(val))
	})

	t.Run("expiration and refresh", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		store := tokenstore.NewMemoryStore(tokenstore.WithClock(clock.Now))

		require.NoError(t, store.Set(ctx, "k", []byte("v"), 10*time.Second))
		clock.Advance(8 * time.Second)
		require.NoError(t, store.Expire(ctx, "k", 10*time.Second))

		ttl, ok := store.TTL("k")
		require.True(t, ok)
		assert.Equal(t, 10*time.Second, ttl)

		clock.Advance(8 * time.Second)
		ok, err := store.Exists(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)

		clock.Advance(2 * time.Second)
		ok, err = store.Exists(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("expire with non-positive ttl deletes", func(t *testing.T) {
		t.Parallel()
		store := tokenstore.NewMemoryStore()

		require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
		require.NoError(t, store.Expire(ctx, "k", 0))
		_, ok := store.TTL("k")
		assert.False(t, ok)
	})

	t.Run("incr keeps ttl", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		store := tokenstore.NewMemoryStore(tokenstore.WithClock(clock.Now))

		n, err := store.Incr(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		require.NoError(t, store.Expire(ctx, "c", time.Second))
		n, err = store.Incr(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		ttl, ok := store.TTL("c")
		require.True(t, ok)
		assert.Equal(t, time.Second, ttl)

		clock.Advance(time.Second)
		n, err = store.Incr(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		require.NoError(t, store.Set(ctx, "text", []byte("abc"), 0))
		_, err = store.Incr(ctx, "text")
		assert.ErrorIs(t, err, tokenstore.ErrNotInteger)
	})

	t.Run("setnx", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		store := tokenstore.NewMemoryStore(tokenstore.WithClock(clock.Now))

		ok, err := store.SetNX(ctx, "lock", []byte("1"), time.Second)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.SetNX(ctx, "lock", []byte("1"), time.Second)
		require.NoError(t, err)
		assert.False(t, ok)

		clock.Advance(time.Second)
		ok, err = store.SetNX(ctx, "lock", []byte("1"), time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("closed store is unavailable", func(t *testing.T) {
		t.Parallel()
		store := tokenstore.NewMemoryStore()
		store.Start(ctx)
		require.NoError(t, store.Close())

		_, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, tokenstore.ErrUnavailable)
		assert.ErrorIs(t, err, tokenstore.ErrClosed)
	})

	t.Run("cancelled context is unavailable", func(t *testing.T) {
		t.Parallel()
		store := tokenstore.NewMemoryStore()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := store.Set(cctx, "k", []byte("v"), time.Second)
		assert.ErrorIs(t, err, tokenstore.ErrUnavailable)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("sweeper removes expired keys", func(t *testing.T) {
		t.Parallel()
		store := tokenstore.NewMemoryStore(tokenstore.WithCleanupInterval(10 * time.Millisecond))
		store.Start(ctx)
		t.Cleanup(func() { _ = store.Close() })

		require.NoError(t, store.Set(ctx, "k", []byte("v"), 5*time.Millisecond))
		assert.Eventually(t, func() bool {
			return store.Len() == 0
		}, time.Second, 10*time.Millisecond)
	})
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := tokenstore.NewMemoryStore()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Incr(ctx, "counter")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	val, err := store.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, "50", string(val))
}

var (
	_ tokenstore.Store  = (*tokenstore.MemoryStore)(nil)
	_ tokenstore.Locker = (*tokenstore.MemoryStore)(nil)
	_ tokenstore.Store  = (*tokenstore.RedisStore)(nil)
	_ tokenstore.Locker = (*tokenstore.RedisStore)(nil)
)
