package csrf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webutils/core/csrf"
	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/core/token"
	"github.com/dmitrymomot/webutils/core/tokenstore"
)

func newManager(t *testing.T, opts ...csrf.Option) (*csrf.Manager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return csrf.NewManager(tokenstore.NewRedisStore(client), opts...), mr
}

func TestManager_Sessionless(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create stores empty payload with ttl", func(t *testing.T) {
		t.Parallel()
		m, mr := newManager(t)

		tok, err := m.CreateSessionless(ctx)
		require.NoError(t, err)
		assert.Len(t, tok, csrf.DefaultLength)

		stored, err := mr.Get("temp-csrf:" + tok)
		require.NoError(t, err)
		assert.Equal(t, `""`, stored)
		assert.Equal(t, 600*time.Second, mr.TTL("temp-csrf:"+tok))

		require.NoError(t, m.ValidateSessionless(ctx, tok))
	})

	t.Run("validation does not consume the token", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)

		tok, err := m.CreateSessionless(ctx)
		require.NoError(t, err)
		require.NoError(t, m.ValidateSessionless(ctx, tok))
		require.NoError(t, m.ValidateSessionless(ctx, tok))
	})

	t.Run("empty and unknown tokens are invalid", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)

		assert.ErrorIs(t, m.ValidateSessionless(ctx, ""), csrf.ErrInvalid)
		assert.ErrorIs(t, m.ValidateSessionless(ctx, "nope"), csrf.ErrInvalid)
	})

	t.Run("expired after ttl", func(t *testing.T) {
		t.Parallel()
		m, mr := newManager(t)

		tok, err := m.CreateSessionless(ctx)
		require.NoError(t, err)
		mr.FastForward(601 * time.Second)

		assert.ErrorIs(t, m.ValidateSessionless(ctx, tok), csrf.ErrInvalid)
	})

	t.Run("expire makes token invalid", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)

		tok, err := m.CreateSessionless(ctx)
		require.NoError(t, err)
		m.ExpireSessionless(ctx, tok)

		assert.ErrorIs(t, m.ValidateSessionless(ctx, tok), csrf.ErrInvalid)

		// already gone, still silent
		m.ExpireSessionless(ctx, tok)
		m.ExpireSessionless(ctx, "")
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		m, mr := newManager(t, csrf.WithLogger(logger.New(logger.WithOutput(&buf))))
		mr.Close()

		_, err := m.CreateSessionless(ctx)
		assert.ErrorIs(t, err, token.ErrWrite)

		err = m.ValidateSessionless(ctx, "tok")
		assert.ErrorIs(t, err, token.ErrRead)
		assert.NotErrorIs(t, err, csrf.ErrInvalid)

		assert.NotPanics(t, func() { m.ExpireSessionless(ctx, "tok") })
		assert.Contains(t, buf.String(), "csrf token validation failed")
	})
}

func TestManager_SessionBound(t *testing.T) {
	t.Parallel()

	m := csrf.NewManager(tokenstore.NewMemoryStore())
	bound := m.Generate()

	assert.Len(t, bound, 36)
	assert.NoError(t, m.ValidateSessionBound(bound, bound))
	assert.ErrorIs(t, m.ValidateSessionBound("", bound), csrf.ErrInvalid)
	assert.ErrorIs(t, m.ValidateSessionBound(bound, ""), csrf.ErrInvalid)
	assert.ErrorIs(t, m.ValidateSessionBound(m.Generate(), bound), csrf.ErrInvalid)
	assert.ErrorIs(t, m.ValidateSessionBound(bound[:10], bound), csrf.ErrInvalid)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	store := tokenstore.NewMemoryStore()
	m := csrf.NewFromConfig(store, csrf.Config{Length: 12, TTL: time.Second, Prefix: "x"})

	tok, err := m.CreateSessionless(context.Background())
	require.NoError(t, err)
	assert.Len(t, tok, 12)

	ttl, ok := store.TTL("x:" + tok)
	require.True(t, ok)
	assert.Equal(t, time.Second, ttl)
}

