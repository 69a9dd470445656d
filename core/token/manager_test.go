package token_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webutils/core/token"
	"github.com/dmitrymomot/webutils/core/tokenstore"
)

type payload struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
}

func newManager(t *testing.T, cfg token.Config) (*token.Manager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return token.NewManager(tokenstore.NewRedisStore(client), cfg), mr
}

var alnum = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func TestRandom(t *testing.T) {
	t.Parallel()

	t.Run("length and alphabet", func(t *testing.T) {
		t.Parallel()

		for _, n := range []int{1, 20, 36, 64} {
			tok := token.Random(n)
			assert.Len(t, tok, n)
			assert.Regexp(t, alnum, tok)
		}
	})

	t.Run("unique", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			tok := token.Random(36)
			_, dup := seen[tok]
			require.False(t, dup, "duplicate token %s", tok)
			seen[tok] = struct{}{}
		}
	})

	t.Run("panics on non-positive length", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { token.Random(0) })
		assert.Panics(t, func() { token.Random(-1) })
	})
}

func TestNewManager(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { token.NewManager(nil, token.Config{}) })
	assert.Panics(t, func() {
		token.NewManager(tokenstore.NewMemoryStore(), token.Config{Length: -1})
	})

	m := token.NewManager(tokenstore.NewMemoryStore(), token.Config{Prefix: "ro"})
	assert.Panics(t, func() { m.Generate() }, "zero-length manager cannot generate")
	assert.Equal(t, "ro:abc", m.Key("abc"))
}

func TestManager(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := token.Config{Length: 20, TTL: time.Minute, Prefix: "test"}

	t.Run("write then read round-trips", func(t *testing.T) {
		t.Parallel()
		m, mr := newManager(t, cfg)

		tok := m.Generate()
		assert.Len(t, tok, 20)
		require.NoError(t, m.Write(ctx, tok, payload{UserID: "u1", Count: 3}))

		stored, err := mr.Get("test:" + tok)
		require.NoError(t, err)
		assert.JSONEq(t, `{"user_id":"u1","count":3}`, stored)
		assert.Equal(t, time.Minute, mr.TTL("test:"+tok))

		var got payload
		found, err := m.Read(ctx, tok, &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, payload{UserID: "u1", Count: 3}, got)

		raw, err := m.ReadRaw(ctx, tok)
		require.NoError(t, err)
		assert.JSONEq(t, stored, string(raw))
	})

	t.Run("raw write is stored unencoded", func(t *testing.T) {
		t.Parallel()
		m, mr := newManager(t, cfg)

		require.NoError(t, m.WriteRaw(ctx, "key", []byte("plain-value")))

		stored, err := mr.Get("test:key")
		require.NoError(t, err)
		assert.Equal(t, "plain-value", stored)
		assert.Equal(t, time.Minute, mr.TTL("test:key"))

		raw, err := m.ReadRaw(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("plain-value"), raw)
	})

	t.Run("absent token reads as not found", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t, cfg)

		var got payload
		found, err := m.Read(ctx, "missing", &got)
		require.NoError(t, err)
		assert.False(t, found)

		ok, err := m.Exists(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("record vanishes after ttl", func(t *testing.T) {
		t.Parallel()
		m, mr := newManager(t, cfg)

		tok := m.Generate()
		require.NoError(t, m.Write(ctx, tok, ""))
		mr.FastForward(time.Minute + time.Second)

		ok, err := m.Exists(ctx, tok)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("refresh slides expiration", func(t *testing.T) {
		t.Parallel()
		m, mr := newManager(t, cfg)

		tok := m.Generate()
		require.NoError(t, m.Write(ctx, tok, ""))
		mr.FastForward(50 * time.Second)
		require.NoError(t, m.Refresh(ctx, tok))
		assert.Equal(t, time.Minute, mr.TTL("test:"+tok))

		mr.FastForward(50 * time.Second)
		ok, err := m.Exists(ctx, tok)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("refresh of missing record is a no-op", func(t *testing.T) {
		t.Parallel()
		m, mr := newManager(t, cfg)

		require.NoError(t, m.Refresh(ctx, "missing"))
		assert.False(t, mr.Exists("test:missing"))
	})

	t.Run("expire deletes", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t, cfg)

		tok := m.Generate()
		require.NoError(t, m.Write(ctx, tok, ""))
		require.NoError(t, m.Expire(ctx, tok))
		require.NoError(t, m.Expire(ctx, tok))

		ok, err := m.Exists(ctx, tok)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt record", func(t *testing.T) {
		t.Parallel()
		m, mr := newManager(t, cfg)

		require.NoError(t, mr.Set("test:bad", "{not json"))

		var got payload
		found, err := m.Read(ctx, "bad", &got)
		assert.False(t, found)
		assert.ErrorIs(t, err, token.ErrDecode)
		assert.NotErrorIs(t, err, token.ErrRead)
	})

	t.Run("unencodable payload", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t, cfg)

		err := m.Write(ctx, "x", make(chan int))
		assert.ErrorIs(t, err, token.ErrEncode)
		assert.NotErrorIs(t, err, token.ErrWrite)
	})

	t.Run("backend failures map to operation kinds", func(t *testing.T) {
		t.Parallel()
		m, mr := newManager(t, cfg)
		mr.Close()

		_, err := m.Exists(ctx, "x")
		assert.ErrorIs(t, err, token.ErrRead)
		assert.ErrorIs(t, err, tokenstore.ErrUnavailable)

		var got payload
		_, err = m.Read(ctx, "x", &got)
		assert.ErrorIs(t, err, token.ErrRead)

		assert.ErrorIs(t, m.Write(ctx, "x", ""), token.ErrWrite)
		assert.ErrorIs(t, m.Refresh(ctx, "x"), token.ErrRefresh)
		assert.ErrorIs(t, m.Expire(ctx, "x"), token.ErrExpiration)
	})

	t.Run("deadline surfaces as read error", func(t *testing.T) {
		t.Parallel()
		m := token.NewManager(tokenstore.NewMemoryStore(), cfg)

		dctx, cancel := context.WithTimeout(ctx, -time.Second)
		defer cancel()

		_, err := m.Exists(dctx, "x")
		assert.ErrorIs(t, err, token.ErrRead)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
