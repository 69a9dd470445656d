package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webutils/core/handler"
	"github.com/dmitrymomot/webutils/core/response"
	"github.com/dmitrymomot/webutils/core/session"
	"github.com/dmitrymomot/webutils/middleware"
)

func profile(ctx base) handler.Response {
	sess, ok := middleware.GetSession(ctx)
	if !ok {
		return response.Error(response.ErrUnauthorized)
	}
	return response.String(sess.Username)
}

func TestSessionAuth(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t)
	sessions := session.NewManager(store)
	h := handler.Chain(profile, middleware.SessionAuth[base](sessions))

	sess, err := sessions.CreateAndActivate(context.Background(), session.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.AddCookie(&http.Cookie{Name: "SESSIONID", Value: sess.Token})

		rec := serve(h, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())

		// cookie re-issued with a fresh lifetime
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, sess.Token, cookies[0].Value)
		assert.Equal(t, 7200, cookies[0].MaxAge)
	})

	t.Run("no cookie", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/profile", nil))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("unknown token clears cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.AddCookie(&http.Cookie{Name: "SESSIONID", Value: "nope"})

		rec := serve(h, req)
		assert.Equal(t, http.StatusFound, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "SESSIONID", cookies[0].Name)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("custom login url", func(t *testing.T) {
		h := handler.Chain(profile, middleware.SessionAuthWithConfig(middleware.SessionAuthConfig[base]{
			Sessions: sessions,
			LoginURL: "/signin",
		}))
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/profile", nil))
		assert.Equal(t, "/signin", rec.Header().Get("Location"))
	})

	t.Run("skip", func(t *testing.T) {
		h := handler.Chain(ok, middleware.SessionAuthWithConfig(middleware.SessionAuthConfig[base]{
			Sessions: sessions,
			Skip:     func(ctx base) bool { return ctx.Request().URL.Path == "/public" },
		}))
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/public", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("store outage", func(t *testing.T) {
		mr.Close()

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.AddCookie(&http.Cookie{Name: "SESSIONID", Value: sess.Token})

		rec := serve(h, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestSessionAuth_NilManager(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { middleware.SessionAuth[base](nil) })
}
