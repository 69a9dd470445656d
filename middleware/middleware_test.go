package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/webutils/core/handler"
	"github.com/dmitrymomot/webutils/core/response"
	"github.com/dmitrymomot/webutils/core/tokenstore"
)

type base = *handler.Base

func serve(h handler.HandlerFunc[base], req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.Serve(handler.NewContext, h, response.ErrorHandler[base]).ServeHTTP(rec, req)
	return rec
}

func ok(ctx base) handler.Response {
	return response.String("ok")
}

func newRedisStore(t *testing.T) (tokenstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return tokenstore.NewRedisStore(client), mr
}
