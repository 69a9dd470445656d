package handler

import (
	"context"
	"net/http"
	"time"
)

// Context defines the contract for request contexts.
// Base is the default implementation.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}

// Base is the default Context. It delegates context.Context methods to the
// request's context, so values stored with SetValue are visible both through
// Value and through Request().Context().
type Base struct {
	w http.ResponseWriter
	r *http.Request
}

// NewContext wraps the writer and request of a single HTTP exchange.
func NewContext(w http.ResponseWriter, r *http.Request) *Base {
	return &Base{w: w, r: r}
}

func (c *Base) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *Base) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *Base) Err() error                  { return c.r.Context().Err() }
func (c *Base) Value(key any) any           { return c.r.Context().Value(key) }

func (c *Base) Request() *http.Request              { return c.r }
func (c *Base) ResponseWriter() http.ResponseWriter { return c.w }

// Param returns a path value matched by http.ServeMux, or "".
func (c *Base) Param(key string) string {
	return c.r.PathValue(key)
}

// SetValue stores val on the request context.
// Not safe for concurrent use; a Base belongs to one request.
func (c *Base) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}
