package handler

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNilResponse is reported when a handler returns a nil Response.
var ErrNilResponse = errors.New("handler returned nil response")

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a type-safe HTTP request handler with custom context support.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles errors during request processing.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// Chain wraps h in mws so that mws[0] runs first.
func Chain[C Context](h HandlerFunc[C], mws ...Middleware[C]) HandlerFunc[C] {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Serve adapts h to http.Handler. newCtx builds the per-request context
// (NewContext for Base). Render and handler errors, nil responses and
// panics go to onError unless the response was already started. A nil
// onError writes a plain 500.
func Serve[C Context](newCtx func(http.ResponseWriter, *http.Request) C, h HandlerFunc[C], onError ErrorHandler[C]) http.Handler {
	if onError == nil {
		onError = func(ctx C, err error) {
			http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := &responseWriter{ResponseWriter: w}
		ctx := newCtx(ww, r)

		defer func() {
			if v := recover(); v != nil && !ww.written {
				onError(ctx, toError(v))
			}
		}()

		resp := h(ctx)
		if resp == nil {
			onError(ctx, ErrNilResponse)
			return
		}
		if err := resp(ww, ctx.Request()); err != nil && !ww.written {
			onError(ctx, err)
		}
	})
}

func toError(v any) error {
	switch e := v.(type) {
	case error:
		return e
	case string:
		return errors.New(e)
	default:
		return fmt.Errorf("panic: %v", e)
	}
}

// responseWriter records whether the header has been written.
type responseWriter struct {
	http.ResponseWriter
	written bool
}

func (w *responseWriter) WriteHeader(status int) {
	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
