package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/webutils/core/handler"
)

type requestIDKey struct{}

// RequestIDHeader is read from and written to by RequestID.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an ID, stores it in the context and
// echoes it in the response header. An incoming ID is reused when
// trustIncoming is set.
func RequestID[C handler.Context](trustIncoming bool) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			id := ""
			if trustIncoming {
				id = ctx.Request().Header.Get(RequestIDHeader)
			}
			if id == "" {
				id = uuid.NewString()
			}
			ctx.SetValue(requestIDKey{}, id)

			resp := next(ctx)
			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set(RequestIDHeader, id)
				return resp(w, r)
			}
		}
	}
}

// GetRequestID returns the ID stored by RequestID.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// RequestIDExtractor adds request_id to log records; pass it to
// logger.WithContextExtractors.
func RequestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := GetRequestID(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}
