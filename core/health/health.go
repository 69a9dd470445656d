package health

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/webutils/core/handler"
	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/core/response"
)

// Check reports whether one dependency is usable.
type Check func(context.Context) error

// Liveness always answers "ALIVE". It checks nothing.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// Readiness answers "READY" when every check passes and 503 otherwise.
// The failing check's error is logged, never sent to the client.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
				return response.Error(response.ErrServiceUnavailable)
			}
		}
		return response.String("READY")
	}
}
