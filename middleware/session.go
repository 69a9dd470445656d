package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/dmitrymomot/webutils/core/handler"
	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/core/response"
	"github.com/dmitrymomot/webutils/core/session"
)

type sessionKey struct{}

// DefaultLoginURL is where unauthenticated requests are sent.
const DefaultLoginURL = "/login"

// SessionAuthConfig configures SessionAuthWithConfig.
type SessionAuthConfig[C handler.Context] struct {
	Sessions *session.Manager
	// LoginURL receives requests without a valid session (default "/login").
	LoginURL string
	Logger   *slog.Logger
	Skip     func(ctx C) bool
}

// SessionAuth guards handlers behind a valid session cookie.
func SessionAuth[C handler.Context](sessions *session.Manager) handler.Middleware[C] {
	return SessionAuthWithConfig(SessionAuthConfig[C]{Sessions: sessions})
}

// SessionAuthWithConfig resolves the session cookie and stores the session
// in the context. An invalid or expired session clears the cookie and
// redirects to LoginURL; a store failure is logged and answered with 500.
// Each successful request re-issues the cookie so its lifetime slides
// together with the stored record.
func SessionAuthWithConfig[C handler.Context](cfg SessionAuthConfig[C]) handler.Middleware[C] {
	if cfg.Sessions == nil {
		panic("session auth middleware: session manager is required")
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = DefaultLoginURL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log := cfg.Logger.With(logger.Component("session_auth"))

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			tok := cfg.Sessions.TokenFromRequest(ctx.Request())
			sess, err := cfg.Sessions.Resolve(ctx, tok)
			switch {
			case errors.Is(err, session.ErrInvalidSession):
				if tok != "" {
					cfg.Sessions.ClearCookie(ctx.ResponseWriter())
				}
				return response.Redirect(cfg.LoginURL)
			case err != nil:
				log.ErrorContext(ctx, "failed to resolve session", logger.Token(tok), logger.Error(err))
				return response.Error(response.ErrInternalServerError)
			}

			if err := cfg.Sessions.SetCookie(ctx.ResponseWriter(), sess); err != nil {
				log.WarnContext(ctx, "failed to refresh session cookie", logger.Error(err))
			}

			ctx.SetValue(sessionKey{}, sess)
			return next(ctx)
		}
	}
}

// GetSession returns the session stored by SessionAuth.
func GetSession(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(session.Session)
	return sess, ok
}
