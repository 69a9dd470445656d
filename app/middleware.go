package app

import (
	"github.com/dmitrymomot/webutils/core/handler"
	"github.com/dmitrymomot/webutils/middleware"
)

// Middleware is the set of guards bound to an App.
type Middleware[C handler.Context] struct {
	RequestID   handler.Middleware[C]
	Logging     handler.Middleware[C]
	SessionAuth handler.Middleware[C]
	CSRF        handler.Middleware[C]
	RateLimit   handler.Middleware[C]
}

// Middleware returns the guards for handlers using handler.Base.
func (a *App) Middleware() Middleware[*handler.Base] {
	return MiddlewareFor[*handler.Base](a)
}

// MiddlewareFor returns the guards for a custom context type.
func MiddlewareFor[C handler.Context](a *App) Middleware[C] {
	return Middleware[C]{
		RequestID: middleware.RequestID[C](false),
		Logging:   middleware.Logging[C](a.Logger),
		SessionAuth: middleware.SessionAuthWithConfig(middleware.SessionAuthConfig[C]{
			Sessions: a.Sessions,
			Logger:   a.Logger,
		}),
		CSRF: middleware.CSRFWithConfig(middleware.CSRFConfig[C]{
			CSRF:   a.CSRF,
			Logger: a.Logger,
		}),
		RateLimit: middleware.RateLimitWithConfig(middleware.RateLimitConfig[C]{
			Limiter:    a.Limiter,
			SetHeaders: true,
			Logger:     a.Logger,
		}),
	}
}
