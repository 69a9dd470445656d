// Package webutils is a set of building blocks for server-rendered web
// applications: expiring tokens kept in a key-value cache, login sessions,
// CSRF protection, email verification, rate limiting, forms and flashes.
//
// The packages are independent and composed explicitly:
//
//	core/tokenstore      cache adapter (Redis or in-process)
//	core/token           generic expiring-token manager
//	core/session         login sessions with one active session per user
//	core/csrf            session-bound and session-less CSRF tokens
//	core/verification    single-use email verification tokens
//	pkg/ratelimiter      fixed-window and token-bucket limiters
//	middleware           SessionAuth, CSRF, RateLimit, RequestID, Logging
//	integration/...      Redis, PostgreSQL, SQLite, Postmark and SMTP bootstrap
//	app                  container that wires all of the above from env config
//
// Most applications start from the container:
//
//	a, err := app.New(ctx)
//	if err != nil {
//		return err
//	}
//	defer a.Close()
//	return a.Run(ctx, mux)
package webutils
