// Package middleware provides the route guards and request plumbing for
// handlers built on core/handler:
//
//   - SessionAuth resolves the SESSIONID cookie and redirects to the login
//     page when it is missing or expired. GetSession reads the session.
//   - CSRF issues form tokens on safe requests and checks them on unsafe
//     ones, session-bound when a session is present and single-use
//     session-less otherwise. GetCSRFToken reads the token to render.
//   - RateLimit answers 429 once a client exceeds its limit on a URL.
//   - RequestID and Logging tag and log every request.
//
// Guards are ordinary handler.Middleware values; the caller composes them:
//
//	h := handler.Chain(updatePassword,
//		middleware.RateLimit[*handler.Base](limiter),
//		middleware.SessionAuth[*handler.Base](sessions),
//		middleware.CSRF[*handler.Base](csrfManager),
//	)
//
// CSRF must run after SessionAuth to bind tokens to the session.
package middleware
