// Package handler defines the request-handling abstractions shared by the
// middleware and response packages: a Context carrying the explicit
// http.ResponseWriter and *http.Request, handlers that return a Response
// closure, and composable Middleware.
//
// There is no router. Handlers are adapted to net/http with Serve and can
// be mounted on any mux:
//
//	mux := http.NewServeMux()
//	h := handler.Chain(profile, mw.SessionAuth, mw.CSRF)
//	mux.Handle("GET /profile", handler.Serve(handler.NewContext, h, response.ErrorHandler))
//
// Values set by middleware with SetValue are stored on the request context
// and read back through typed accessors such as middleware.GetSession.
package handler
