// Package response provides handler.Response constructors for plain text,
// HTML, JSON, redirects and structured errors, plus the default error
// handlers used with handler.Serve.
//
//	func profile(ctx *handler.Base) handler.Response {
//		sess, ok := middleware.GetSession(ctx)
//		if !ok {
//			return response.Error(response.ErrUnauthorized)
//		}
//		return response.JSON(sess)
//	}
//
// HTTPError values carry a status, a machine-readable code and optional
// details. ErrorHandler writes the message as text; JSONErrorHandler writes
// the whole error as JSON. Any other error maps to its StatusCode() when it
// has one, and to 500 otherwise.
package response
