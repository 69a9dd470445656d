// Package app assembles the token store, managers, mailer and middleware of
// a web application from a single environment-driven Config.
//
//	a, err := app.New(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer a.Close()
//
//	mw := a.Middleware()
//	mux.Handle("GET /profile", handler.Serve(handler.NewContext,
//		handler.Chain(profile, mw.RequestID, mw.Logging, mw.SessionAuth, mw.CSRF),
//		response.ErrorHandler[*handler.Base],
//	))
//
// STORE_DRIVER selects Redis (default) or the in-process memory store,
// RATE_LIMIT_DRIVER the store-backed counter (default) or the in-process
// token bucket, and MAIL_DRIVER the log (default), dev (files on disk),
// postmark or smtp sender.
package app
