// Package health provides liveness and readiness handlers.
//
//	mux.Handle("GET /health/live", handler.Serve(handler.NewContext, health.Liveness[*handler.Base], nil))
//	mux.Handle("GET /health/ready", handler.Serve(handler.NewContext,
//		health.Readiness[*handler.Base](log, redis.Healthcheck(client)),
//		response.ErrorHandler[*handler.Base],
//	))
//
// app.App exposes the checks for the backends it connected in
// App.HealthChecks.
package health
