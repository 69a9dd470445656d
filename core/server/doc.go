// Package server runs an http.Handler with production timeouts and a
// graceful shutdown when the run context is cancelled.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := server.New(cfg, server.WithLogger(log)).Run(ctx, mux); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
package server
