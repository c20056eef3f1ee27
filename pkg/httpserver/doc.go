// Package httpserver runs an http.Server with graceful shutdown and exposes
// liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server exited", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled, on SIGINT or SIGTERM, or after Shutdown.
// In-flight requests get the shutdown timeout to finish.
package httpserver
