// Package httpserver provides a thin wrapper around net/http's Server with
// graceful shutdown, signal handling, and structured logging hooks.
//
// The server stops when the supplied context is cancelled or the process
// receives SIGINT/SIGTERM, draining in-flight requests for up to the
// configured shutdown timeout.
//
// # Usage
//
//	srv := httpserver.New(
//	    httpserver.WithAddr(":8080"),
//	    httpserver.WithLogger(log),
//	    httpserver.WithStartHook(func(l *slog.Logger) {
//	        l.Info("listening", slog.String("addr", ":8080"))
//	    }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", slog.Any("error", err))
//	}
//
// Configuration can also come from the environment via Config and
// NewFromConfig, following the platform's env-tag convention.
//
// HealthCheckHandler builds a probe endpoint: with no dependency checks it
// answers liveness, with checks it answers readiness.
package httpserver
