// Package httpserver runs an http.Handler with graceful shutdown tied to a
// context, which makes it a natural member of an errgroup:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	g.Go(func() error { return srv.Run(ctx, router) })
//
// When ctx is cancelled the server stops accepting connections and gives
// in-flight requests up to the shutdown timeout to finish. LivenessHandler and
// ReadinessHandler provide the probe endpoints.
package httpserver
