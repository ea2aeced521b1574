package api

import (
	"net/http"

	"github.com/rs/cors"
)

// corsMiddleware answers preflight requests for the configured origins.
// It returns nil when no origin is configured.
func corsMiddleware(cfg Config) func(http.Handler) http.Handler {
	if len(cfg.CORSOrigins) == 0 {
		return nil
	}

	return cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{
			"X-Request-ID",
			"Retry-After",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: int(cfg.CORSMaxAge.Seconds()),
	}).Handler
}
