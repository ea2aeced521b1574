// Package clientip resolves the address of the caller behind an HTTP request.
//
// The API uses it to key submission rate limits and to tag request logs:
//
//	r.Use(clientip.Middleware)
//	log := logger.New(logger.WithContextExtractors(clientip.LogExtractor()))
//
// Forwarding headers are trusted as sent, so the service is expected to run
// behind a proxy that overwrites them.
package clientip
