// Package requestid correlates HTTP requests with log records. The middleware
// accepts a well-formed X-Request-ID header or generates a uuid, and
// LogExtractor plugs the id into loggers built by the logger package.
package requestid
