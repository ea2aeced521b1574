package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/eventqueue/pkg/logger"
)

// LogExtractor adds "request_id" to records logged with a request context.
func LogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}
