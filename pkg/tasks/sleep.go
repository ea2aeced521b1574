package tasks

import (
	"context"
	"strconv"
	"time"

	"github.com/dmitrymomot/eventqueue/pkg/queue"
)

// NewSleepHandler returns the timed no-op: it waits d and reports the task id.
func NewSleepHandler(d time.Duration) queue.Handler {
	return queue.NewHandler(Sleep, func(ctx context.Context, id int64) (string, error) {
		if d > 0 {
			timer := time.NewTimer(d)
			defer timer.Stop()

			select {
			case <-timer.C:
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		return strconv.FormatInt(id, 10), nil
	})
}
