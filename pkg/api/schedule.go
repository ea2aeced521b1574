package api

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrymomot/eventqueue/pkg/queue"
)

// scheduleOptions reads the optional delay or t query parameter.
// delay is a Go duration ("4s", "-10s") or whole seconds ("4"); t is an
// absolute unix time in seconds. Without either the task is due on receipt.
func scheduleOptions(q url.Values) ([]queue.EnqueueOption, error) {
	delay, at := q.Get("delay"), q.Get("t")

	switch {
	case delay != "" && at != "":
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchedule, errConflictingSchedule)

	case delay != "":
		d, err := parseDelay(delay)
		if err != nil {
			return nil, fmt.Errorf("%w: delay %q: %w", ErrInvalidSchedule, delay, err)
		}
		return []queue.EnqueueOption{queue.WithDelay(d)}, nil

	case at != "":
		sec, err := strconv.ParseInt(at, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: t %q: %w", ErrInvalidSchedule, at, err)
		}
		return []queue.EnqueueOption{queue.WithScheduledAt(time.Unix(sec, 0).UTC())}, nil
	}

	return nil, nil
}

// maxDelaySeconds is the largest whole-second delay a time.Duration can hold.
const maxDelaySeconds = math.MaxInt64 / int64(time.Second)

func parseDelay(s string) (time.Duration, error) {
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		if sec > maxDelaySeconds || sec < -maxDelaySeconds {
			return 0, fmt.Errorf("%w: %d seconds", errDelayOutOfRange, sec)
		}
		return time.Duration(sec) * time.Second, nil
	}
	return time.ParseDuration(s)
}
