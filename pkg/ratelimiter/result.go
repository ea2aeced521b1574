package ratelimiter

import "time"

// Result is the outcome of one Allow call.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // tokens left after this call; negative when denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the call was within the limit.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long a denied caller should wait, measured from now.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}
