// Package ratelimiter throttles task submissions per client with a token bucket.
//
// Each key starts with Capacity tokens; every RefillInterval adds RefillRate
// tokens up to Capacity. A call that finds the bucket empty is denied and the
// Result tells the caller when to retry:
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.Config{
//		Capacity:       20,
//		RefillRate:     10,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	if res := limiter.Allow(clientIP); !res.Allowed() {
//		// respond 429, Retry-After: res.RetryAfter(time.Now())
//	}
//
// State lives in process memory, which matches the single-process queue.
package ratelimiter
