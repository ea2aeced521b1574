package queue

import "time"

// EnqueuerOption is a functional option for configuring an Enqueuer
type EnqueuerOption func(*enqueuerOptions)

type enqueuerOptions struct {
	now func() time.Time
}

// WithEnqueuerClock sets the clock used as the receipt time for delays
func WithEnqueuerClock(now func() time.Time) EnqueuerOption {
	return func(o *enqueuerOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// EnqueueOption is a functional option for the Enqueue method
type EnqueueOption func(*enqueueOptions)

type enqueueOptions struct {
	delay       time.Duration
	scheduledAt *time.Time
}

// WithDelay offsets the due time from the receipt time.
// Negative delays schedule the task in the past, making it due immediately.
func WithDelay(delay time.Duration) EnqueueOption {
	return func(o *enqueueOptions) {
		o.delay = delay
	}
}

// WithScheduledAt sets a specific time for the task to be processed
func WithScheduledAt(scheduledAt time.Time) EnqueueOption {
	return func(o *enqueueOptions) {
		if !scheduledAt.IsZero() {
			o.scheduledAt = &scheduledAt
		}
	}
}
