package queue

import (
	"log/slog"
	"time"
)

// PersisterOption is a functional option for configuring a Persister
type PersisterOption func(*persisterOptions)

type persisterOptions struct {
	bufferSize int
	registry   *Registry
	now        func() time.Time
	logger     *slog.Logger
}

// WithIntentBuffer sets the capacity of the intent channel.
// Senders block once it is full.
func WithIntentBuffer(n int) PersisterOption {
	return func(o *persisterOptions) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithPersisterRegistry makes the persister refuse inserts of unregistered variants
func WithPersisterRegistry(r *Registry) PersisterOption {
	return func(o *persisterOptions) {
		o.registry = r
	}
}

// WithPersisterClock sets the clock used to stamp due times of unscheduled tasks
func WithPersisterClock(now func() time.Time) PersisterOption {
	return func(o *persisterOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithPersisterLogger sets the logger for the persister
func WithPersisterLogger(logger *slog.Logger) PersisterOption {
	return func(o *persisterOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
