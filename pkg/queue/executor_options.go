package queue

import (
	"log/slog"
	"time"
)

// ExecutorOption is a functional option for configuring an executor
type ExecutorOption func(*executorOptions)

type executorOptions struct {
	pollInterval time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// WithPollInterval sets how often the executor checks for due tasks
func WithPollInterval(d time.Duration) ExecutorOption {
	return func(o *executorOptions) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// WithExecutorClock sets the clock used to decide which tasks are due
func WithExecutorClock(now func() time.Time) ExecutorOption {
	return func(o *executorOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithExecutorLogger sets the logger for the executor
func WithExecutorLogger(logger *slog.Logger) ExecutorOption {
	return func(o *executorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
