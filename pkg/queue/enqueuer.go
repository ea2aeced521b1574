package queue

import (
	"context"
	"fmt"
	"time"
)

// Enqueuer is the submission boundary: it validates the variant and hands a
// NewTask intent to the persister. A nil error means the intent was accepted
// into the channel, not that it is durable yet.
type Enqueuer struct {
	sender   IntentSender
	registry *Registry
	now      func() time.Time
}

// NewEnqueuer creates a new Enqueuer
func NewEnqueuer(sender IntentSender, registry *Registry, opts ...EnqueuerOption) (*Enqueuer, error) {
	if sender == nil {
		return nil, ErrSenderNil
	}
	if registry == nil {
		return nil, ErrRegistryNil
	}

	options := &enqueuerOptions{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(options)
	}

	return &Enqueuer{
		sender:   sender,
		registry: registry,
		now:      options.now,
	}, nil
}

// Enqueue submits a task of the given variant. It returns the due time carried
// by the intent; a zero time means the persister stamps it on insert.
func (e *Enqueuer) Enqueue(ctx context.Context, variant Variant, opts ...EnqueueOption) (time.Time, error) {
	if err := e.registry.Validate(variant); err != nil {
		return time.Time{}, err
	}

	options := &enqueueOptions{}
	for _, opt := range opts {
		opt(options)
	}

	dueAt := e.dueAt(options)

	if err := e.sender.Send(ctx, NewTaskIntent(variant, dueAt)); err != nil {
		return time.Time{}, fmt.Errorf("failed to enqueue task %q: %w", variant, err)
	}

	return dueAt, nil
}

// dueAt resolves the scheduling options against the receipt time
func (e *Enqueuer) dueAt(options *enqueueOptions) time.Time {
	if options.scheduledAt != nil {
		return *options.scheduledAt
	}
	if options.delay != 0 {
		return e.now().Add(options.delay)
	}
	return time.Time{}
}
