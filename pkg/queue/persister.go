package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/eventqueue/pkg/logger"
)

// Persister is the single writer of the event store. Every mutation reaches the
// store as an Intent through its channel and is applied one at a time in receipt order.
type Persister struct {
	writer   Writer
	registry *Registry
	intents  chan Intent
	running  atomic.Bool
	now      func() time.Time
	logger   *slog.Logger

	// stopping wakes blocked senders; sendMu lets stop wait for senders in flight
	stopping chan struct{}
	stopOnce sync.Once
	sendMu   sync.RWMutex
	stopped  bool
}

// NewPersister creates a persistence actor owning the given writer.
func NewPersister(writer Writer, opts ...PersisterOption) (*Persister, error) {
	if writer == nil {
		return nil, ErrRepositoryNil
	}

	options := &persisterOptions{
		bufferSize: 1024,
		now:        time.Now,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(options)
	}

	return &Persister{
		writer:   writer,
		registry: options.registry,
		intents:  make(chan Intent, options.bufferSize),
		stopping: make(chan struct{}),
		now:      options.now,
		logger:   options.logger,
	}, nil
}

// Send queues an intent for the actor. It blocks while the channel is full and
// returns ErrIntentRejected if ctx ends first, or ErrPersisterStopped once the
// actor has begun its final drain. An intent Send accepted is always applied
// unless a store write fails.
func (p *Persister) Send(ctx context.Context, intent Intent) error {
	p.sendMu.RLock()
	defer p.sendMu.RUnlock()

	if p.stopped {
		return ErrPersisterStopped
	}

	select {
	case p.intents <- intent:
		return nil
	case <-p.stopping:
		return ErrPersisterStopped
	case <-ctx.Done():
		return errors.Join(ErrIntentRejected, ctx.Err())
	}
}

// Pending returns the number of intents waiting in the channel.
func (p *Persister) Pending() int {
	return len(p.intents)
}

// Run applies intents until ctx is cancelled or a write fails. A Persister runs
// once; Run returns ErrAlreadyRunning afterwards. On cancellation new sends are
// refused and the intents already accepted are applied before returning nil.
// Any store error is returned and must be treated as fatal.
func (p *Persister) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("persister: %w", ErrAlreadyRunning)
	}
	defer p.stop()

	// writes in flight must commit even when shutdown starts
	writeCtx := context.WithoutCancel(ctx)

	p.logger.Info("persister started",
		slog.Int("buffer_size", cap(p.intents)))

	for {
		select {
		case <-ctx.Done():
			p.stop()
			drained, err := p.drain(writeCtx)
			if err != nil {
				return err
			}
			p.logger.Info("persister stopped",
				slog.Int("drained", drained))
			return nil
		case intent := <-p.intents:
			if err := p.apply(writeCtx, intent); err != nil {
				return err
			}
		}
	}
}

// stop refuses further sends. Once it returns no Send is between its check
// and the channel, so a drain after it sees every accepted intent.
func (p *Persister) stop() {
	p.stopOnce.Do(func() {
		close(p.stopping)
		p.sendMu.Lock()
		p.stopped = true
		p.sendMu.Unlock()
	})
}

// drain applies whatever is buffered without waiting for more
func (p *Persister) drain(ctx context.Context) (int, error) {
	n := 0
	for {
		select {
		case intent := <-p.intents:
			if err := p.apply(ctx, intent); err != nil {
				return n, err
			}
			n++
		default:
			return n, nil
		}
	}
}

func (p *Persister) apply(ctx context.Context, intent Intent) error {
	switch intent.Kind {
	case IntentNewTask:
		if p.registry != nil {
			if err := p.registry.Validate(intent.Variant); err != nil {
				return fmt.Errorf("persister: refusing insert: %w", err)
			}
		}

		dueAt := intent.DueAt
		if dueAt.IsZero() {
			dueAt = p.now()
		}

		id, err := p.writer.Insert(ctx, intent.Variant, dueAt)
		if err != nil {
			return errors.Join(ErrStoreWrite, fmt.Errorf("insert %q: %w", intent.Variant, err))
		}

		p.logger.Debug("task inserted",
			logger.TaskID(id),
			logger.Variant(intent.Variant),
			slog.Time("due_at", dueAt))

	case IntentTaskCompleted:
		if err := p.writer.Complete(ctx, intent.TaskID); err != nil {
			return errors.Join(ErrStoreWrite, fmt.Errorf("complete task %d: %w", intent.TaskID, err))
		}

		p.logger.Debug("task marked complete",
			logger.TaskID(intent.TaskID))

	default:
		return fmt.Errorf("%w: %d", ErrUnknownIntent, intent.Kind)
	}

	return nil
}
