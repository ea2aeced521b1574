package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/eventqueue/pkg/logger"
)

// ResultSink receives one result line per executed task, in execution order.
type ResultSink interface {
	WriteResult(variant Variant, detail string) error
}

// Executor polls the event store for due tasks and runs them one at a time.
// It never writes the store: completions go back to the Persister as intents.
type Executor struct {
	reader     Reader
	registry   *Registry
	sender     IntentSender
	sink       ResultSink
	executorID uuid.UUID

	// Configuration
	pollInterval time.Duration
	now          func() time.Time
	logger       *slog.Logger

	// ids whose completion was sent but may not be applied yet
	pollMu   sync.Mutex
	reported map[int64]struct{}

	running atomic.Bool
}

// NewExecutor creates a polling executor
func NewExecutor(reader Reader, registry *Registry, sender IntentSender, sink ResultSink, opts ...ExecutorOption) (*Executor, error) {
	if reader == nil {
		return nil, ErrRepositoryNil
	}
	if registry == nil {
		return nil, ErrRegistryNil
	}
	if sender == nil {
		return nil, ErrSenderNil
	}
	if sink == nil {
		return nil, ErrSinkNil
	}

	// Default options
	options := &executorOptions{
		pollInterval: time.Second,
		now:          time.Now,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(options)
	}

	return &Executor{
		reader:       reader,
		registry:     registry,
		sender:       sender,
		sink:         sink,
		executorID:   uuid.New(),
		pollInterval: options.pollInterval,
		now:          options.now,
		logger:       options.logger,
		reported:     make(map[int64]struct{}),
	}, nil
}

// Run polls immediately and then once per interval until ctx is cancelled.
// It returns nil on cancellation and a non-nil error on any fatal condition:
// store read failure, unknown variant, result sink failure or a rejected completion.
func (e *Executor) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("executor: %w", ErrAlreadyRunning)
	}
	defer e.running.Store(false)

	e.logger.Info("executor started",
		slog.String("executor_id", e.executorID.String()),
		slog.Duration("poll_interval", e.pollInterval))

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		if _, err := e.Poll(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			e.logger.Info("executor stopped",
				slog.String("executor_id", e.executorID.String()))
			return nil
		case <-ticker.C:
		}
	}
}

// Poll runs a single iteration: select every task due before now and execute
// them in order. It returns the number of tasks executed. Tasks whose completion
// this executor already reported are skipped until the store stops returning them.
func (e *Executor) Poll(ctx context.Context) (int, error) {
	e.pollMu.Lock()
	defer e.pollMu.Unlock()

	now := e.now()

	tasks, err := e.reader.FetchDue(ctx, now)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil
		}
		return 0, errors.Join(ErrStoreRead, err)
	}

	// completions the persister has applied no longer show up as due
	stillPending := make(map[int64]struct{}, len(e.reported))
	defer func() { e.reported = stillPending }()

	executed := 0
	for _, task := range tasks {
		if _, ok := e.reported[task.ID]; ok {
			stillPending[task.ID] = struct{}{}
			continue
		}
		// a started task always runs to completion, but no new one starts after shutdown
		if ctx.Err() != nil {
			continue
		}
		if err := e.execute(ctx, task); err != nil {
			return executed, err
		}
		stillPending[task.ID] = struct{}{}
		executed++
	}

	return executed, nil
}

// execute runs one task and reports its completion regardless of the behavior's outcome
func (e *Executor) execute(ctx context.Context, task DueTask) error {
	handler, err := e.registry.Lookup(task.Variant)
	if err != nil {
		e.logger.Error("stored task has unknown variant",
			slog.String("executor_id", e.executorID.String()),
			logger.TaskID(task.ID),
			logger.Variant(task.Variant))
		return fmt.Errorf("executor: task %d: %w", task.ID, err)
	}

	taskCtx := context.WithoutCancel(ctx)

	start := time.Now()
	detail, runErr := e.invoke(taskCtx, handler, task.ID)
	duration := time.Since(start)

	if runErr != nil {
		e.logger.Error("task failed",
			slog.String("executor_id", e.executorID.String()),
			logger.TaskID(task.ID),
			logger.Variant(task.Variant),
			logger.Duration(duration),
			logger.Error(runErr))
		detail = "error: " + runErr.Error()
	} else {
		e.logger.Info("task executed",
			slog.String("executor_id", e.executorID.String()),
			logger.TaskID(task.ID),
			logger.Variant(task.Variant),
			slog.String("result", detail),
			logger.Duration(duration))
	}

	if err := e.sink.WriteResult(task.Variant, detail); err != nil {
		return errors.Join(ErrResultWrite, fmt.Errorf("task %d: %w", task.ID, err))
	}

	if err := e.sender.Send(taskCtx, TaskCompletedIntent(task.ID)); err != nil {
		// the persister may stop first when both are shut down together
		if errors.Is(err, ErrPersisterStopped) && ctx.Err() != nil {
			e.logger.Warn("completion dropped on shutdown, task will run again after restart",
				slog.String("executor_id", e.executorID.String()),
				logger.TaskID(task.ID),
				logger.Variant(task.Variant))
			return nil
		}
		return fmt.Errorf("executor: send completion for task %d: %w", task.ID, err)
	}

	return nil
}

// invoke calls the handler, converting a panic into an error
func (e *Executor) invoke(ctx context.Context, handler Handler, id int64) (detail string, retErr error) {
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("panic in handler: %v", r)
		}
	}()

	return handler.Handle(ctx, id)
}

// ExecutorID returns the identifier this executor logs with
func (e *Executor) ExecutorID() string {
	return e.executorID.String()
}
