// Package queue provides a durable, single-writer task queue with due-time
// ordered, strictly sequential execution.
//
// The package is organised around three cooperating components:
//
//   - Persister: the only writer of the event store, applies write-intents one at a time
//   - Executor: polls for due tasks, runs them serially and reports completion as intents
//   - Enqueuer: validates submissions and turns them into NewTask intents
//
// Storage is reached only through the small Writer and Reader interfaces, so the
// queue can be backed by sqlite (pkg/sqlite), PostgreSQL (pkg/pg) or the bundled
// MemoryStorage.
//
// # Architecture
//
//  1. Every mutation is an Intent sent over the Persister's bounded channel. The
//     Persister applies intents in receipt order, which linearizes the write history
//     regardless of how many goroutines submit.
//  2. The Executor holds a Reader only. For each due task it resolves the variant in a
//     closed Registry, runs it, appends "<variant> <detail>" to a ResultSink and sends
//     a TaskCompleted intent.
//  3. A task is completed even when its behavior returns an error or panics; the
//     error is logged and recorded in the result line. Delivery is at-least-once.
//  4. Status only moves pending -> complete. Completing twice or completing a
//     missing id is a no-op.
//
// # Usage
//
//	registry, _ := queue.NewRegistry(
//		queue.NewHandler("echo", func(ctx context.Context, id int64) (string, error) {
//			return strconv.FormatInt(id, 10), nil
//		}),
//	)
//
//	store := queue.NewMemoryStorage()
//	persister, _ := queue.NewPersister(store, queue.WithPersisterRegistry(registry))
//	executor, _ := queue.NewExecutor(store, registry, persister, sink)
//	enqueuer, _ := queue.NewEnqueuer(persister, registry)
//
//	go func() { _ = queue.Run(ctx, persister, executor) }()
//
//	_, _ = enqueuer.Enqueue(ctx, "echo", queue.WithDelay(time.Second))
//
// Run stops the executor before the persister, so a task that is running at
// shutdown still gets its completion stored.
//
// # Error Handling
//
// Package-level sentinel errors (e.g. ErrUnknownVariant, ErrIntentRejected) can be
// checked with errors.Is. Errors returned from Persister.Run and Executor.Run are
// fatal by contract: the process is expected to stop.
package queue
