package queue

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Run runs the persister, the executor and any other producers until ctx is
// cancelled or one of them fails, returning the first error.
//
// Producers run on ctx. The persister runs until every producer has returned,
// so completions sent by a task that was in flight at shutdown are still
// applied in its final drain.
//
//	err := queue.Run(ctx, persister, executor, func(ctx context.Context) error {
//		return server.Run(ctx, router)
//	})
func Run(ctx context.Context, p *Persister, e *Executor, producers ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	persistCtx, stopPersister := context.WithCancel(context.WithoutCancel(ctx))
	defer stopPersister()

	g.Go(func() error { return p.Run(persistCtx) })

	var running sync.WaitGroup
	start := func(fn func(context.Context) error) {
		running.Add(1)
		g.Go(func() error {
			defer running.Done()
			return fn(gctx)
		})
	}

	start(e.Run)
	for _, fn := range producers {
		start(fn)
	}

	g.Go(func() error {
		running.Wait()
		stopPersister()
		return nil
	})

	return g.Wait()
}
