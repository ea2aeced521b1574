package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/dmitrymomot/eventqueue/pkg/api"
	"github.com/dmitrymomot/eventqueue/pkg/clientip"
	"github.com/dmitrymomot/eventqueue/pkg/config"
	"github.com/dmitrymomot/eventqueue/pkg/httpserver"
	"github.com/dmitrymomot/eventqueue/pkg/logger"
	"github.com/dmitrymomot/eventqueue/pkg/pg"
	"github.com/dmitrymomot/eventqueue/pkg/queue"
	"github.com/dmitrymomot/eventqueue/pkg/ratelimiter"
	"github.com/dmitrymomot/eventqueue/pkg/requestid"
	"github.com/dmitrymomot/eventqueue/pkg/resultlog"
	"github.com/dmitrymomot/eventqueue/pkg/sqlite"
	"github.com/dmitrymomot/eventqueue/pkg/tasks"
)

const (
	backendSQLite   = "sqlite"
	backendPostgres = "postgres"
)

var errUnknownBackend = errors.New("unknown store backend")

type appConfig struct {
	StoreBackend string `env:"STORE_BACKEND" envDefault:"sqlite"`

	Logger    logger.Config
	Queue     queue.Config
	SQLite    sqlite.Config
	Tasks     tasks.Config
	ResultLog resultlog.Config
	API       api.Config
	RateLimit ratelimiter.Config
	HTTP      httpserver.Config
}

// eventStore is the writer handed to the persister and the reader handed to
// the executor, which may be two handles on the same store.
type eventStore struct {
	writer queue.Writer
	reader queue.Reader
	path   string
	ready  func(context.Context) error
	close  func()
}

// run wires the process and blocks until ctx is cancelled or a component fails.
func run(ctx context.Context, loadOpts []config.Option, onListen func(net.Addr)) error {
	cfg, err := config.Load[appConfig](loadOpts...)
	if err != nil {
		return err
	}

	logOpts, err := logger.FromConfig(cfg.Logger)
	if err != nil {
		return err
	}
	log := logger.New(append(logOpts, logger.WithContextExtractors(requestid.LogExtractor(), clientip.LogExtractor()))...)
	logger.SetAsDefault(log)

	store, err := openStore(ctx, cfg, loadOpts, log)
	if err != nil {
		return err
	}
	defer store.close()

	results, err := resultlog.Open(resultlog.PathFor(cfg.ResultLog, store.path))
	if err != nil {
		return err
	}
	defer func() {
		if err := results.Close(); err != nil {
			log.Error("close result log", logger.Error(err))
		}
	}()

	registry, err := tasks.NewRegistry(cfg.Tasks)
	if err != nil {
		return err
	}

	persister, err := queue.NewPersister(store.writer,
		queue.WithIntentBuffer(cfg.Queue.IntentBuffer),
		queue.WithPersisterRegistry(registry),
		queue.WithPersisterLogger(log.With(logger.Component("persister"))),
	)
	if err != nil {
		return err
	}

	executor, err := queue.NewExecutor(store.reader, registry, persister, results,
		queue.WithPollInterval(cfg.Queue.PollInterval),
		queue.WithExecutorLogger(log.With(logger.Component("executor"))),
	)
	if err != nil {
		return err
	}

	enqueuer, err := queue.NewEnqueuer(persister, registry)
	if err != nil {
		return err
	}

	deps := api.Deps{
		Enqueuer: enqueuer,
		Store:    store.reader,
		Registry: registry,
		Logger:   log.With(logger.Component("api")),
		Ready:    []func(context.Context) error{store.ready},
	}
	if cfg.RateLimit.Enabled() {
		limiter, err := ratelimiter.NewBucket(cfg.RateLimit)
		if err != nil {
			return err
		}
		deps.Limiter = limiter
	}
	router := api.NewRouter(cfg.API, deps)

	serverOpts := []httpserver.Option{httpserver.WithLogger(log.With(logger.Component("http")))}
	if onListen != nil {
		serverOpts = append(serverOpts, httpserver.WithStartHook(onListen))
	}
	server := httpserver.NewFromConfig(cfg.HTTP, serverOpts...)

	log.Info("eventqueue starting",
		slog.String("backend", cfg.StoreBackend),
		slog.String("result_log", results.Path()),
		slog.Any("variants", registry.Variants()))

	err = queue.Run(ctx, persister, executor, func(ctx context.Context) error {
		return server.Run(ctx, router)
	})
	if err != nil {
		log.Error("eventqueue stopped with error", logger.Error(err))
		return err
	}

	log.Info("eventqueue stopped")
	return nil
}

func openStore(ctx context.Context, cfg appConfig, loadOpts []config.Option, log *slog.Logger) (*eventStore, error) {
	switch cfg.StoreBackend {
	case backendSQLite:
		writer, err := sqlite.Open(ctx, cfg.SQLite, log)
		if err != nil {
			return nil, err
		}
		// the reader needs the file the writer just created
		reader, err := sqlite.OpenReader(ctx, cfg.SQLite)
		if err != nil {
			_ = writer.Close()
			return nil, err
		}
		return &eventStore{
			writer: writer,
			reader: reader,
			path:   writer.Path(),
			ready:  sqlite.Healthcheck(writer),
			close: func() {
				_ = reader.Close()
				_ = writer.Close()
			},
		}, nil

	case backendPostgres:
		pgCfg, err := config.Load[pg.Config](loadOpts...)
		if err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			pool.Close()
			return nil, err
		}
		store := pg.NewStore(pool)
		return &eventStore{
			writer: store,
			reader: store,
			ready:  pg.Healthcheck(pool),
			close:  pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, cfg.StoreBackend)
	}
}
