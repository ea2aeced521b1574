package sqlite_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventqueue/pkg/queue"
	"github.com/dmitrymomot/eventqueue/pkg/sqlite"
)

func testConfig(t *testing.T) sqlite.Config {
	t.Helper()
	return sqlite.Config{
		Path:            filepath.Join(t.TempDir(), "data", "events.db"),
		BusyTimeout:     time.Second,
		MigrationsTable: "schema_migrations",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openStore(t *testing.T, cfg sqlite.Config) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates file and schema when missing", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		store := openStore(t, cfg)

		_, err := os.Stat(cfg.Path)
		require.NoError(t, err)
		assert.Equal(t, cfg.Path, store.Path())

		id, err := store.Insert(context.Background(), "sleep", time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := sqlite.Open(context.Background(), sqlite.Config{}, discardLogger())
		assert.ErrorIs(t, err, sqlite.ErrEmptyPath)
	})

	t.Run("existing file is not migrated", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Path), 0o755))
		require.NoError(t, os.WriteFile(cfg.Path, nil, 0o644))

		store := openStore(t, cfg)

		_, err := store.Insert(context.Background(), "sleep", time.Now())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no such table")
	})

	t.Run("failed schema creation leaves no file behind", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		broken := cfg
		broken.MigrationsTable = `bad"name`

		_, err := sqlite.Open(context.Background(), broken, discardLogger())
		require.ErrorIs(t, err, sqlite.ErrFailedToApplyMigrations)

		for _, suffix := range []string{"", "-wal", "-shm"} {
			_, statErr := os.Stat(cfg.Path + suffix)
			assert.ErrorIs(t, statErr, os.ErrNotExist, "file %q", cfg.Path+suffix)
		}

		// the next start creates the schema from scratch
		store := openStore(t, cfg)
		id, err := store.Insert(context.Background(), "sleep", time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("reopening keeps committed records", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		ctx := context.Background()
		due := time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

		first, err := sqlite.Open(ctx, cfg, discardLogger())
		require.NoError(t, err)
		_, err = first.Insert(ctx, "fetch", due)
		require.NoError(t, err)
		_, err = first.Insert(ctx, "random", due)
		require.NoError(t, err)
		require.NoError(t, first.Complete(ctx, 1))
		require.NoError(t, first.Close())

		second := openStore(t, cfg)
		records, err := second.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, queue.Record{ID: 1, Variant: "fetch", Status: queue.TaskStatusComplete, DueAt: due}, records[0])
		assert.Equal(t, queue.Record{ID: 2, Variant: "random", Status: queue.TaskStatusPending, DueAt: due}, records[1])

		id, err := second.Insert(ctx, "sleep", due)
		require.NoError(t, err)
		assert.Equal(t, int64(3), id)
	})
}

func TestOpenReader(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		_, err := sqlite.OpenReader(context.Background(), cfg)
		assert.ErrorIs(t, err, sqlite.ErrStoreNotFound)

		_, statErr := os.Stat(cfg.Path)
		assert.True(t, os.IsNotExist(statErr), "reader must not create the store")
	})

	t.Run("sees writer commits and refuses writes", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		ctx := context.Background()
		writer := openStore(t, cfg)

		reader, err := sqlite.OpenReader(ctx, cfg)
		require.NoError(t, err)
		defer reader.Close()

		past := time.Now().Add(-time.Minute)
		id, err := writer.Insert(ctx, "sleep", past)
		require.NoError(t, err)

		due, err := reader.FetchDue(ctx, time.Now())
		require.NoError(t, err)
		assert.Equal(t, []queue.DueTask{{ID: id, Variant: "sleep"}}, due)

		_, err = reader.Insert(ctx, "sleep", past)
		assert.ErrorIs(t, err, sqlite.ErrReadOnly)
		assert.ErrorIs(t, reader.Complete(ctx, id), sqlite.ErrReadOnly)
	})
}

func TestStore_FetchDue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t, testConfig(t))
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	// ids 1..5
	inserts := []struct {
		variant queue.Variant
		dueAt   time.Time
	}{
		{"a", base.Add(3 * time.Second)},
		{"b", base.Add(time.Second)},
		{"c", base.Add(time.Second)},
		{"d", base.Add(10 * time.Second)},
		{"e", base.Add(-time.Hour)},
	}
	for _, in := range inserts {
		_, err := store.Insert(ctx, in.variant, in.dueAt)
		require.NoError(t, err)
	}

	t.Run("orders by due time then id", func(t *testing.T) {
		due, err := store.FetchDue(ctx, base.Add(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, []queue.DueTask{
			{ID: 5, Variant: "e"},
			{ID: 2, Variant: "b"},
			{ID: 3, Variant: "c"},
			{ID: 1, Variant: "a"},
		}, due)
	})

	t.Run("before is exclusive", func(t *testing.T) {
		due, err := store.FetchDue(ctx, base.Add(time.Second))
		require.NoError(t, err)
		assert.Equal(t, []queue.DueTask{{ID: 5, Variant: "e"}}, due)
	})

	t.Run("completed records are not due", func(t *testing.T) {
		require.NoError(t, store.Complete(ctx, 5))

		due, err := store.FetchDue(ctx, base.Add(time.Second))
		require.NoError(t, err)
		assert.Empty(t, due)
	})
}

func TestStore_Complete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t, testConfig(t))

	id, err := store.Insert(ctx, "sleep", time.Now())
	require.NoError(t, err)

	require.NoError(t, store.Complete(ctx, id))
	require.NoError(t, store.Complete(ctx, id))
	require.NoError(t, store.Complete(ctx, 999))

	records, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, queue.TaskStatusComplete, records[0].Status)
}

func TestStore_InsertEmptyVariant(t *testing.T) {
	t.Parallel()

	store := openStore(t, testConfig(t))

	_, err := store.Insert(context.Background(), "", time.Now())
	require.Error(t, err)
	assert.True(t, sqlite.IsConstraintError(err))
	assert.False(t, sqlite.IsBusyError(err))
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	store, err := sqlite.Open(context.Background(), testConfig(t), discardLogger())
	require.NoError(t, err)

	check := sqlite.Healthcheck(store)
	assert.NoError(t, check(context.Background()))

	require.NoError(t, store.Close())
	assert.ErrorIs(t, check(context.Background()), sqlite.ErrHealthcheckFailed)
}

func TestQueueOnSqlite(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer := openStore(t, cfg)
	reader, err := sqlite.OpenReader(ctx, cfg)
	require.NoError(t, err)
	defer reader.Close()

	registry, err := queue.NewRegistry(
		queue.NewHandler("a", func(ctx context.Context, id int64) (string, error) { return "ok", nil }),
	)
	require.NoError(t, err)

	persister, err := queue.NewPersister(writer,
		queue.WithPersisterRegistry(registry),
		queue.WithPersisterLogger(discardLogger()))
	require.NoError(t, err)

	sink := &lineSink{}
	executor, err := queue.NewExecutor(reader, registry, persister, sink,
		queue.WithPollInterval(5*time.Millisecond),
		queue.WithExecutorLogger(discardLogger()))
	require.NoError(t, err)

	enqueuer, err := queue.NewEnqueuer(persister, registry)
	require.NoError(t, err)

	done := make(chan struct{}, 2)
	go func() { _ = persister.Run(ctx); done <- struct{}{} }()
	go func() { _ = executor.Run(ctx); done <- struct{}{} }()

	for range 3 {
		_, err := enqueuer.Enqueue(ctx, "a", queue.WithDelay(-time.Second))
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		records, err := writer.FetchAll(ctx)
		if err != nil || len(records) != 3 {
			return false
		}
		for _, r := range records {
			if r.Status != queue.TaskStatusComplete {
				return false
			}
		}
		return true
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	<-done
	<-done

	assert.Equal(t, 3, sink.count())
}
