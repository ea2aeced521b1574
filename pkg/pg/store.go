package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/eventqueue/pkg/queue"
)

// Store is the PostgreSQL event store.
type Store struct {
	pool *pgxpool.Pool
}

var (
	_ queue.Writer = (*Store)(nil)
	_ queue.Reader = (*Store)(nil)
)

// NewStore wraps a pool whose schema was brought up with Migrate.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Insert implements queue.Writer.
func (s *Store) Insert(ctx context.Context, variant queue.Variant, dueAt time.Time) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO events (type, status, due_at) VALUES ($1, $2, $3) RETURNING id`,
		string(variant), string(queue.TaskStatusPending), dueAt.UnixMilli(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

// Complete implements queue.Writer. It is a no-op for missing or completed records.
func (s *Store) Complete(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE events SET status = $1 WHERE id = $2 AND status = $3`,
		string(queue.TaskStatusComplete), id, string(queue.TaskStatusPending))
	if err != nil {
		return fmt.Errorf("complete event %d: %w", id, err)
	}
	return nil
}

// FetchDue implements queue.Reader.
func (s *Store) FetchDue(ctx context.Context, before time.Time) ([]queue.DueTask, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, type FROM events
		WHERE status = $1 AND due_at < $2
		ORDER BY due_at ASC, id ASC`,
		string(queue.TaskStatusPending), before.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("select due events: %w", err)
	}

	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queue.DueTask, error) {
		var (
			task    queue.DueTask
			variant string
		)
		err := row.Scan(&task.ID, &variant)
		task.Variant = queue.Variant(variant)
		return task, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan due events: %w", err)
	}

	return tasks, nil
}

// FetchAll implements queue.Reader.
func (s *Store) FetchAll(ctx context.Context) ([]queue.Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, type, status, due_at FROM events ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}

	return records, nil
}

func scanRecord(row pgx.CollectableRow) (queue.Record, error) {
	var (
		record          queue.Record
		variant, status string
		dueAt           int64
	)
	if err := row.Scan(&record.ID, &variant, &status, &dueAt); err != nil {
		return record, err
	}

	record.Variant = queue.Variant(variant)
	record.Status = queue.TaskStatus(status)
	if !record.Status.Valid() {
		return record, fmt.Errorf("%w: %q for event %d", ErrUnknownStatus, status, record.ID)
	}
	record.DueAt = time.UnixMilli(dueAt).UTC()

	return record, nil
}
