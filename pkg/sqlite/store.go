package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/eventqueue/pkg/queue"
)

// Store is the sqlite event store. A writable Store implements queue.Writer and
// queue.Reader; one opened with OpenReader implements queue.Reader only and
// refuses writes with ErrReadOnly.
type Store struct {
	db       *sql.DB
	path     string
	readOnly bool
}

var (
	_ queue.Writer = (*Store)(nil)
	_ queue.Reader = (*Store)(nil)
)

// Insert implements queue.Writer.
func (s *Store) Insert(ctx context.Context, variant queue.Variant, dueAt time.Time) (int64, error) {
	if s.readOnly {
		return 0, ErrReadOnly
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO events (type, status, due_at) VALUES (?, ?, ?)`,
		string(variant), string(queue.TaskStatusPending), dueAt.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	return id, nil
}

// Complete implements queue.Writer. Completing a missing or already complete
// record changes nothing.
func (s *Store) Complete(ctx context.Context, id int64) error {
	if s.readOnly {
		return ErrReadOnly
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE events SET status = ? WHERE id = ? AND status = ?`,
		string(queue.TaskStatusComplete), id, string(queue.TaskStatusPending))
	if err != nil {
		return fmt.Errorf("complete event %d: %w", id, err)
	}

	return nil
}

// FetchDue implements queue.Reader.
func (s *Store) FetchDue(ctx context.Context, before time.Time) ([]queue.DueTask, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type FROM events
		WHERE status = ? AND due_at < ?
		ORDER BY due_at ASC, id ASC`,
		string(queue.TaskStatusPending), before.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("select due events: %w", err)
	}
	defer rows.Close()

	var tasks []queue.DueTask
	for rows.Next() {
		var (
			task    queue.DueTask
			variant string
		)
		if err := rows.Scan(&task.ID, &variant); err != nil {
			return nil, fmt.Errorf("scan due event: %w", err)
		}
		task.Variant = queue.Variant(variant)
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select due events: %w", err)
	}

	return tasks, nil
}

// FetchAll implements queue.Reader. Records are ordered by id.
func (s *Store) FetchAll(ctx context.Context) ([]queue.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, status, due_at FROM events ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	var records []queue.Record
	for rows.Next() {
		var (
			record          queue.Record
			variant, status string
			dueAt           int64
		)
		if err := rows.Scan(&record.ID, &variant, &status, &dueAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		record.Variant = queue.Variant(variant)
		record.Status = queue.TaskStatus(status)
		if !record.Status.Valid() {
			return nil, fmt.Errorf("%w: %q for event %d", ErrUnknownStatus, status, record.ID)
		}
		record.DueAt = time.UnixMilli(dueAt).UTC()

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	return records, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Healthcheck returns a closure suitable for readiness probes.
func Healthcheck(s *Store) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := s.db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
