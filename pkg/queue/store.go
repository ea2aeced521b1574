package queue

import (
	"context"
	"time"
)

// Writer is the mutating half of the event store. Only the Persister holds one.
type Writer interface {
	// Insert appends a pending record and returns its id
	Insert(ctx context.Context, variant Variant, dueAt time.Time) (int64, error)

	// Complete marks a record complete. Completing an already complete or
	// missing id is not an error.
	Complete(ctx context.Context, id int64) error
}

// Reader is the query half of the event store.
type Reader interface {
	// FetchDue returns pending records with due time strictly before the given
	// time, oldest due first, ties broken by id.
	FetchDue(ctx context.Context, before time.Time) ([]DueTask, error)

	// FetchAll returns every record ordered by id
	FetchAll(ctx context.Context) ([]Record, error)
}

// IntentSender hands a write-intent to the persistence actor.
type IntentSender interface {
	Send(ctx context.Context, intent Intent) error
}
