package queue

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// MemoryStorage implements Writer and Reader for testing and local development.
// Nothing survives the process.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []Record
	byID    map[int64]int
	nextID  int64
}

// NewMemoryStorage creates a new in-memory storage implementation
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:   make(map[int64]int),
		nextID: 1,
	}
}

// Insert implements Writer
func (ms *MemoryStorage) Insert(ctx context.Context, variant Variant, dueAt time.Time) (int64, error) {
	if variant == "" {
		return 0, errors.New("variant cannot be empty")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	id := ms.nextID
	ms.nextID++

	ms.byID[id] = len(ms.records)
	ms.records = append(ms.records, Record{
		ID:      id,
		Variant: variant,
		Status:  TaskStatusPending,
		DueAt:   dueAt,
	})

	return id, nil
}

// Complete implements Writer
func (ms *MemoryStorage) Complete(ctx context.Context, id int64) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	idx, exists := ms.byID[id]
	if !exists {
		return nil
	}

	ms.records[idx].Status = TaskStatusComplete
	return nil
}

// FetchDue implements Reader
func (ms *MemoryStorage) FetchDue(ctx context.Context, before time.Time) ([]DueTask, error) {
	ms.mu.RLock()
	due := make([]Record, 0)
	for _, r := range ms.records {
		if r.Status == TaskStatusPending && r.DueAt.Before(before) {
			due = append(due, r)
		}
	}
	ms.mu.RUnlock()

	// Due time first, insertion order for ties
	slices.SortStableFunc(due, func(a, b Record) int {
		if c := a.DueAt.Compare(b.DueAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	tasks := make([]DueTask, len(due))
	for i, r := range due {
		tasks[i] = DueTask{ID: r.ID, Variant: r.Variant}
	}
	return tasks, nil
}

// FetchAll implements Reader
func (ms *MemoryStorage) FetchAll(ctx context.Context) ([]Record, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	// Return a copy to prevent external modifications
	return slices.Clone(ms.records), nil
}
