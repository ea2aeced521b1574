package queue

import (
	"time"
)

// Variant is the stable identifier of a task variant, persisted in the type column.
type Variant string

func (v Variant) String() string {
	return string(v)
}

// TaskStatus represents the status of a task record
type TaskStatus string

const (
	TaskStatusPending  TaskStatus = "pending"
	TaskStatusComplete TaskStatus = "complete"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusComplete
}

// Record is a persisted task row.
// ID, Variant and DueAt never change after insert; Status only moves pending -> complete.
type Record struct {
	ID      int64      `json:"id"`
	Variant Variant    `json:"type"`
	Status  TaskStatus `json:"status"`
	DueAt   time.Time  `json:"due_at"`
}

// DueTask is a pending record selected for execution.
type DueTask struct {
	ID      int64   `json:"id"`
	Variant Variant `json:"type"`
}

// IntentKind distinguishes write-intents
type IntentKind uint8

const (
	IntentNewTask IntentKind = iota + 1
	IntentTaskCompleted
)

func (k IntentKind) String() string {
	switch k {
	case IntentNewTask:
		return "new_task"
	case IntentTaskCompleted:
		return "task_completed"
	default:
		return "unknown"
	}
}

// Intent is a single requested store mutation, applied by the Persister.
type Intent struct {
	Kind IntentKind

	// NewTask fields. A zero DueAt is stamped with the time the Persister applies the intent.
	Variant Variant
	DueAt   time.Time

	// TaskCompleted fields
	TaskID int64
}

// NewTaskIntent builds an intent that inserts a pending record.
func NewTaskIntent(variant Variant, dueAt time.Time) Intent {
	return Intent{Kind: IntentNewTask, Variant: variant, DueAt: dueAt}
}

// TaskCompletedIntent builds an intent that marks a record complete.
func TaskCompletedIntent(id int64) Intent {
	return Intent{Kind: IntentTaskCompleted, TaskID: id}
}
