package queue

import "errors"

// Common errors
var (
	// ErrRepositoryNil is returned when a nil store handle is provided
	ErrRepositoryNil = errors.New("repository cannot be nil")

	// ErrRegistryNil is returned when a component is built without a variant registry
	ErrRegistryNil = errors.New("variant registry cannot be nil")

	// ErrSenderNil is returned when a component is built without an intent sender
	ErrSenderNil = errors.New("intent sender cannot be nil")

	// ErrSinkNil is returned when the executor is built without a result sink
	ErrSinkNil = errors.New("result sink cannot be nil")

	// ErrUnknownVariant is returned when a task type identifier has no registered behavior
	ErrUnknownVariant = errors.New("unknown task variant")

	// ErrVariantAlreadyRegistered is returned when two handlers share an identifier
	ErrVariantAlreadyRegistered = errors.New("task variant already registered")

	// ErrNoHandlers is returned when a registry is built without handlers
	ErrNoHandlers = errors.New("no task handlers registered")

	// ErrUnknownIntent is returned when the persister receives an intent of unknown kind
	ErrUnknownIntent = errors.New("unknown intent kind")

	// ErrIntentRejected is returned when an intent was not accepted before the context ended
	ErrIntentRejected = errors.New("intent rejected: channel full")

	// ErrPersisterStopped is returned when sending to a persister that is no longer running
	ErrPersisterStopped = errors.New("persister stopped")

	// ErrAlreadyRunning is returned when Run is called on a running or already used component
	ErrAlreadyRunning = errors.New("already running")

	// ErrStoreWrite is returned when the persister fails to apply an intent
	ErrStoreWrite = errors.New("failed to write to event store")

	// ErrStoreRead is returned when the executor fails to select due tasks
	ErrStoreRead = errors.New("failed to read from event store")

	// ErrResultWrite is returned when the executor fails to append a result line
	ErrResultWrite = errors.New("failed to write task result")
)
