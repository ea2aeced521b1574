package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrEmptyPath               = errors.New("empty sqlite path, use SQLITE_PATH env var")
	ErrStoreNotFound           = errors.New("event store file not found")
	ErrFailedToOpenDB          = errors.New("failed to open sqlite database")
	ErrFailedToApplyMigrations = errors.New("failed to apply migrations")
	ErrHealthcheckFailed       = errors.New("healthcheck failed, database is not available")
	ErrReadOnly                = errors.New("event store opened read-only")
	ErrUnknownStatus           = errors.New("unknown task status in event store")
)

// IsBusyError reports whether sqlite gave up waiting on a lock (SQLITE_BUSY or SQLITE_LOCKED).
func IsBusyError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		(sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked)
}

// IsConstraintError detects CHECK, NOT NULL and UNIQUE violations.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// IsReadOnlyError detects writes attempted through a read-only connection.
func IsReadOnlyError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrReadonly
}
