package api

import (
	"errors"
	"net/http"
)

// HTTPError is an error with a status code and a stable machine-readable key.
type HTTPError struct {
	Status int
	Key    string
}

func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrInvalidSchedule  = HTTPError{Status: http.StatusBadRequest, Key: "invalid_schedule"}
	ErrNotFound         = HTTPError{Status: http.StatusNotFound, Key: "not_found"}
	ErrUnknownVariant   = HTTPError{Status: http.StatusNotFound, Key: "unknown_variant"}
	ErrMethodNotAllowed = HTTPError{Status: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	ErrInternal         = HTTPError{Status: http.StatusInternalServerError, Key: "internal_error"}
	ErrQueueFull        = HTTPError{Status: http.StatusServiceUnavailable, Key: "queue_full"}
	ErrQueueStopped     = HTTPError{Status: http.StatusServiceUnavailable, Key: "queue_stopped"}
	ErrRateLimited      = HTTPError{Status: http.StatusTooManyRequests, Key: "rate_limited"}
)

var (
	errConflictingSchedule = errors.New("delay and t are mutually exclusive")
	errDelayOutOfRange     = errors.New("delay out of range")
)
