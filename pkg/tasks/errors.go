package tasks

import "errors"

var (
	ErrEmptyFetchURL      = errors.New("fetch url cannot be empty")
	ErrInvalidRandomBound = errors.New("random bound must be positive")
	ErrFetchFailed        = errors.New("fetch request failed")
)
