package resultlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrymomot/eventqueue/pkg/queue"
)

// DefaultFileName is the result file created next to the event store.
const DefaultFileName = "output.txt"

var (
	ErrEmptyPath  = errors.New("result log path cannot be empty")
	ErrClosed     = errors.New("result log is closed")
	ErrFailedOpen = errors.New("failed to open result log")
)

// File appends one "<variant> <detail>" line per executed task.
// It implements queue.ResultSink.
type File struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

var _ queue.ResultSink = (*File)(nil)

// PathFor resolves the result file location: cfg.Path when set, otherwise
// DefaultFileName in the directory of storePath.
func PathFor(cfg Config, storePath string) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	return filepath.Join(filepath.Dir(storePath), DefaultFileName)
}

// Open creates or truncates the file at path.
func Open(path string) (*File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Join(ErrFailedOpen, err)
	}

	return &File{f: f, path: path}, nil
}

// WriteResult implements queue.ResultSink.
func (l *File) WriteResult(variant queue.Variant, detail string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return ErrClosed
	}

	if _, err := fmt.Fprintf(l.f, "%s %s\n", variant, detail); err != nil {
		return fmt.Errorf("append result to %s: %w", l.path, err)
	}

	return nil
}

// Path returns the file location.
func (l *File) Path() string {
	return l.path
}

// Close flushes and closes the file. Later writes return ErrClosed.
func (l *File) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return nil
	}

	syncErr := l.f.Sync()
	closeErr := l.f.Close()
	l.f = nil

	return errors.Join(syncErr, closeErr)
}
