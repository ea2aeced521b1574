package sqlite_test

import (
	"sync"

	"github.com/dmitrymomot/eventqueue/pkg/queue"
)

type lineSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *lineSink) WriteResult(variant queue.Variant, detail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, string(variant)+" "+detail)
	return nil
}

func (s *lineSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}
