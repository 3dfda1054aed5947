package idgen

import (
	"sync"
	"time"
)

// Sequence hands out millisecond timestamps as ids, bumping past the last
// issued value so two ids taken in the same millisecond never collide.
type Sequence struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// New builds a sequence reading the given clock. A nil clock uses time.Now.
func New(now func() time.Time) *Sequence {
	if now == nil {
		now = time.Now
	}
	return &Sequence{now: now}
}

// Next returns an id greater than every id previously returned.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe records an id that already exists so later ids are issued above it.
func (s *Sequence) Observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last {
		s.last = id
	}
}
