package inflight

import (
	"sort"
	"sync"
	"time"

	"github.com/codex-k8s/court-review/internal/maputil"
)

// Set tracks identifiers with an operation in flight.
// At most one operation per identifier is admitted at a time.
type Set struct {
	mu      sync.Mutex
	pending map[string]time.Time
	now     func() time.Time
}

// NewSet creates an empty in-flight set.
func NewSet() *Set {
	return &Set{pending: make(map[string]time.Time), now: time.Now}
}

// Acquire marks id as in flight. It returns false if id is already in flight.
func (s *Set) Acquire(id string) bool {
	return maputil.PutIfAbsent(&s.mu, s.pending, id, s.now())
}

// Release clears the in-flight mark for id.
func (s *Set) Release(id string) {
	maputil.Pop(&s.mu, s.pending, id)
}

// Has reports whether id is in flight.
func (s *Set) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

// Len returns the number of identifiers in flight.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// IDs returns the identifiers in flight, sorted.
func (s *Set) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.pending))
	for id := range s.pending {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Since returns when id was acquired.
func (s *Set) Since(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	started, ok := s.pending[id]
	return started, ok
}
