package dedup

import "sync"

// Tracker prevents a source item from being attempted twice within one
// process lifetime. MarkAttempted is called at candidate-selection time,
// strictly before the cascade runs; there is no removal operation.
type Tracker interface {
	IsEligible(id string) bool
	MarkAttempted(id string)
	Count() int
}

// MemoryTracker is the default session-scoped tracker. Entries never expire;
// the set is cleared only by process restart.
type MemoryTracker struct {
	mu        sync.Mutex
	attempted map[string]struct{}
}

// NewMemoryTracker returns an empty tracker.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{attempted: make(map[string]struct{})}
}

// IsEligible reports whether the identifier has not been attempted yet.
func (t *MemoryTracker) IsEligible(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, seen := t.attempted[id]
	return !seen
}

// MarkAttempted inserts the identifier.
func (t *MemoryTracker) MarkAttempted(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempted[id] = struct{}{}
}

// Count returns how many identifiers have been attempted this session.
func (t *MemoryTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.attempted)
}
