package activity

import (
	"context"
	"sync"
)

// Store holds synced activities in insertion order. Implementations must be
// safe for concurrent use; List returns a copy the caller may modify.
type Store interface {
	Append(ctx context.Context, a SyncedActivity) error
	List(ctx context.Context) []SyncedActivity
	Len(ctx context.Context) int
}

// MemoryStore keeps synced activities in insertion order for the life of
// the process.
type MemoryStore struct {
	mu       sync.RWMutex
	items    []SyncedActivity
	maxItems int
}

// NewMemoryStore creates a store. maxItems <= 0 means unbounded; a bounded
// store rejects appends once full instead of evicting.
func NewMemoryStore(maxItems int) *MemoryStore {
	if maxItems < 0 {
		maxItems = 0
	}
	return &MemoryStore{maxItems: maxItems}
}

// Append adds a at the end of the store, or returns ErrStoreFull when a
// bounded store is at capacity.
func (s *MemoryStore) Append(ctx context.Context, a SyncedActivity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxItems > 0 && len(s.items) >= s.maxItems {
		return ErrStoreFull
	}
	s.items = append(s.items, a)
	return nil
}

// List returns a copy of the stored activities, oldest first.
func (s *MemoryStore) List(ctx context.Context) []SyncedActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SyncedActivity, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports how many activities are stored.
func (s *MemoryStore) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
