package store

import (
	"context"
	"sync"

	"guestbook/internal/shared"
)

// MemoryStore keeps entries in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu sync.Mutex

	entries []shared.Entry // oldest first
	nextID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) ListEntries(ctx context.Context) ([]shared.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]shared.Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *MemoryStore) AppendEntry(ctx context.Context, e *shared.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, *e)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
