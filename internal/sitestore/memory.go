package sitestore

import (
	"context"
	"sync"
)

// MemoryStore is the in-process Store used by tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][][]byte

	// FailAppend and FailList force transport-style errors for tests.
	FailAppend error
	FailList   error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][][]byte)}
}

func (s *MemoryStore) Append(ctx context.Context, siteID string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.FailAppend != nil {
		return s.FailAppend
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := append([]byte(nil), value...)
	s.values[siteID] = append(s.values[siteID], copied)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, siteID string) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.FailList != nil {
		return nil, s.FailList
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, len(s.values[siteID]))
	copy(out, s.values[siteID])
	return out, nil
}
