package blob

import (
	"context"
	"io"
	"sync"

	"custodia/pkg/platform/sentinel"
)

// InMemory keeps blobs in a map. It backs unit tests and local development
// without an object store.
type InMemory struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	// FailDeletes makes Delete return ErrUnavailable, for exercising the
	// best-effort deletion path in tests.
	FailDeletes bool
}

func NewInMemory() *InMemory {
	return &InMemory{blobs: make(map[string][]byte)}
}

func (s *InMemory) Put(_ context.Context, key string, body io.Reader, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return nil
}

func (s *InMemory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDeletes {
		return sentinel.ErrUnavailable
	}
	if _, ok := s.blobs[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.blobs, key)
	return nil
}

// Get returns a stored blob; test helper.
func (s *InMemory) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	return data, ok
}

// Len reports how many blobs are stored; test helper.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
