package audit

import (
	"context"
	"sort"
	"sync"

	id "custodia/pkg/domain"
)

// InMemoryStore backs unit tests. It assigns log IDs from a counter so the
// monotonicity invariant holds the same way the BIGSERIAL does.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  int64

	// FailAppends makes Append return an error, for exercising the
	// audit-aborts-transaction path in tests.
	FailAppends error
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1}
}

func (s *InMemoryStore) Append(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppends != nil {
		return s.FailAppends
	}
	entry.LogID = s.nextID
	s.nextID++
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *InMemoryStore) ListByEvidence(_ context.Context, evidenceID id.EvidenceID, order Order) ([]Entry, error) {
	return s.list(func(e Entry) bool { return e.EvidenceID == evidenceID }, order), nil
}

func (s *InMemoryStore) ListByActor(_ context.Context, actorID id.UserID, order Order) ([]Entry, error) {
	return s.list(func(e Entry) bool { return e.ActorID == actorID }, order), nil
}

func (s *InMemoryStore) ListByEvidenceActions(_ context.Context, evidenceID id.EvidenceID, actions []string) ([]Entry, error) {
	wanted := make(map[string]bool, len(actions))
	for _, a := range actions {
		wanted[a] = true
	}
	return s.list(func(e Entry) bool { return e.EvidenceID == evidenceID && wanted[e.Action] }, OrderAsc), nil
}

func (s *InMemoryStore) list(match func(Entry) bool, order Order) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, e := range s.entries {
		if match(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OccurredAt.Equal(out[j].OccurredAt) {
			if order == OrderDesc {
				return out[i].LogID > out[j].LogID
			}
			return out[i].LogID < out[j].LogID
		}
		if order == OrderDesc {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out
}

// All returns every entry in insertion order; test helper.
func (s *InMemoryStore) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry{}, s.entries...)
}
