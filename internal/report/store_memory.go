package report

import (
	"context"
	"sort"
	"sync"

	id "custodia/pkg/domain"
)

// InMemoryStore backs unit tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	reports []Report

	// PeopleNames enriches ListRecent; tests seed it directly.
	PeopleNames map[id.UserID]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{PeopleNames: make(map[id.UserID]string)}
}

func (s *InMemoryStore) Create(_ context.Context, r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, *r)
	return nil
}

func (s *InMemoryStore) ListByEvidence(_ context.Context, evidenceID id.EvidenceID) ([]Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Report
	for _, r := range s.reports {
		if r.EvidenceID == evidenceID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reports := append([]Report{}, s.reports...)
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	if len(reports) > limit {
		reports = reports[:limit]
	}
	listings := make([]Listing, 0, len(reports))
	for _, r := range reports {
		listings = append(listings, Listing{
			ID:          r.ID,
			EvidenceID:  r.EvidenceID,
			Findings:    r.Findings,
			ReportKey:   r.ReportKey,
			AnalystName: s.PeopleNames[r.AnalystID],
			CreatedAt:   r.CreatedAt,
		})
	}
	return listings, nil
}
