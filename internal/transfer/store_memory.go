package transfer

import (
	"context"
	"sort"
	"sync"

	id "custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
)

// InMemoryStore backs unit tests. GetForUpdate relies on the in-memory tx
// runner's mutex for exclusion; the store itself only guards map access.
type InMemoryStore struct {
	mu        sync.RWMutex
	transfers map[id.TransferID]Request

	// PeopleNames enriches ListAll; tests seed it directly.
	PeopleNames map[id.UserID]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		transfers:   make(map[id.TransferID]Request),
		PeopleNames: make(map[id.UserID]string),
	}
}

func (s *InMemoryStore) Create(_ context.Context, req *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transfers[req.ID]; ok {
		return sentinel.ErrConflict
	}
	s.transfers[req.ID] = *req
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, transferID id.TransferID) (*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.transfers[transferID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &req, nil
}

func (s *InMemoryStore) GetForUpdate(ctx context.Context, transferID id.TransferID) (*Request, error) {
	return s.FindByID(ctx, transferID)
}

func (s *InMemoryStore) ApplyDecision(_ context.Context, req *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transfers[req.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.transfers[req.ID] = *req
	return nil
}

func (s *InMemoryStore) ListByEvidence(_ context.Context, evidenceID id.EvidenceID) ([]Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var requests []Request
	for _, req := range s.transfers {
		if req.EvidenceID == evidenceID {
			requests = append(requests, req)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].RequestedAt.Before(requests[j].RequestedAt)
	})
	return requests, nil
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var listings []Listing
	for _, req := range s.transfers {
		listings = append(listings, Listing{
			ID:           req.ID,
			EvidenceID:   req.EvidenceID,
			FromUser:     req.FromUser,
			ToUser:       req.ToUser,
			FromUserName: s.PeopleNames[req.FromUser],
			ToUserName:   s.PeopleNames[req.ToUser],
			Remarks:      req.Remarks,
			RequestedAt:  req.RequestedAt,
			Status:       req.Status,
		})
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].RequestedAt.After(listings[j].RequestedAt)
	})
	return listings, nil
}
