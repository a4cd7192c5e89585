package evidence

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	id "custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
)

// InMemoryStore backs unit tests.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[id.EvidenceID]Item

	// names for listing enrichment; tests seed these directly.
	PeopleNames  map[id.UserID]string
	StorageNames map[id.StorageID]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		items:        make(map[id.EvidenceID]Item),
		PeopleNames:  make(map[id.UserID]string),
		StorageNames: make(map[id.StorageID]string),
	}
}

func (s *InMemoryStore) Create(_ context.Context, item *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; ok {
		return sentinel.ErrConflict
	}
	s.items[item.ID] = *item
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, evidenceID id.EvidenceID) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[evidenceID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &item, nil
}

func (s *InMemoryStore) ListByCase(_ context.Context, caseID id.CaseID) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []Item
	for _, item := range s.items {
		if item.CaseID == caseID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CollectedOn.After(items[j].CollectedOn)
	})
	return items, nil
}

func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []Item
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CollectedOn.After(items[j].CollectedOn)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	listings := make([]Listing, 0, len(items))
	for _, item := range items {
		listings = append(listings, Listing{
			ID:              item.ID,
			CaseID:          item.CaseID,
			EvidenceType:    item.EvidenceType,
			Description:     item.Description,
			CurrentStatus:   item.CurrentStatus,
			CollectedOn:     item.CollectedOn,
			CollectedByName: s.PeopleNames[item.CollectedBy],
			CustodianName:   s.PeopleNames[item.CurrentCustodianID],
			StorageName:     s.StorageNames[item.StorageID],
		})
	}
	return listings, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, evidenceID id.EvidenceID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[evidenceID]
	if !ok {
		return sentinel.ErrNotFound
	}
	item.CurrentStatus = status
	s.items[evidenceID] = item
	return nil
}

func (s *InMemoryStore) SetCustody(_ context.Context, evidenceID id.EvidenceID, custodian id.UserID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[evidenceID]
	if !ok {
		return sentinel.ErrNotFound
	}
	item.CurrentCustodianID = custodian
	item.CurrentStatus = status
	s.items[evidenceID] = item
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, evidenceID id.EvidenceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[evidenceID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.items, evidenceID)
	return nil
}

// InMemoryStorageStore resolves storage locations by name for tests.
type InMemoryStorageStore struct {
	mu    sync.Mutex
	byName map[string]id.StorageID
}

func NewInMemoryStorageStore() *InMemoryStorageStore {
	return &InMemoryStorageStore{byName: make(map[string]id.StorageID)}
}

func (s *InMemoryStorageStore) FindOrCreate(_ context.Context, name string) (id.StorageID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if storageID, ok := s.byName[name]; ok {
		return storageID, nil
	}
	storageID := id.StorageID(uuid.New())
	s.byName[name] = storageID
	return storageID, nil
}
