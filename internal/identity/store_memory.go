package identity

import (
	"context"
	"sync"

	id "custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
)

// InMemoryStore backs unit tests and local development.
type InMemoryStore struct {
	mu     sync.RWMutex
	people map[id.UserID]*Person
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{people: make(map[id.UserID]*Person)}
}

func (s *InMemoryStore) Create(_ context.Context, person *Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *person
	s.people[person.ID] = &copied
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, userID id.UserID) (*Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	person, ok := s.people[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *person
	return &copied, nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*Person, error) {
	return s.findBy(func(p *Person) bool { return p.Email == email })
}

func (s *InMemoryStore) FindByBadge(_ context.Context, badge string) (*Person, error) {
	return s.findBy(func(p *Person) bool { return badge != "" && p.BadgeNumber == badge })
}

func (s *InMemoryStore) FindByName(_ context.Context, name string) (*Person, error) {
	return s.findBy(func(p *Person) bool { return p.Name == name })
}

func (s *InMemoryStore) FindFirstByRoles(_ context.Context, roles []id.Role) (*Person, error) {
	for _, role := range roles {
		if person, err := s.findBy(func(p *Person) bool { return p.Role == role }); err == nil {
			return person, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) findBy(match func(*Person) bool) (*Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, person := range s.people {
		if match(person) {
			copied := *person
			return &copied, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
