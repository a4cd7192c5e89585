package identity

import (
	"context"

	id "custodia/pkg/domain"
)

// Store is the person directory contract. Implementations return
// sentinel.ErrNotFound (optionally wrapped) for absent people.
type Store interface {
	Create(ctx context.Context, person *Person) error
	FindByID(ctx context.Context, userID id.UserID) (*Person, error)
	FindByEmail(ctx context.Context, email string) (*Person, error)
	FindByBadge(ctx context.Context, badge string) (*Person, error)
	FindByName(ctx context.Context, name string) (*Person, error)
	// FindFirstByRoles returns one person holding any of the given roles,
	// preferring earlier roles in the list.
	FindFirstByRoles(ctx context.Context, roles []id.Role) (*Person, error)
}
