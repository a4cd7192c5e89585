package identity

import (
	"context"
	"errors"

	id "custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/sentinel"
)

// Directory resolves person references for the rest of the system.
type Directory struct {
	store Store
}

func NewDirectory(store Store) *Directory {
	return &Directory{store: store}
}

// Get returns the person for userID or a NotFound domain error.
func (d *Directory) Get(ctx context.Context, userID id.UserID) (*Person, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "user id is required")
	}
	person, err := d.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up person")
	}
	return person, nil
}

// Resolve maps a public-path lookup (email, badge number, or name) onto a
// person record, trying identifiers in order of reliability.
func (d *Directory) Resolve(ctx context.Context, lookup Lookup) (*Person, error) {
	if lookup.Empty() {
		return nil, dErrors.New(dErrors.CodeValidation, "an email, badge number, or name is required")
	}

	lookups := []func(context.Context) (*Person, error){}
	if lookup.Email != "" {
		lookups = append(lookups, func(ctx context.Context) (*Person, error) {
			return d.store.FindByEmail(ctx, lookup.Email)
		})
	}
	if lookup.Badge != "" {
		lookups = append(lookups, func(ctx context.Context) (*Person, error) {
			return d.store.FindByBadge(ctx, lookup.Badge)
		})
	}
	if lookup.Name != "" {
		lookups = append(lookups, func(ctx context.Context) (*Person, error) {
			return d.store.FindByName(ctx, lookup.Name)
		})
	}

	for _, find := range lookups {
		person, err := find(ctx)
		if err == nil {
			return person, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve person")
		}
	}
	return nil, dErrors.New(dErrors.CodeValidation, "could not resolve person from provided identifiers")
}
