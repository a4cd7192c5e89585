package cases

import (
	"context"

	id "custodia/pkg/domain"
)

// Store is the case persistence contract.
type Store interface {
	Create(ctx context.Context, c *Case) error
	FindByID(ctx context.Context, caseID id.CaseID) (*Case, error)
	List(ctx context.Context) ([]Case, error)
	UpdateStatus(ctx context.Context, caseID id.CaseID, status string) error
}
