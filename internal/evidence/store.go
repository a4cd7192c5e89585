package evidence

import (
	"context"

	id "custodia/pkg/domain"
)

// Store is the evidence persistence contract. Implementations return
// sentinel errors for absence; write methods participate in a caller's
// transaction when one travels in context.
type Store interface {
	Create(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, evidenceID id.EvidenceID) (*Item, error)
	ListByCase(ctx context.Context, caseID id.CaseID) ([]Item, error)
	// ListRecent returns the newest items first, enriched with display
	// names, capped at limit.
	ListRecent(ctx context.Context, limit int) ([]Listing, error)
	UpdateStatus(ctx context.Context, evidenceID id.EvidenceID, status string) error
	// SetCustody atomically updates custodian and status. Only the transfer
	// engine calls this, inside its decision transaction.
	SetCustody(ctx context.Context, evidenceID id.EvidenceID, custodian id.UserID, status string) error
	Delete(ctx context.Context, evidenceID id.EvidenceID) error
}

// StorageStore resolves storage locations by name, creating them on first
// use.
type StorageStore interface {
	FindOrCreate(ctx context.Context, name string) (id.StorageID, error)
}
