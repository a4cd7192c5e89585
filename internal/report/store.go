package report

import (
	"context"

	id "custodia/pkg/domain"
)

// Store is the report persistence contract.
type Store interface {
	Create(ctx context.Context, r *Report) error
	ListByEvidence(ctx context.Context, evidenceID id.EvidenceID) ([]Report, error)
	// ListRecent returns the newest reports first with analyst names, capped
	// at limit.
	ListRecent(ctx context.Context, limit int) ([]Listing, error)
}
