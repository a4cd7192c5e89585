package transfer

import (
	"context"

	id "custodia/pkg/domain"
)

// Store is the transfer persistence contract. Write methods participate in
// the caller's transaction when one travels in context.
type Store interface {
	Create(ctx context.Context, req *Request) error
	FindByID(ctx context.Context, transferID id.TransferID) (*Request, error)
	// GetForUpdate loads a transfer with an exclusive row lock. It must run
	// inside a transaction; concurrent deciders serialize here.
	GetForUpdate(ctx context.Context, transferID id.TransferID) (*Request, error)
	// ApplyDecision writes the verdict fields of a decided transfer.
	ApplyDecision(ctx context.Context, req *Request) error
	ListByEvidence(ctx context.Context, evidenceID id.EvidenceID) ([]Request, error)
	// ListAll returns every transfer enriched with participant names, newest
	// request first.
	ListAll(ctx context.Context) ([]Listing, error)
}
