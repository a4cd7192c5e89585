package audit

import (
	"context"

	id "custodia/pkg/domain"
)

// Store is the audit log contract.
//
// Append participates in the caller's transaction when one is present in
// context; an append failure must surface so the enclosing transaction
// aborts. Custody changes without an audit trail, or vice versa, are both
// correctness violations.
type Store interface {
	Append(ctx context.Context, entry *Entry) error
	ListByEvidence(ctx context.Context, evidenceID id.EvidenceID, order Order) ([]Entry, error)
	ListByActor(ctx context.Context, actorID id.UserID, order Order) ([]Entry, error)
	// ListByEvidenceActions narrows ListByEvidence to specific action tags.
	ListByEvidenceActions(ctx context.Context, evidenceID id.EvidenceID, actions []string) ([]Entry, error)
}
