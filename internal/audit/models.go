// Package audit is the append-only record of custody-relevant actions. Every
// committed mutation in the evidence store or the transfer engine writes
// exactly one entry, inside the same transaction as the mutation itself.
// There is no trigger or side-channel that could double-log or miss.
package audit

import (
	"fmt"
	"time"

	id "custodia/pkg/domain"
)

// Entry is one immutable audit record. LogID is assigned by the store and is
// monotonic within it.
type Entry struct {
	LogID      int64
	ActorID    id.UserID // nil UUID when the action came from an unauthenticated caller
	EvidenceID id.EvidenceID
	Action     string
	OccurredAt time.Time
}

// Order selects the timestamp ordering for queries.
type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// Action tag constructors. Tags encode the event kind and its parameters in
// one string, matching the forensic log format consumers already parse.

func StatusAction(status string) string {
	return "STATUS:" + status
}

func TransferRequestAction(from, to id.UserID) string {
	return fmt.Sprintf("TRANSFER_REQUEST:%s->%s", from, to)
}

func TransferApprovedAction(from, to id.UserID) string {
	return fmt.Sprintf("TRANSFER_APPROVED:%s->%s", from, to)
}

func TransferRejectedAction(from, to id.UserID) string {
	return fmt.Sprintf("TRANSFER_REJECTED:%s->%s", from, to)
}
