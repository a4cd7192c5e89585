// Package transfer implements the custody transfer workflow. A transfer is
// either opened as a pending request and decided later, or executed
// immediately by a privileged actor. Every decision happens under a row lock
// so exactly one decision wins.
package transfer

import (
	"time"

	id "custodia/pkg/domain"
)

// Status is the workflow state of a transfer. Requested is the only
// non-terminal state.
type Status string

const (
	StatusRequested Status = "Requested"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
)

// Terminal reports whether the transfer has been decided.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Decision is the verdict applied to a pending transfer.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Request is one custody transfer record. Decision fields are zero until a
// decision lands.
type Request struct {
	ID              id.TransferID
	EvidenceID      id.EvidenceID
	FromUser        id.UserID
	ToUser          id.UserID
	Remarks         string
	RequestedAt     time.Time
	Status          Status
	ApprovedBy      id.UserID // the deciding actor, set for both verdicts
	DecisionRemarks string
	DecidedAt       *time.Time
}

// Listing is a transfer enriched with participant names for display.
type Listing struct {
	ID           id.TransferID `json:"transfer_id"`
	EvidenceID   id.EvidenceID `json:"evidence_id"`
	FromUser     id.UserID     `json:"from_user"`
	ToUser       id.UserID     `json:"to_user"`
	FromUserName string        `json:"from_user_name,omitempty"`
	ToUserName   string        `json:"to_user_name,omitempty"`
	Remarks      string        `json:"remarks,omitempty"`
	RequestedAt  time.Time     `json:"requested_at"`
	Status       Status        `json:"status"`
}
