package handler

import (
	"time"

	"custodia/internal/transfer"
)

type requestResponse struct {
	TransferID      string     `json:"transfer_id"`
	EvidenceID      string     `json:"evidence_id"`
	FromUser        string     `json:"from_user"`
	ToUser          string     `json:"to_user"`
	Remarks         string     `json:"remarks,omitempty"`
	RequestedAt     time.Time  `json:"requested_at"`
	Status          string     `json:"status"`
	ApprovedBy      string     `json:"approved_by,omitempty"`
	DecisionRemarks string     `json:"decision_remarks,omitempty"`
	DecidedAt       *time.Time `json:"decision_at,omitempty"`
}

func fromRequest(req *transfer.Request) requestResponse {
	resp := requestResponse{
		TransferID:      req.ID.String(),
		EvidenceID:      req.EvidenceID.String(),
		FromUser:        req.FromUser.String(),
		ToUser:          req.ToUser.String(),
		Remarks:         req.Remarks,
		RequestedAt:     req.RequestedAt,
		Status:          string(req.Status),
		DecisionRemarks: req.DecisionRemarks,
		DecidedAt:       req.DecidedAt,
	}
	if !req.ApprovedBy.IsNil() {
		resp.ApprovedBy = req.ApprovedBy.String()
	}
	return resp
}

func fromRequests(requests []transfer.Request) []requestResponse {
	out := make([]requestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, fromRequest(&requests[i]))
	}
	return out
}
