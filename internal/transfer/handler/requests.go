package handler

import (
	"encoding/json"
	"net/http"

	"custodia/internal/identity"
	"custodia/internal/transfer"
	id "custodia/pkg/domain"
)

type createRequest struct {
	EvidenceID string `json:"evidence_id"`
	FromUser   string `json:"from_user"`
	ToUser     string `json:"to_user"`
	Remarks    string `json:"remarks"`
}

func (r createRequest) command() (transfer.Command, error) {
	var cmd transfer.Command
	if r.EvidenceID != "" {
		evidenceID, err := id.ParseEvidenceID(r.EvidenceID)
		if err != nil {
			return cmd, err
		}
		cmd.EvidenceID = evidenceID
	}
	if r.FromUser != "" {
		from, err := id.ParseUserID(r.FromUser)
		if err != nil {
			return cmd, err
		}
		cmd.FromUser = from
	}
	if r.ToUser != "" {
		to, err := id.ParseUserID(r.ToUser)
		if err != nil {
			return cmd, err
		}
		cmd.ToUser = to
	}
	cmd.Remarks = r.Remarks
	return cmd, nil
}

type publicCreateRequest struct {
	EvidenceID string `json:"evidence_id"`
	FromEmail  string `json:"from_email"`
	FromBadge  string `json:"from_badge"`
	FromName   string `json:"from_name"`
	ToEmail    string `json:"to_email"`
	ToBadge    string `json:"to_badge"`
	ToName     string `json:"to_name"`
	Remarks    string `json:"remarks"`
}

func (r publicCreateRequest) evidenceID() (id.EvidenceID, error) {
	return id.ParseEvidenceID(r.EvidenceID)
}

func (r publicCreateRequest) fromLookup() identity.Lookup {
	return identity.Lookup{Email: r.FromEmail, Badge: r.FromBadge, Name: r.FromName}
}

func (r publicCreateRequest) toLookup() identity.Lookup {
	return identity.Lookup{Email: r.ToEmail, Badge: r.ToBadge, Name: r.ToName}
}

type decideRequest struct {
	Remarks string `json:"remarks"`
}

func decodeLenient(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}
