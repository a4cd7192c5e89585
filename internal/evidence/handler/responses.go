package handler

import (
	"time"

	"custodia/internal/evidence"
)

type itemResponse struct {
	EvidenceID   string    `json:"evidence_id"`
	CaseID       string    `json:"case_id"`
	EvidenceType string    `json:"evidence_type"`
	Description  string    `json:"description,omitempty"`
	CollectedBy  string    `json:"collected_by,omitempty"`
	CustodianID  string    `json:"current_custodian_id,omitempty"`
	StorageID    string    `json:"storage_id,omitempty"`
	Status       string    `json:"current_status"`
	CollectedOn  time.Time `json:"collected_on"`
	FileKey      string    `json:"file_key,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func fromItem(item *evidence.Item) itemResponse {
	resp := itemResponse{
		EvidenceID:   item.ID.String(),
		CaseID:       item.CaseID.String(),
		EvidenceType: item.EvidenceType,
		Description:  item.Description,
		Status:       item.CurrentStatus,
		CollectedOn:  item.CollectedOn,
		FileKey:      item.FileKey,
	}
	if !item.CollectedBy.IsNil() {
		resp.CollectedBy = item.CollectedBy.String()
	}
	if !item.CurrentCustodianID.IsNil() {
		resp.CustodianID = item.CurrentCustodianID.String()
	}
	if !item.StorageID.IsNil() {
		resp.StorageID = item.StorageID.String()
	}
	return resp
}

func fromItems(items []evidence.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for i := range items {
		out = append(out, fromItem(&items[i]))
	}
	return out
}
