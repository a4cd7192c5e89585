package handler

import (
	"time"

	"custodia/internal/cases"
)

type caseResponse struct {
	CaseID      string    `json:"case_id"`
	CaseNumber  string    `json:"case_number"`
	Title       string    `json:"case_title"`
	Description string    `json:"description,omitempty"`
	AssignedTo  string    `json:"assigned_to,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type detailResponse struct {
	Case     caseResponse   `json:"case"`
	Evidence []evidenceItem `json:"evidence"`
}

type evidenceItem struct {
	EvidenceID   string    `json:"evidence_id"`
	EvidenceType string    `json:"evidence_type"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"current_status"`
	CollectedOn  time.Time `json:"collected_on"`
}

func fromCase(c *cases.Case) caseResponse {
	resp := caseResponse{
		CaseID:      c.ID.String(),
		CaseNumber:  c.CaseNumber,
		Title:       c.Title,
		Description: c.Description,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}
	if !c.AssignedTo.IsNil() {
		resp.AssignedTo = c.AssignedTo.String()
	}
	return resp
}

func fromCases(list []cases.Case) []caseResponse {
	out := make([]caseResponse, 0, len(list))
	for i := range list {
		out = append(out, fromCase(&list[i]))
	}
	return out
}

func fromDetail(detail *cases.Detail) detailResponse {
	resp := detailResponse{
		Case:     fromCase(&detail.Case),
		Evidence: make([]evidenceItem, 0, len(detail.Evidence)),
	}
	for _, item := range detail.Evidence {
		resp.Evidence = append(resp.Evidence, evidenceItem{
			EvidenceID:   item.ID.String(),
			EvidenceType: item.EvidenceType,
			Description:  item.Description,
			Status:       item.CurrentStatus,
			CollectedOn:  item.CollectedOn,
		})
	}
	return resp
}
