package handler

import (
	"time"

	"custodia/internal/report"
)

type reportResponse struct {
	ReportID   string    `json:"report_id"`
	EvidenceID string    `json:"evidence_id"`
	AnalystID  string    `json:"analyst_id,omitempty"`
	Findings   string    `json:"findings"`
	ReportKey  string    `json:"report_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func fromReport(r *report.Report) reportResponse {
	resp := reportResponse{
		ReportID:   r.ID.String(),
		EvidenceID: r.EvidenceID.String(),
		Findings:   r.Findings,
		ReportKey:  r.ReportKey,
		CreatedAt:  r.CreatedAt,
	}
	if !r.AnalystID.IsNil() {
		resp.AnalystID = r.AnalystID.String()
	}
	return resp
}

func fromReports(reports []report.Report) []reportResponse {
	out := make([]reportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, fromReport(&reports[i]))
	}
	return out
}
