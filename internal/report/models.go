// Package report records analysis findings against evidence items.
package report

import (
	"io"
	"time"

	id "custodia/pkg/domain"
)

// Report is one analysis report. AnalystID may be the nil UUID when no
// analyst could be attributed.
type Report struct {
	ID         id.ReportID
	EvidenceID id.EvidenceID
	AnalystID  id.UserID
	Findings   string
	ReportKey  string // blob store handle; empty when no file was attached
	CreatedAt  time.Time
}

// Listing is a report enriched with the analyst's name for display.
type Listing struct {
	ID          id.ReportID   `json:"report_id"`
	EvidenceID  id.EvidenceID `json:"evidence_id"`
	Findings    string        `json:"findings"`
	ReportKey   string        `json:"report_key,omitempty"`
	AnalystName string        `json:"analyst_name,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Attachment is a report file handed to create. Body is consumed once.
type Attachment struct {
	Name        string
	ContentType string
	Body        io.Reader
}
