// Package evidence owns evidence item lifecycle state. It is the single
// writer of custody fields; the transfer engine mutates custody exclusively
// through this package's store.
package evidence

import (
	"io"
	"time"

	id "custodia/pkg/domain"
)

// Well-known lifecycle statuses. Status updates are deliberately lenient:
// any string is accepted, mirroring the operational reality that labs
// annotate items with ad-hoc states. The only hard gate is the delete-time
// hold on StatusUnderAnalysis.
const (
	StatusCollected     = "Collected"
	StatusCheckedIn     = "Checked In"
	StatusUnderAnalysis = "Under Analysis"
	StatusArchived      = "Archived"
)

// Item is one evidence item in custody.
type Item struct {
	ID                 id.EvidenceID
	CaseID             id.CaseID
	EvidenceType       string
	Description        string
	CollectedBy        id.UserID // nil UUID when the collector is unknown
	CurrentCustodianID id.UserID // nil UUID when no one holds custody
	StorageID          id.StorageID
	CurrentStatus      string
	CollectedOn        time.Time
	FileKey            string // blob store handle; empty when no file was attached
}

// StorageLocation is a named physical or logical storage slot.
type StorageLocation struct {
	ID              id.StorageID
	Name            string
	LocationDetails string
	Capacity        int
	Status          string
}

// Listing is the enriched public view of an item: IDs joined out to display
// names.
type Listing struct {
	ID              id.EvidenceID `json:"evidence_id"`
	CaseID          id.CaseID     `json:"case_id"`
	EvidenceType    string        `json:"evidence_type"`
	Description     string        `json:"description"`
	CurrentStatus   string        `json:"current_status"`
	CollectedOn     time.Time     `json:"collected_on"`
	CollectedByName string        `json:"collected_by_name,omitempty"`
	CustodianName   string        `json:"custodian_name,omitempty"`
	StorageName     string        `json:"storage_name,omitempty"`
}

// FileUpload is an attachment handed to intake. Body is consumed once.
type FileUpload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// IntakeCommand carries everything needed to take an item into custody.
type IntakeCommand struct {
	CaseID       id.CaseID
	EvidenceType string
	Description  string
	CollectedBy  id.UserID // may be nil on public intake when unresolvable
	StorageName  string    // optional; resolved or created by name
	File         *FileUpload
}
