// Package cases tracks investigation cases, the grouping unit for evidence.
package cases

import (
	"strings"
	"time"

	id "custodia/pkg/domain"
)

// Well-known case statuses. Stored as free text like evidence statuses.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
)

// Case is one investigation case.
type Case struct {
	ID          id.CaseID
	CaseNumber  string
	Title       string
	Description string
	AssignedTo  id.UserID // nil UUID when unassigned
	Status      string
	CreatedAt   time.Time
}

// CaseNumberFor derives the human-facing case number from the case ID. The
// prefix plus the first ID octets gives operators something short to say on
// the phone while staying collision-free in practice.
func CaseNumberFor(caseID id.CaseID) string {
	raw := strings.ReplaceAll(caseID.String(), "-", "")
	return "CS-" + strings.ToUpper(raw[:8])
}
