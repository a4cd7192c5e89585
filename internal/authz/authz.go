// Package authz is the access control gate: a stateless policy table mapping
// a principal's role onto the operations it may perform. Handlers consult the
// gate before touching any service; a denial is terminal, never retried.
package authz

import (
	id "custodia/pkg/domain"
)

// Operation names one gated action on the API surface.
type Operation string

const (
	OpCaseCreate Operation = "case.create"
	OpCaseList   Operation = "case.list"
	OpCaseView   Operation = "case.view"
	OpCaseUpdate Operation = "case.update"

	OpEvidenceIntake       Operation = "evidence.intake"
	OpEvidenceView         Operation = "evidence.view"
	OpEvidenceStatusUpdate Operation = "evidence.status_update"
	OpEvidenceRemove       Operation = "evidence.remove"

	// OpTransferImmediate is the privileged path: the transfer is created and
	// approved in one step, with the custody mutation applied immediately.
	OpTransferImmediate Operation = "transfer.immediate"
	// OpTransferRequest is the public path: the transfer is opened in status
	// Requested and awaits a separate decision.
	OpTransferRequest Operation = "transfer.request"
	OpTransferDecide  Operation = "transfer.decide"
	OpTransferView    Operation = "transfer.view"

	OpReportCreate Operation = "report.create"
	OpReportView   Operation = "report.view"

	OpAuditView Operation = "audit.view"
)

var authenticated = []id.Role{id.RoleAdmin, id.RoleInvestigator, id.RoleLabStaff}
var everyone = []id.Role{id.RoleAdmin, id.RoleInvestigator, id.RoleLabStaff, id.RolePublic}

// policy is the single source of truth for who may do what. Admin rows are
// listed explicitly rather than special-cased so the table reads as the
// complete policy.
var policy = map[Operation][]id.Role{
	OpCaseCreate: {id.RoleAdmin, id.RoleInvestigator, id.RolePublic},
	OpCaseList:   everyone,
	OpCaseView:   authenticated,
	OpCaseUpdate: {id.RoleAdmin, id.RoleInvestigator},

	OpEvidenceIntake:       {id.RoleAdmin, id.RoleInvestigator, id.RolePublic},
	OpEvidenceView:         everyone,
	OpEvidenceStatusUpdate: {id.RoleAdmin, id.RoleInvestigator, id.RoleLabStaff},
	OpEvidenceRemove:       {id.RoleAdmin},

	OpTransferImmediate: {id.RoleAdmin},
	OpTransferRequest:   everyone,
	OpTransferDecide:    {id.RoleAdmin},
	OpTransferView:      everyone,

	OpReportCreate: {id.RoleAdmin, id.RoleLabStaff, id.RolePublic},
	OpReportView:   everyone,

	OpAuditView: {id.RoleAdmin},
}

// Gate answers authorization queries. It carries no state; one value serves
// the whole process.
type Gate struct{}

func NewGate() Gate { return Gate{} }

// Permitted reports whether role may perform op. Unknown operations are
// denied.
func (Gate) Permitted(role id.Role, op Operation) bool {
	for _, allowed := range policy[op] {
		if allowed == role {
			return true
		}
	}
	return false
}
