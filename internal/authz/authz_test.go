package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	id "custodia/pkg/domain"
)

func TestGatePolicy(t *testing.T) {
	gate := NewGate()

	t.Run("admin may perform every operation", func(t *testing.T) {
		for op := range policy {
			assert.True(t, gate.Permitted(id.RoleAdmin, op), "admin denied %s", op)
		}
	})

	t.Run("only admin decides transfers", func(t *testing.T) {
		assert.True(t, gate.Permitted(id.RoleAdmin, OpTransferDecide))
		assert.False(t, gate.Permitted(id.RoleInvestigator, OpTransferDecide))
		assert.False(t, gate.Permitted(id.RoleLabStaff, OpTransferDecide))
		assert.False(t, gate.Permitted(id.RolePublic, OpTransferDecide))
	})

	t.Run("only admin performs immediate transfers", func(t *testing.T) {
		assert.True(t, gate.Permitted(id.RoleAdmin, OpTransferImmediate))
		assert.False(t, gate.Permitted(id.RoleInvestigator, OpTransferImmediate))
	})

	t.Run("anyone may open a transfer request", func(t *testing.T) {
		for _, role := range []id.Role{id.RoleAdmin, id.RoleInvestigator, id.RoleLabStaff, id.RolePublic} {
			assert.True(t, gate.Permitted(role, OpTransferRequest), "role %s", role)
		}
	})

	t.Run("lab staff updates status but cannot remove evidence", func(t *testing.T) {
		assert.True(t, gate.Permitted(id.RoleLabStaff, OpEvidenceStatusUpdate))
		assert.False(t, gate.Permitted(id.RoleLabStaff, OpEvidenceRemove))
	})

	t.Run("audit trail is admin only", func(t *testing.T) {
		assert.True(t, gate.Permitted(id.RoleAdmin, OpAuditView))
		assert.False(t, gate.Permitted(id.RoleInvestigator, OpAuditView))
		assert.False(t, gate.Permitted(id.RolePublic, OpAuditView))
	})

	t.Run("unknown operation is denied", func(t *testing.T) {
		assert.False(t, gate.Permitted(id.RoleAdmin, Operation("nonsense")))
	})
}
