package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "custodia/pkg/domain-errors"
)

// TestParseIDInvariants validates the trust-boundary rule shared by all ID
// parsers: valid, non-empty, non-nil UUIDs only.
func TestParseIDInvariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseEvidenceID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, raw := range []string{
			"not-a-uuid",
			"550e8400-e29b-41d4-a716",
			strings.Repeat("a", 36),
		} {
			_, err := ParseTransferID(raw)
			assert.Error(t, err, "input %q", raw)
		}
	})

	t.Run("rejects the nil UUID", func(t *testing.T) {
		_, err := ParseUserID("00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts a valid UUID", func(t *testing.T) {
		raw := uuid.NewString()
		parsed, err := ParseCaseID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, parsed.String())
		assert.False(t, parsed.IsNil())
	})

	t.Run("error message names the field", func(t *testing.T) {
		_, err := ParseStorageID("")
		require.Error(t, err)
		assert.Contains(t, dErrors.MessageOf(err), "storage id")
	})
}

func TestIsNil(t *testing.T) {
	assert.True(t, UserID{}.IsNil())
	assert.True(t, EvidenceID(uuid.Nil).IsNil())
	assert.False(t, ReportID(uuid.New()).IsNil())
}

func TestRoleKnown(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleInvestigator, RoleLabStaff} {
		assert.True(t, role.Known(), "role %s", role)
	}
	assert.False(t, RolePublic.Known())
	assert.False(t, Role("Janitor").Known())
}
