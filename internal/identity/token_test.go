package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "custodia/pkg/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-signing-key")
	userID := id.UserID(uuid.New())

	token, err := svc.Issue(userID, id.RoleInvestigator, time.Hour)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, id.RoleInvestigator, claims.Role)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-signing-key")

	token, err := svc.Issue(id.UserID(uuid.New()), id.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	token, err := NewTokenService("key-a").Issue(id.UserID(uuid.New()), id.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenService("key-b").Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	svc := NewTokenService("test-signing-key")

	// Public is not a role a person record may carry; a token claiming it is
	// malformed.
	token, err := svc.Issue(id.UserID(uuid.New()), id.RolePublic, time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestDirectoryResolveOrder(t *testing.T) {
	store := NewInMemoryStore()
	directory := NewDirectory(store)
	ctx := context.Background()

	byEmail := &Person{ID: id.UserID(uuid.New()), Name: "Dana Cruz", Email: "dana@agency.example", Role: id.RoleInvestigator}
	byBadge := &Person{ID: id.UserID(uuid.New()), Name: "Dana Cruz", Email: "d.cruz@agency.example", BadgeNumber: "B-104", Role: id.RoleLabStaff}
	require.NoError(t, store.Create(ctx, byEmail))
	require.NoError(t, store.Create(ctx, byBadge))

	t.Run("email wins over badge and name", func(t *testing.T) {
		person, err := directory.Resolve(ctx, Lookup{Email: "dana@agency.example", Badge: "B-104", Name: "Dana Cruz"})
		require.NoError(t, err)
		assert.Equal(t, byEmail.ID, person.ID)
	})

	t.Run("badge used when email misses", func(t *testing.T) {
		person, err := directory.Resolve(ctx, Lookup{Email: "nobody@agency.example", Badge: "B-104"})
		require.NoError(t, err)
		assert.Equal(t, byBadge.ID, person.ID)
	})

	t.Run("unresolvable lookup is a validation error", func(t *testing.T) {
		_, err := directory.Resolve(ctx, Lookup{Email: "nobody@agency.example"})
		require.Error(t, err)
	})

	t.Run("empty lookup is a validation error", func(t *testing.T) {
		_, err := directory.Resolve(ctx, Lookup{})
		require.Error(t, err)
	})
}
