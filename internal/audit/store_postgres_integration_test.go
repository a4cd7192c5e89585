//go:build integration

package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"custodia/internal/audit"
	id "custodia/pkg/domain"
	"custodia/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *audit.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = audit.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "audit_log")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) append(actor id.UserID, evidenceID id.EvidenceID, action string, at time.Time) *audit.Entry {
	entry := &audit.Entry{
		ActorID:    actor,
		EvidenceID: evidenceID,
		Action:     action,
		OccurredAt: at,
	}
	s.Require().NoError(s.store.Append(context.Background(), entry))
	return entry
}

func (s *PostgresStoreSuite) TestAppendAssignsMonotonicLogIDs() {
	evidenceID := id.EvidenceID(uuid.New())
	now := time.Now()

	first := s.append(id.UserID(uuid.New()), evidenceID, audit.StatusAction("Collected"), now)
	second := s.append(id.UserID(uuid.New()), evidenceID, audit.StatusAction("Checked In"), now)

	s.Positive(first.LogID)
	s.Greater(second.LogID, first.LogID)
}

func (s *PostgresStoreSuite) TestNilActorRoundTrips() {
	evidenceID := id.EvidenceID(uuid.New())
	s.append(id.UserID{}, evidenceID, audit.StatusAction("Collected"), time.Now())

	entries, err := s.store.ListByEvidence(context.Background(), evidenceID, audit.OrderAsc)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.True(entries[0].ActorID.IsNil())
}

func (s *PostgresStoreSuite) TestListByEvidenceOrdering() {
	evidenceID := id.EvidenceID(uuid.New())
	actor := id.UserID(uuid.New())
	base := time.Now().Add(-time.Hour)

	s.append(actor, evidenceID, audit.StatusAction("Collected"), base)
	s.append(actor, evidenceID, audit.StatusAction("Checked In"), base.Add(time.Minute))
	s.append(actor, id.EvidenceID(uuid.New()), audit.StatusAction("Archived"), base)

	ctx := context.Background()

	asc, err := s.store.ListByEvidence(ctx, evidenceID, audit.OrderAsc)
	s.Require().NoError(err)
	s.Require().Len(asc, 2)
	s.Equal("STATUS:Collected", asc[0].Action)
	s.Equal("STATUS:Checked In", asc[1].Action)

	desc, err := s.store.ListByEvidence(ctx, evidenceID, audit.OrderDesc)
	s.Require().NoError(err)
	s.Require().Len(desc, 2)
	s.Equal("STATUS:Checked In", desc[0].Action)
}

func (s *PostgresStoreSuite) TestListByActor() {
	actor := id.UserID(uuid.New())
	other := id.UserID(uuid.New())
	now := time.Now()

	s.append(actor, id.EvidenceID(uuid.New()), audit.StatusAction("Collected"), now)
	s.append(actor, id.EvidenceID(uuid.New()), audit.StatusAction("Archived"), now.Add(time.Second))
	s.append(other, id.EvidenceID(uuid.New()), audit.StatusAction("Collected"), now)

	entries, err := s.store.ListByActor(context.Background(), actor, audit.OrderAsc)
	s.Require().NoError(err)
	s.Len(entries, 2)
	for _, entry := range entries {
		s.Equal(actor, entry.ActorID)
	}
}

func (s *PostgresStoreSuite) TestListByEvidenceActions() {
	evidenceID := id.EvidenceID(uuid.New())
	actor := id.UserID(uuid.New())
	from := id.UserID(uuid.New())
	to := id.UserID(uuid.New())
	base := time.Now().Add(-time.Hour)

	s.append(actor, evidenceID, audit.StatusAction("Collected"), base)
	s.append(from, evidenceID, audit.TransferRequestAction(from, to), base.Add(time.Minute))
	s.append(actor, evidenceID, audit.TransferApprovedAction(from, to), base.Add(2*time.Minute))

	entries, err := s.store.ListByEvidenceActions(context.Background(), evidenceID, []string{
		audit.TransferRequestAction(from, to),
		audit.TransferApprovedAction(from, to),
	})
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(audit.TransferRequestAction(from, to), entries[0].Action)
	s.Equal(audit.TransferApprovedAction(from, to), entries[1].Action)
}
