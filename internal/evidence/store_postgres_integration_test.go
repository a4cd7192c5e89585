//go:build integration

package evidence_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"custodia/internal/cases"
	"custodia/internal/evidence"
	"custodia/internal/identity"
	id "custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *evidence.PostgresStore
	storage  *evidence.PostgresStorageStore
	people   *identity.PostgresStore
	cases    *cases.PostgresStore

	collector *identity.Person
	caseID    id.CaseID
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
	s.store = evidence.NewPostgres(s.postgres.DB)
	s.storage = evidence.NewPostgresStorage(s.postgres.DB)
	s.people = identity.NewPostgres(s.postgres.DB)
	s.cases = cases.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx,
		"audit_log", "evidence_items", "storage_locations", "cases", "people")
	s.Require().NoError(err)

	s.collector = &identity.Person{
		ID:        id.UserID(uuid.New()),
		Name:      "Dana Reyes",
		Email:     uuid.NewString() + "@pd.example",
		Role:      id.RoleInvestigator,
		CreatedAt: time.Now(),
	}
	s.Require().NoError(s.people.Create(ctx, s.collector))

	s.caseID = id.CaseID(uuid.New())
	s.Require().NoError(s.cases.Create(ctx, &cases.Case{
		ID:         s.caseID,
		CaseNumber: cases.CaseNumberFor(s.caseID),
		Title:      "Warehouse burglary",
		Status:     cases.StatusOpen,
		CreatedAt:  time.Now(),
	}))
}

func (s *PostgresStoreSuite) newItem() *evidence.Item {
	item := &evidence.Item{
		ID:                 id.EvidenceID(uuid.New()),
		CaseID:             s.caseID,
		EvidenceType:       "Hard Drive",
		Description:        "seized at scene",
		CollectedBy:        s.collector.ID,
		CurrentCustodianID: s.collector.ID,
		CurrentStatus:      evidence.StatusCollected,
		CollectedOn:        time.Now(),
	}
	s.Require().NoError(s.store.Create(context.Background(), item))
	return item
}

func (s *PostgresStoreSuite) TestCreateAndFindRoundTrip() {
	ctx := context.Background()

	storageID, err := s.storage.FindOrCreate(ctx, "Locker A3")
	s.Require().NoError(err)

	item := &evidence.Item{
		ID:            id.EvidenceID(uuid.New()),
		CaseID:        s.caseID,
		EvidenceType:  "SD Card",
		CollectedBy:   s.collector.ID,
		StorageID:     storageID,
		CurrentStatus: evidence.StatusCollected,
		CollectedOn:   time.Now(),
		FileKey:       "evidence/abc/image.dd",
	}
	s.Require().NoError(s.store.Create(ctx, item))

	found, err := s.store.FindByID(ctx, item.ID)
	s.Require().NoError(err)
	s.Equal(item.ID, found.ID)
	s.Equal(s.caseID, found.CaseID)
	s.Equal("SD Card", found.EvidenceType)
	s.Equal(s.collector.ID, found.CollectedBy)
	s.Equal(storageID, found.StorageID)
	s.Equal("evidence/abc/image.dd", found.FileKey)
}

func (s *PostgresStoreSuite) TestUpdateStatusMissingItem() {
	err := s.store.UpdateStatus(context.Background(), id.EvidenceID(uuid.New()), evidence.StatusArchived)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestSetCustody() {
	ctx := context.Background()
	item := s.newItem()
	recipient := &identity.Person{
		ID:        id.UserID(uuid.New()),
		Name:      "Lee Osei",
		Email:     uuid.NewString() + "@pd.example",
		Role:      id.RoleLabStaff,
		CreatedAt: time.Now(),
	}
	s.Require().NoError(s.people.Create(ctx, recipient))

	err := s.store.SetCustody(ctx, item.ID, recipient.ID, evidence.StatusCheckedIn)
	s.Require().NoError(err)

	found, err := s.store.FindByID(ctx, item.ID)
	s.Require().NoError(err)
	s.Equal(recipient.ID, found.CurrentCustodianID)
	s.Equal(evidence.StatusCheckedIn, found.CurrentStatus)
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()
	item := s.newItem()

	s.Require().NoError(s.store.Delete(ctx, item.ID))

	_, err := s.store.FindByID(ctx, item.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	err = s.store.Delete(ctx, item.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListByCase() {
	ctx := context.Background()
	s.newItem()
	s.newItem()

	items, err := s.store.ListByCase(ctx, s.caseID)
	s.Require().NoError(err)
	s.Len(items, 2)

	none, err := s.store.ListByCase(ctx, id.CaseID(uuid.New()))
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *PostgresStoreSuite) TestListRecentJoinsDisplayNames() {
	ctx := context.Background()

	storageID, err := s.storage.FindOrCreate(ctx, "Vault 2")
	s.Require().NoError(err)

	item := s.newItem()
	item.ID = id.EvidenceID(uuid.New())
	item.StorageID = storageID
	s.Require().NoError(s.store.Create(ctx, item))

	listings, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(listings, 2)

	var withStorage *evidence.Listing
	for i := range listings {
		if listings[i].ID == item.ID {
			withStorage = &listings[i]
		}
	}
	s.Require().NotNil(withStorage)
	s.Equal("Dana Reyes", withStorage.CollectedByName)
	s.Equal("Dana Reyes", withStorage.CustodianName)
	s.Equal("Vault 2", withStorage.StorageName)
}

func (s *PostgresStoreSuite) TestListRecentHonorsLimit() {
	for i := 0; i < 5; i++ {
		s.newItem()
	}

	listings, err := s.store.ListRecent(context.Background(), 3)
	s.Require().NoError(err)
	s.Len(listings, 3)
}

// TestStorageFindOrCreateConcurrent verifies the upsert collapses racing
// lookups of the same name onto one row.
func (s *PostgresStoreSuite) TestStorageFindOrCreateConcurrent() {
	ctx := context.Background()
	const callers = 20

	var wg sync.WaitGroup
	ids := make([]id.StorageID, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			ids[idx], errs[idx] = s.storage.FindOrCreate(ctx, "Locker A3")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		s.Require().NoError(errs[i])
		s.Equal(ids[0], ids[i])
	}

	var count int
	err := s.postgres.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM storage_locations WHERE name = $1`, "Locker A3").Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}
