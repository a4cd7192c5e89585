package evidence

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"custodia/internal/audit"
	"custodia/internal/platform/blob"
	id "custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	txpkg "custodia/pkg/platform/tx"
	"custodia/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	store   *InMemoryStore
	storage *InMemoryStorageStore
	audits  *audit.InMemoryStore
	blobs   *blob.InMemory
	svc     *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.storage = NewInMemoryStorageStore()
	s.audits = audit.NewInMemoryStore()
	s.blobs = blob.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = NewService(s.store, s.storage, s.audits, s.blobs, nil,
		txpkg.NewInMemoryRunner(), nil, logger)
}

func (s *ServiceSuite) seedItem(status string) *Item {
	item := &Item{
		ID:            id.EvidenceID(uuid.New()),
		CaseID:        id.CaseID(uuid.New()),
		EvidenceType:  "Hard Drive",
		CurrentStatus: status,
		CollectedOn:   time.Now(),
	}
	s.Require().NoError(s.store.Create(context.Background(), item))
	return item
}

func (s *ServiceSuite) TestIntakeCreatesItem() {
	collector := id.UserID(uuid.New())
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	item, err := s.svc.Intake(ctx, IntakeCommand{
		CaseID:       id.CaseID(uuid.New()),
		EvidenceType: "Laptop",
		Description:  "seized from suspect vehicle",
		CollectedBy:  collector,
		StorageName:  "Locker A3",
		File: &FileUpload{
			Name:        "photo.jpg",
			ContentType: "image/jpeg",
			Body:        strings.NewReader("jpeg-bytes"),
		},
	})
	s.Require().NoError(err)

	s.Equal(StatusCollected, item.CurrentStatus)
	s.Equal(collector, item.CurrentCustodianID)
	s.Equal(now, item.CollectedOn)
	s.False(item.StorageID.IsNil())

	data, ok := s.blobs.Get(item.FileKey)
	s.Require().True(ok)
	s.Equal("jpeg-bytes", string(data))

	stored, err := s.store.FindByID(context.Background(), item.ID)
	s.Require().NoError(err)
	s.Equal(item.ID, stored.ID)
}

func (s *ServiceSuite) TestIntakeRequiresCaseAndType() {
	_, err := s.svc.Intake(context.Background(), IntakeCommand{EvidenceType: "Laptop"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.svc.Intake(context.Background(), IntakeCommand{CaseID: id.CaseID(uuid.New())})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestIntakeReusesStorageLocation() {
	first, err := s.svc.Intake(context.Background(), IntakeCommand{
		CaseID: id.CaseID(uuid.New()), EvidenceType: "Phone", StorageName: "Vault 1",
	})
	s.Require().NoError(err)

	second, err := s.svc.Intake(context.Background(), IntakeCommand{
		CaseID: id.CaseID(uuid.New()), EvidenceType: "Phone", StorageName: "Vault 1",
	})
	s.Require().NoError(err)

	s.Equal(first.StorageID, second.StorageID)
}

func (s *ServiceSuite) TestSetStatusAppendsAuditEntry() {
	item := s.seedItem(StatusCollected)
	actor := id.UserID(uuid.New())
	ctx := requestcontext.WithUserID(context.Background(), actor)

	s.Require().NoError(s.svc.SetStatus(ctx, item.ID, StatusArchived))

	updated, err := s.store.FindByID(context.Background(), item.ID)
	s.Require().NoError(err)
	s.Equal(StatusArchived, updated.CurrentStatus)

	entries := s.audits.All()
	s.Require().Len(entries, 1)
	s.Equal("STATUS:Archived", entries[0].Action)
	s.Equal(actor, entries[0].ActorID)
	s.Equal(item.ID, entries[0].EvidenceID)
}

func (s *ServiceSuite) TestSetStatusAcceptsAdHocStatus() {
	item := s.seedItem(StatusCheckedIn)
	s.Require().NoError(s.svc.SetStatus(context.Background(), item.ID, "Awaiting Court Order"))

	updated, err := s.store.FindByID(context.Background(), item.ID)
	s.Require().NoError(err)
	s.Equal("Awaiting Court Order", updated.CurrentStatus)
}

func (s *ServiceSuite) TestSetStatusUnknownItem() {
	err := s.svc.SetStatus(context.Background(), id.EvidenceID(uuid.New()), StatusArchived)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Empty(s.audits.All())
}

func (s *ServiceSuite) TestSetStatusRejectsEmpty() {
	item := s.seedItem(StatusCollected)
	err := s.svc.SetStatus(context.Background(), item.ID, "")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestSetStatusFailedAuditSurfaces() {
	item := s.seedItem(StatusCollected)
	s.audits.FailAppends = io.ErrUnexpectedEOF

	err := s.svc.SetStatus(context.Background(), item.ID, StatusArchived)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Empty(s.audits.All())
}

func (s *ServiceSuite) TestRemoveRefusedWhileUnderAnalysis() {
	item := s.seedItem(StatusUnderAnalysis)

	err := s.svc.Remove(context.Background(), item.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.store.FindByID(context.Background(), item.ID)
	s.NoError(err)
}

func (s *ServiceSuite) TestRemoveDeletesItemAndBlob() {
	ctx := context.Background()
	item, err := s.svc.Intake(ctx, IntakeCommand{
		CaseID:       id.CaseID(uuid.New()),
		EvidenceType: "USB Stick",
		File:         &FileUpload{Name: "dump.bin", Body: strings.NewReader("bits")},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Remove(ctx, item.ID))

	_, err = s.store.FindByID(ctx, item.ID)
	s.Error(err)
	s.Zero(s.blobs.Len())
}

func (s *ServiceSuite) TestRemoveSurvivesBlobDeleteFailure() {
	ctx := context.Background()
	item, err := s.svc.Intake(ctx, IntakeCommand{
		CaseID:       id.CaseID(uuid.New()),
		EvidenceType: "USB Stick",
		File:         &FileUpload{Name: "dump.bin", Body: strings.NewReader("bits")},
	})
	s.Require().NoError(err)

	s.blobs.FailDeletes = true
	s.Require().NoError(s.svc.Remove(ctx, item.ID))

	_, findErr := s.store.FindByID(ctx, item.ID)
	s.Error(findErr)
}

func (s *ServiceSuite) TestListPublicFallsThroughWithoutCache() {
	s.seedItem(StatusCollected)
	s.seedItem(StatusCheckedIn)

	listings, err := s.svc.ListPublic(context.Background())
	s.Require().NoError(err)
	s.Len(listings, 2)
}
