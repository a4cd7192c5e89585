package evidence

import (
	"context"
	"errors"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"custodia/internal/audit"
	"custodia/internal/platform/blob"
	"custodia/internal/platform/metrics"
	id "custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/requestcontext"
)

// publicListingLimit caps the unauthenticated listing endpoint.
const publicListingLimit = 200

// TxRunner executes a unit of work atomically. The transaction travels in
// the context handed to fn; stores join it transparently.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the evidence lifecycle.
type Service struct {
	store    Store
	storage  StorageStore
	audit    audit.Store
	blobs    blob.Store
	cache    *ListingCache
	txRunner TxRunner
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewService(
	store Store,
	storage StorageStore,
	auditStore audit.Store,
	blobs blob.Store,
	cache *ListingCache,
	txRunner TxRunner,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		storage:  storage,
		audit:    auditStore,
		blobs:    blobs,
		cache:    cache,
		txRunner: txRunner,
		metrics:  m,
		logger:   logger,
	}
}

// Intake takes a new item into custody. The collector, when known, becomes
// the initial custodian.
func (s *Service) Intake(ctx context.Context, cmd IntakeCommand) (*Item, error) {
	if cmd.CaseID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "case id is required")
	}
	if cmd.EvidenceType == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "evidence type is required")
	}

	item := &Item{
		ID:                 id.EvidenceID(uuid.New()),
		CaseID:             cmd.CaseID,
		EvidenceType:       cmd.EvidenceType,
		Description:        cmd.Description,
		CollectedBy:        cmd.CollectedBy,
		CurrentCustodianID: cmd.CollectedBy,
		CurrentStatus:      StatusCollected,
		CollectedOn:        requestcontext.Now(ctx),
	}

	if cmd.StorageName != "" {
		storageID, err := s.storage.FindOrCreate(ctx, cmd.StorageName)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve storage location")
		}
		item.StorageID = storageID
	}

	if cmd.File != nil {
		key := path.Join("evidence", item.ID.String(), cmd.File.Name)
		if err := s.blobs.Put(ctx, key, cmd.File.Body, cmd.File.ContentType); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store evidence file")
		}
		item.FileKey = key
	}

	if err := s.store.Create(ctx, item); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create evidence item")
	}

	s.metrics.IncrementEvidenceIntakes()
	s.invalidateListings(ctx)
	s.logger.InfoContext(ctx, "evidence taken into custody",
		slog.String("evidence_id", item.ID.String()),
		slog.String("case_id", item.CaseID.String()))
	return item, nil
}

func (s *Service) Get(ctx context.Context, evidenceID id.EvidenceID) (*Item, error) {
	item, err := s.store.FindByID(ctx, evidenceID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "evidence item not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load evidence item")
	}
	return item, nil
}

func (s *Service) ListByCase(ctx context.Context, caseID id.CaseID) ([]Item, error) {
	items, err := s.store.ListByCase(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list evidence by case")
	}
	return items, nil
}

// ListPublic serves the unauthenticated recent-evidence listing through the
// read-through cache.
func (s *Service) ListPublic(ctx context.Context) ([]Listing, error) {
	cached, hit, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "listing cache read failed", slog.String("error", err.Error()))
	}
	if hit {
		return cached, nil
	}

	listings, err := s.store.ListRecent(ctx, publicListingLimit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list recent evidence")
	}
	if err := s.cache.Set(ctx, listings); err != nil {
		s.logger.WarnContext(ctx, "listing cache write failed", slog.String("error", err.Error()))
	}
	return listings, nil
}

// SetStatus updates the lifecycle status and appends the matching audit
// entry in the same transaction. Any non-empty status is accepted.
func (s *Service) SetStatus(ctx context.Context, evidenceID id.EvidenceID, status string) error {
	if status == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}

	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.UpdateStatus(ctx, evidenceID, status); err != nil {
			return err
		}
		return s.audit.Append(ctx, &audit.Entry{
			ActorID:    requestcontext.UserID(ctx),
			EvidenceID: evidenceID,
			Action:     audit.StatusAction(status),
			OccurredAt: requestcontext.Now(ctx),
		})
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "evidence item not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "update evidence status")
	}

	s.invalidateListings(ctx)
	s.logger.InfoContext(ctx, "evidence status updated",
		slog.String("evidence_id", evidenceID.String()),
		slog.String("status", status))
	return nil
}

// Remove deletes an item from custody. Items under analysis are held: the
// delete is refused until the analysis hold clears. The database row is the
// source of truth; the blob delete afterwards is best effort and a failure
// only logs.
func (s *Service) Remove(ctx context.Context, evidenceID id.EvidenceID) error {
	item, err := s.store.FindByID(ctx, evidenceID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "evidence item not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "load evidence item")
	}
	if item.CurrentStatus == StatusUnderAnalysis {
		return dErrors.New(dErrors.CodeConflict, "evidence item is under analysis and cannot be deleted")
	}

	if err := s.store.Delete(ctx, evidenceID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "evidence item not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete evidence item")
	}

	if item.FileKey != "" {
		if err := s.blobs.Delete(ctx, item.FileKey); err != nil {
			s.logger.WarnContext(ctx, "evidence file delete failed",
				slog.String("evidence_id", evidenceID.String()),
				slog.String("file_key", item.FileKey),
				slog.String("error", err.Error()))
		}
	}

	s.metrics.IncrementEvidenceRemovals()
	s.invalidateListings(ctx)
	s.logger.InfoContext(ctx, "evidence removed from custody",
		slog.String("evidence_id", evidenceID.String()))
	return nil
}

func (s *Service) invalidateListings(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "listing cache invalidation failed", slog.String("error", err.Error()))
	}
}
