package report

import (
	"context"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"custodia/internal/evidence"
	"custodia/internal/identity"
	"custodia/internal/platform/blob"
	id "custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/requestcontext"
)

// recentListingLimit caps the public reports endpoint.
const recentListingLimit = 200

// analystFallbackRoles orders the last-resort analyst attribution.
var analystFallbackRoles = []id.Role{id.RoleLabStaff, id.RoleAdmin, id.RoleInvestigator}

// Service implements analysis report recording.
type Service struct {
	store    Store
	people   identity.Store
	evidence evidence.Store
	blobs    blob.Store
	logger   *slog.Logger
}

func NewService(store Store, people identity.Store, evidenceStore evidence.Store, blobs blob.Store, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		people:   people,
		evidence: evidenceStore,
		blobs:    blobs,
		logger:   logger,
	}
}

// CreateCommand records a report. Analyst carries identifying hints for
// unauthenticated submissions; authenticated callers are attributed
// directly.
type CreateCommand struct {
	EvidenceID id.EvidenceID
	Findings   string
	Analyst    identity.Lookup
	File       *Attachment
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Report, error) {
	if cmd.EvidenceID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "evidence id is required")
	}
	if cmd.Findings == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "findings are required")
	}

	r := &Report{
		ID:         id.ReportID(uuid.New()),
		EvidenceID: cmd.EvidenceID,
		AnalystID:  s.resolveAnalyst(ctx, cmd),
		Findings:   cmd.Findings,
		CreatedAt:  requestcontext.Now(ctx),
	}

	if cmd.File != nil {
		key := path.Join("reports", r.ID.String(), cmd.File.Name)
		if err := s.blobs.Put(ctx, key, cmd.File.Body, cmd.File.ContentType); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store report file")
		}
		r.ReportKey = key
	}

	if err := s.store.Create(ctx, r); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create report")
	}

	s.logger.InfoContext(ctx, "analysis report recorded",
		slog.String("report_id", r.ID.String()),
		slog.String("evidence_id", r.EvidenceID.String()))
	return r, nil
}

// resolveAnalyst attributes the report. Authenticated callers win; after
// that the hints are tried in order, then the item's custodian and
// collector, and finally any staff member by role preference. Attribution
// is best effort and a nil analyst is acceptable.
func (s *Service) resolveAnalyst(ctx context.Context, cmd CreateCommand) id.UserID {
	if actor := requestcontext.UserID(ctx); !actor.IsNil() {
		return actor
	}

	if cmd.Analyst.Email != "" {
		if person, err := s.people.FindByEmail(ctx, cmd.Analyst.Email); err == nil {
			return person.ID
		}
	}
	if cmd.Analyst.Badge != "" {
		if person, err := s.people.FindByBadge(ctx, cmd.Analyst.Badge); err == nil {
			return person.ID
		}
	}
	if cmd.Analyst.Name != "" {
		if person, err := s.people.FindByName(ctx, cmd.Analyst.Name); err == nil {
			return person.ID
		}
	}

	if item, err := s.evidence.FindByID(ctx, cmd.EvidenceID); err == nil {
		if !item.CurrentCustodianID.IsNil() {
			return item.CurrentCustodianID
		}
		if !item.CollectedBy.IsNil() {
			return item.CollectedBy
		}
	}

	if person, err := s.people.FindFirstByRoles(ctx, analystFallbackRoles); err == nil {
		return person.ID
	}
	return id.UserID{}
}

func (s *Service) ListByEvidence(ctx context.Context, evidenceID id.EvidenceID) ([]Report, error) {
	reports, err := s.store.ListByEvidence(ctx, evidenceID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list reports by evidence")
	}
	return reports, nil
}

func (s *Service) ListRecent(ctx context.Context) ([]Listing, error) {
	listings, err := s.store.ListRecent(ctx, recentListingLimit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list recent reports")
	}
	return listings, nil
}
