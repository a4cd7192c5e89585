package cases

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"custodia/internal/evidence"
	id "custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/requestcontext"
)

// Service implements case management.
type Service struct {
	store    Store
	evidence evidence.Store
	logger   *slog.Logger
}

func NewService(store Store, evidenceStore evidence.Store, logger *slog.Logger) *Service {
	return &Service{store: store, evidence: evidenceStore, logger: logger}
}

// CreateCommand opens a new case.
type CreateCommand struct {
	Title       string
	Description string
	AssignedTo  id.UserID // may be nil
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Case, error) {
	if cmd.Title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "case title is required")
	}

	caseID := id.CaseID(uuid.New())
	c := &Case{
		ID:          caseID,
		CaseNumber:  CaseNumberFor(caseID),
		Title:       cmd.Title,
		Description: cmd.Description,
		AssignedTo:  cmd.AssignedTo,
		Status:      StatusOpen,
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create case")
	}

	s.logger.InfoContext(ctx, "case opened",
		slog.String("case_id", c.ID.String()),
		slog.String("case_number", c.CaseNumber))
	return c, nil
}

// Detail is a case together with its evidence.
type Detail struct {
	Case     Case
	Evidence []evidence.Item
}

func (s *Service) Get(ctx context.Context, caseID id.CaseID) (*Detail, error) {
	c, err := s.store.FindByID(ctx, caseID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "case not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load case")
	}

	items, err := s.evidence.ListByCase(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list case evidence")
	}
	return &Detail{Case: *c, Evidence: items}, nil
}

func (s *Service) List(ctx context.Context) ([]Case, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list cases")
	}
	return out, nil
}

func (s *Service) SetStatus(ctx context.Context, caseID id.CaseID, status string) error {
	if status == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	err := s.store.UpdateStatus(ctx, caseID, status)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "case not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "update case status")
	}
	s.logger.InfoContext(ctx, "case status updated",
		slog.String("case_id", caseID.String()),
		slog.String("status", status))
	return nil
}
