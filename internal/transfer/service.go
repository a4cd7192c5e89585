package transfer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"custodia/internal/audit"
	"custodia/internal/evidence"
	"custodia/internal/platform/metrics"
	id "custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/requestcontext"
)

// TxRunner executes a unit of work atomically. The transaction travels in
// the context handed to fn; stores join it transparently.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service runs the custody transfer workflow. All composite mutations
// (transfer row, custody fields, audit entry) commit or roll back together.
type Service struct {
	store    Store
	evidence evidence.Store
	audit    audit.Store
	txRunner TxRunner
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewService(
	store Store,
	evidenceStore evidence.Store,
	auditStore audit.Store,
	txRunner TxRunner,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		evidence: evidenceStore,
		audit:    auditStore,
		txRunner: txRunner,
		metrics:  m,
		logger:   logger,
	}
}

// Command carries the participants of a transfer.
type Command struct {
	EvidenceID id.EvidenceID
	FromUser   id.UserID
	ToUser     id.UserID
	Remarks    string
}

func (c Command) validate() error {
	if c.EvidenceID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "evidence id is required")
	}
	if c.FromUser.IsNil() || c.ToUser.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "from and to users are required")
	}
	return nil
}

// ExecuteImmediate performs a transfer decided at creation time. The record
// is born Approved with the caller as the approver, custody moves to the
// recipient, and the approval is audited, all in one transaction.
func (s *Service) ExecuteImmediate(ctx context.Context, cmd Command) (*Request, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	actor := requestcontext.UserID(ctx)
	now := requestcontext.Now(ctx)
	req := &Request{
		ID:          id.TransferID(uuid.New()),
		EvidenceID:  cmd.EvidenceID,
		FromUser:    cmd.FromUser,
		ToUser:      cmd.ToUser,
		Remarks:     cmd.Remarks,
		RequestedAt: now,
		Status:      StatusApproved,
		ApprovedBy:  actor,
		DecidedAt:   &now,
	}

	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Create(ctx, req); err != nil {
			return err
		}
		if err := s.moveCustody(ctx, cmd.EvidenceID, cmd.ToUser); err != nil {
			return err
		}
		return s.audit.Append(ctx, &audit.Entry{
			ActorID:    actor,
			EvidenceID: cmd.EvidenceID,
			Action:     audit.TransferApprovedAction(cmd.FromUser, cmd.ToUser),
			OccurredAt: now,
		})
	})
	if err != nil {
		return nil, translate(err, "execute transfer")
	}

	s.metrics.IncrementTransfersApproved()
	s.logger.InfoContext(ctx, "custody transferred",
		slog.String("transfer_id", req.ID.String()),
		slog.String("evidence_id", cmd.EvidenceID.String()),
		slog.String("to_user", cmd.ToUser.String()))
	return req, nil
}

// OpenRequest records a pending transfer without moving custody. The request
// itself is audited with the requesting holder as the actor.
func (s *Service) OpenRequest(ctx context.Context, cmd Command) (*Request, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	req := &Request{
		ID:          id.TransferID(uuid.New()),
		EvidenceID:  cmd.EvidenceID,
		FromUser:    cmd.FromUser,
		ToUser:      cmd.ToUser,
		Remarks:     cmd.Remarks,
		RequestedAt: now,
		Status:      StatusRequested,
	}

	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Create(ctx, req); err != nil {
			return err
		}
		return s.audit.Append(ctx, &audit.Entry{
			ActorID:    cmd.FromUser,
			EvidenceID: cmd.EvidenceID,
			Action:     audit.TransferRequestAction(cmd.FromUser, cmd.ToUser),
			OccurredAt: now,
		})
	})
	if err != nil {
		return nil, translate(err, "open transfer request")
	}

	s.metrics.IncrementTransfersRequested()
	s.logger.InfoContext(ctx, "transfer requested",
		slog.String("transfer_id", req.ID.String()),
		slog.String("evidence_id", cmd.EvidenceID.String()))
	return req, nil
}

// Decide applies a verdict to a pending transfer. The transfer row is locked
// for the duration of the transaction, so when two deciders race, the first
// commits and the second sees a terminal status and gets a conflict naming
// it. Approval moves custody to the recipient; rejection leaves custody
// untouched. Either way the losing side's transaction writes nothing.
func (s *Service) Decide(ctx context.Context, transferID id.TransferID, decision Decision, remarks string) (*Request, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown decision %q", decision)
	}

	actor := requestcontext.UserID(ctx)
	now := requestcontext.Now(ctx)
	var req *Request

	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		req, err = s.store.GetForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if req.Status.Terminal() {
			return dErrors.Newf(dErrors.CodeConflict, "cannot decide transfer with status %s", req.Status)
		}

		req.ApprovedBy = actor
		if remarks != "" {
			req.DecisionRemarks = remarks
		}
		req.DecidedAt = &now

		if decision == DecisionApprove {
			req.Status = StatusApproved
			if err := s.moveCustody(ctx, req.EvidenceID, req.ToUser); err != nil {
				return err
			}
		} else {
			req.Status = StatusRejected
		}
		if err := s.store.ApplyDecision(ctx, req); err != nil {
			return err
		}

		action := audit.TransferRejectedAction(req.FromUser, req.ToUser)
		if decision == DecisionApprove {
			action = audit.TransferApprovedAction(req.FromUser, req.ToUser)
		}
		return s.audit.Append(ctx, &audit.Entry{
			ActorID:    actor,
			EvidenceID: req.EvidenceID,
			Action:     action,
			OccurredAt: now,
		})
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			s.metrics.IncrementDecisionConflicts()
		}
		return nil, translate(err, "decide transfer")
	}

	if decision == DecisionApprove {
		s.metrics.IncrementTransfersApproved()
	} else {
		s.metrics.IncrementTransfersRejected()
	}
	s.logger.InfoContext(ctx, "transfer decided",
		slog.String("transfer_id", transferID.String()),
		slog.String("decision", string(decision)),
		slog.String("actor", actor.String()))
	return req, nil
}

func (s *Service) Get(ctx context.Context, transferID id.TransferID) (*Request, error) {
	req, err := s.store.FindByID(ctx, transferID)
	if err != nil {
		return nil, translate(err, "load transfer")
	}
	return req, nil
}

func (s *Service) ListByEvidence(ctx context.Context, evidenceID id.EvidenceID) ([]Request, error) {
	requests, err := s.store.ListByEvidence(ctx, evidenceID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list transfers by evidence")
	}
	return requests, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Listing, error) {
	listings, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list transfers")
	}
	return listings, nil
}

// moveCustody hands the item to the recipient and marks it checked in. A
// missing item is reported as such rather than as a missing transfer.
func (s *Service) moveCustody(ctx context.Context, evidenceID id.EvidenceID, to id.UserID) error {
	err := s.evidence.SetCustody(ctx, evidenceID, to, evidence.StatusCheckedIn)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "evidence item not found")
	}
	return err
}

// translate maps store sentinels onto domain errors, passing already-coded
// errors through unchanged.
func translate(err error, msg string) error {
	var coded *dErrors.Error
	if errors.As(err, &coded) {
		return err
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "transfer not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
