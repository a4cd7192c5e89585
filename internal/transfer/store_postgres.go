package transfer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
	txcontext "custodia/pkg/platform/tx"
)

// PostgresStore persists transfers in evidence_transfers.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const selectTransfer = `
	SELECT transfer_id, evidence_id, from_user, to_user, COALESCE(remarks, ''),
	       requested_at, status, approved_by, COALESCE(decision_remarks, ''),
	       decision_at
	FROM evidence_transfers
`

func (s *PostgresStore) Create(ctx context.Context, req *Request) error {
	query := `
		INSERT INTO evidence_transfers (
			transfer_id, evidence_id, from_user, to_user, remarks,
			requested_at, status, approved_by, decision_remarks, decision_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(req.ID),
		uuid.UUID(req.EvidenceID),
		uuid.UUID(req.FromUser),
		uuid.UUID(req.ToUser),
		nullString(req.Remarks),
		req.RequestedAt,
		string(req.Status),
		nullUser(req.ApprovedBy),
		nullString(req.DecisionRemarks),
		req.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, transferID id.TransferID) (*Request, error) {
	query := selectTransfer + ` WHERE transfer_id = $1`
	return s.queryOne(ctx, query, uuid.UUID(transferID))
}

// GetForUpdate takes an exclusive row lock on the transfer. The caller must
// hold an open transaction in the context or the lock is released
// immediately on return.
func (s *PostgresStore) GetForUpdate(ctx context.Context, transferID id.TransferID) (*Request, error) {
	query := selectTransfer + ` WHERE transfer_id = $1 FOR UPDATE`
	return s.queryOne(ctx, query, uuid.UUID(transferID))
}

func (s *PostgresStore) queryOne(ctx context.Context, query string, args ...any) (*Request, error) {
	row := s.execer(ctx).QueryRowContext(ctx, query, args...)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query transfer: %w", err)
	}
	return req, nil
}

func (s *PostgresStore) ApplyDecision(ctx context.Context, req *Request) error {
	query := `
		UPDATE evidence_transfers
		SET status = $2, approved_by = $3, decision_remarks = $4, decision_at = $5
		WHERE transfer_id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(req.ID),
		string(req.Status),
		nullUser(req.ApprovedBy),
		nullString(req.DecisionRemarks),
		req.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer decision: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByEvidence(ctx context.Context, evidenceID id.EvidenceID) ([]Request, error) {
	query := selectTransfer + ` WHERE evidence_id = $1 ORDER BY requested_at ASC`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(evidenceID))
	if err != nil {
		return nil, fmt.Errorf("query transfers by evidence: %w", err)
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfers: %w", err)
	}
	return requests, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Listing, error) {
	query := `
		SELECT t.transfer_id, t.evidence_id, t.from_user, t.to_user,
		       COALESCE(fu.name, ''), COALESCE(tu.name, ''),
		       COALESCE(t.remarks, ''), t.requested_at, t.status
		FROM evidence_transfers t
		LEFT JOIN people fu ON fu.user_id = t.from_user
		LEFT JOIN people tu ON tu.user_id = t.to_user
		ORDER BY t.requested_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query transfer listings: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		var (
			l                      Listing
			transferUUID, evidence uuid.UUID
			fromUUID, toUUID       uuid.UUID
			status                 string
		)
		err := rows.Scan(&transferUUID, &evidence, &fromUUID, &toUUID,
			&l.FromUserName, &l.ToUserName, &l.Remarks, &l.RequestedAt, &status)
		if err != nil {
			return nil, fmt.Errorf("scan transfer listing: %w", err)
		}
		l.ID = id.TransferID(transferUUID)
		l.EvidenceID = id.EvidenceID(evidence)
		l.FromUser = id.UserID(fromUUID)
		l.ToUser = id.UserID(toUUID)
		l.Status = Status(status)
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer listings: %w", err)
	}
	return listings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*Request, error) {
	var (
		req                    Request
		transferUUID, evidence uuid.UUID
		fromUUID, toUUID       uuid.UUID
		approvedBy             *uuid.UUID
		status                 string
	)
	err := row.Scan(&transferUUID, &evidence, &fromUUID, &toUUID, &req.Remarks,
		&req.RequestedAt, &status, &approvedBy, &req.DecisionRemarks, &req.DecidedAt)
	if err != nil {
		return nil, err
	}
	req.ID = id.TransferID(transferUUID)
	req.EvidenceID = id.EvidenceID(evidence)
	req.FromUser = id.UserID(fromUUID)
	req.ToUser = id.UserID(toUUID)
	req.Status = Status(status)
	if approvedBy != nil {
		req.ApprovedBy = id.UserID(*approvedBy)
	}
	return &req, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullUser(userID id.UserID) *uuid.UUID {
	if userID.IsNil() {
		return nil
	}
	raw := uuid.UUID(userID)
	return &raw
}
