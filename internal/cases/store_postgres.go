package cases

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

// PostgresStore persists cases in the cases table.
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

const selectCase = `
	SELECT case_id, case_number, case_title, COALESCE(description, ''),
	       assigned_to, status, created_at
	FROM cases
`

func (s *PostgresStore) Create(ctx context.Context, c *Case) error {
	query := `
		INSERT INTO cases (case_id, case_number, case_title, description, assigned_to, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var description *string
	if c.Description != "" {
		description = &c.Description
	}
	var assignedTo *uuid.UUID
	if !c.AssignedTo.IsNil() {
		raw := uuid.UUID(c.AssignedTo)
		assignedTo = &raw
	}
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(c.ID), c.CaseNumber, c.Title, description, assignedTo, c.Status, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, caseID id.CaseID) (*Case, error) {
	query := selectCase + ` WHERE case_id = $1`
	row := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(caseID))
	c, err := scanCase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query case: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Case, error) {
	query := selectCase + ` ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}
	defer rows.Close()

	var out []Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cases: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, caseID id.CaseID, status string) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE cases SET status = $2 WHERE case_id = $1`, uuid.UUID(caseID), status)
	if err != nil {
		return fmt.Errorf("update case status: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*Case, error) {
	var (
		c          Case
		caseUUID   uuid.UUID
		assignedTo *uuid.UUID
	)
	err := row.Scan(&caseUUID, &c.CaseNumber, &c.Title, &c.Description,
		&assignedTo, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ID = id.CaseID(caseUUID)
	if assignedTo != nil {
		c.AssignedTo = id.UserID(*assignedTo)
	}
	return &c, nil
}
