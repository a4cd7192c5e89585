package report

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "custodia/pkg/domain"
	txcontext "custodia/pkg/platform/tx"
)

// PostgresStore persists reports in analysis_reports.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, r *Report) error {
	query := `
		INSERT INTO analysis_reports (report_id, evidence_id, analyst_id, findings, report_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var analystID *uuid.UUID
	if !r.AnalystID.IsNil() {
		raw := uuid.UUID(r.AnalystID)
		analystID = &raw
	}
	var reportKey *string
	if r.ReportKey != "" {
		reportKey = &r.ReportKey
	}
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(r.ID), uuid.UUID(r.EvidenceID), analystID, r.Findings, reportKey, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByEvidence(ctx context.Context, evidenceID id.EvidenceID) ([]Report, error) {
	query := `
		SELECT report_id, evidence_id, analyst_id, findings, COALESCE(report_key, ''), created_at
		FROM analysis_reports
		WHERE evidence_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(evidenceID))
	if err != nil {
		return nil, fmt.Errorf("query reports by evidence: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var (
			r                        Report
			reportUUID, evidenceUUID uuid.UUID
			analystID                *uuid.UUID
		)
		err := rows.Scan(&reportUUID, &evidenceUUID, &analystID, &r.Findings, &r.ReportKey, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r.ID = id.ReportID(reportUUID)
		r.EvidenceID = id.EvidenceID(evidenceUUID)
		if analystID != nil {
			r.AnalystID = id.UserID(*analystID)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Listing, error) {
	query := `
		SELECT r.report_id, r.evidence_id, r.findings, COALESCE(r.report_key, ''),
		       COALESCE(u.name, ''), r.created_at
		FROM analysis_reports r
		LEFT JOIN people u ON u.user_id = r.analyst_id
		ORDER BY r.created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query report listings: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		var (
			l                        Listing
			reportUUID, evidenceUUID uuid.UUID
		)
		err := rows.Scan(&reportUUID, &evidenceUUID, &l.Findings, &l.ReportKey, &l.AnalystName, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan report listing: %w", err)
		}
		l.ID = id.ReportID(reportUUID)
		l.EvidenceID = id.EvidenceID(evidenceUUID)
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report listings: %w", err)
	}
	return listings, nil
}
