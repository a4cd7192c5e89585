package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "custodia/pkg/domain"
	txcontext "custodia/pkg/platform/tx"
)

// PostgresStore persists audit entries in the audit_log table. log_id is a
// BIGSERIAL, so ordering by it matches insertion order even when two entries
// share a timestamp.
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

// normalize pins the interpolated ORDER BY direction to one of the two known
// keywords.
func normalize(order Order) Order {
	if order == OrderDesc {
		return OrderDesc
	}
	return OrderAsc
}

// Append writes one entry, joining the caller's transaction when present.
func (s *PostgresStore) Append(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO audit_log (actor_id, evidence_id, action, occurred_at)
		VALUES ($1, $2, $3, $4)
		RETURNING log_id
	`
	var actorID *uuid.UUID
	if !entry.ActorID.IsNil() {
		raw := uuid.UUID(entry.ActorID)
		actorID = &raw
	}
	err := s.execer(ctx).QueryRowContext(ctx, query,
		actorID,
		uuid.UUID(entry.EvidenceID),
		entry.Action,
		entry.OccurredAt,
	).Scan(&entry.LogID)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByEvidence(ctx context.Context, evidenceID id.EvidenceID, order Order) ([]Entry, error) {
	order = normalize(order)
	query := fmt.Sprintf(`
		SELECT log_id, actor_id, evidence_id, action, occurred_at
		FROM audit_log
		WHERE evidence_id = $1
		ORDER BY occurred_at %s, log_id %s
	`, order, order)

	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(evidenceID))
	if err != nil {
		return nil, fmt.Errorf("query audit entries by evidence: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *PostgresStore) ListByActor(ctx context.Context, actorID id.UserID, order Order) ([]Entry, error) {
	order = normalize(order)
	query := fmt.Sprintf(`
		SELECT log_id, actor_id, evidence_id, action, occurred_at
		FROM audit_log
		WHERE actor_id = $1
		ORDER BY occurred_at %s, log_id %s
	`, order, order)

	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(actorID))
	if err != nil {
		return nil, fmt.Errorf("query audit entries by actor: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *PostgresStore) ListByEvidenceActions(ctx context.Context, evidenceID id.EvidenceID, actions []string) ([]Entry, error) {
	query := `
		SELECT log_id, actor_id, evidence_id, action, occurred_at
		FROM audit_log
		WHERE evidence_id = $1 AND action = ANY($2)
		ORDER BY occurred_at ASC, log_id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(evidenceID), pq.Array(actions))
	if err != nil {
		return nil, fmt.Errorf("query audit entries by actions: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			actorID    *uuid.UUID
			evidenceID uuid.UUID
		)
		if err := rows.Scan(&entry.LogID, &actorID, &evidenceID, &entry.Action, &entry.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if actorID != nil {
			entry.ActorID = id.UserID(*actorID)
		}
		entry.EvidenceID = id.EvidenceID(evidenceID)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
