package evidence

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

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore persists evidence items in evidence_items.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, item *Item) error {
	query := `
		INSERT INTO evidence_items (
			evidence_id, case_id, evidence_type, description,
			collected_by, current_custodian_id, storage_id,
			current_status, collected_on, file_key
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(item.ID),
		uuid.UUID(item.CaseID),
		item.EvidenceType,
		nullString(item.Description),
		nullUser(item.CollectedBy),
		nullUser(item.CurrentCustodianID),
		nullStorage(item.StorageID),
		item.CurrentStatus,
		item.CollectedOn,
		nullString(item.FileKey),
	)
	if err != nil {
		return fmt.Errorf("insert evidence item: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, evidenceID id.EvidenceID) (*Item, error) {
	query := selectItem + ` WHERE evidence_id = $1`
	row := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(evidenceID))
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query evidence item: %w", err)
	}
	return item, nil
}

func (s *PostgresStore) ListByCase(ctx context.Context, caseID id.CaseID) ([]Item, error) {
	query := selectItem + ` WHERE case_id = $1 ORDER BY collected_on DESC`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(caseID))
	if err != nil {
		return nil, fmt.Errorf("query evidence by case: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evidence item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence items: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Listing, error) {
	query := `
		SELECT e.evidence_id, e.case_id, e.evidence_type,
		       COALESCE(e.description, ''), e.current_status, e.collected_on,
		       COALESCE(collector.name, ''), COALESCE(custodian.name, ''),
		       COALESCE(loc.name, '')
		FROM evidence_items e
		LEFT JOIN people collector ON collector.user_id = e.collected_by
		LEFT JOIN people custodian ON custodian.user_id = e.current_custodian_id
		LEFT JOIN storage_locations loc ON loc.storage_id = e.storage_id
		ORDER BY e.collected_on DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query evidence listings: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		var (
			l                      Listing
			evidenceUUID, caseUUID uuid.UUID
		)
		err := rows.Scan(&evidenceUUID, &caseUUID, &l.EvidenceType,
			&l.Description, &l.CurrentStatus, &l.CollectedOn,
			&l.CollectedByName, &l.CustodianName, &l.StorageName)
		if err != nil {
			return nil, fmt.Errorf("scan evidence listing: %w", err)
		}
		l.ID = id.EvidenceID(evidenceUUID)
		l.CaseID = id.CaseID(caseUUID)
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence listings: %w", err)
	}
	return listings, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, evidenceID id.EvidenceID, status string) error {
	query := `UPDATE evidence_items SET current_status = $2 WHERE evidence_id = $1`
	res, err := s.execer(ctx).ExecContext(ctx, query, uuid.UUID(evidenceID), status)
	if err != nil {
		return fmt.Errorf("update evidence status: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) SetCustody(ctx context.Context, evidenceID id.EvidenceID, custodian id.UserID, status string) error {
	query := `
		UPDATE evidence_items
		SET current_custodian_id = $2, current_status = $3
		WHERE evidence_id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(evidenceID), nullUser(custodian), status)
	if err != nil {
		return fmt.Errorf("update evidence custody: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, evidenceID id.EvidenceID) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`DELETE FROM evidence_items WHERE evidence_id = $1`, uuid.UUID(evidenceID))
	if err != nil {
		return fmt.Errorf("delete evidence item: %w", err)
	}
	return requireAffected(res)
}

const selectItem = `
	SELECT evidence_id, case_id, evidence_type, COALESCE(description, ''),
	       collected_by, current_custodian_id, storage_id,
	       current_status, collected_on, COALESCE(file_key, '')
	FROM evidence_items
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var (
		item                   Item
		evidenceUUID, caseUUID uuid.UUID
		collectedBy, custodian *uuid.UUID
		storageID              *uuid.UUID
	)
	err := row.Scan(&evidenceUUID, &caseUUID, &item.EvidenceType, &item.Description,
		&collectedBy, &custodian, &storageID,
		&item.CurrentStatus, &item.CollectedOn, &item.FileKey)
	if err != nil {
		return nil, err
	}
	item.ID = id.EvidenceID(evidenceUUID)
	item.CaseID = id.CaseID(caseUUID)
	if collectedBy != nil {
		item.CollectedBy = id.UserID(*collectedBy)
	}
	if custodian != nil {
		item.CurrentCustodianID = id.UserID(*custodian)
	}
	if storageID != nil {
		item.StorageID = id.StorageID(*storageID)
	}
	return &item, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
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

func nullStorage(storageID id.StorageID) *uuid.UUID {
	if storageID.IsNil() {
		return nil
	}
	raw := uuid.UUID(storageID)
	return &raw
}

// PostgresStorageStore resolves storage_locations rows by name.
type PostgresStorageStore struct {
	db *sql.DB
}

func NewPostgresStorage(db *sql.DB) *PostgresStorageStore {
	return &PostgresStorageStore{db: db}
}

func (s *PostgresStorageStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// FindOrCreate returns the location with the given name, creating it on
// first use. The upsert keeps concurrent intakes from racing on the unique
// name constraint.
func (s *PostgresStorageStore) FindOrCreate(ctx context.Context, name string) (id.StorageID, error) {
	query := `
		INSERT INTO storage_locations (storage_id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING storage_id
	`
	var storageUUID uuid.UUID
	err := s.execer(ctx).QueryRowContext(ctx, query, uuid.New(), name).Scan(&storageUUID)
	if err != nil {
		return id.StorageID{}, fmt.Errorf("find or create storage location: %w", err)
	}
	return id.StorageID(storageUUID), nil
}
