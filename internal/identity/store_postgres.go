package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
	txcontext "custodia/pkg/platform/tx"
)

// PostgresStore persists person records in the people table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) q(ctx context.Context) querier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, person *Person) error {
	query := `
		INSERT INTO people (user_id, name, email, badge_number, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.q(ctx).ExecContext(ctx, query,
		uuid.UUID(person.ID),
		person.Name,
		person.Email,
		nullString(person.BadgeNumber),
		string(person.Role),
		person.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*Person, error) {
	return s.findBy(ctx, `user_id = $1`, uuid.UUID(userID))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Person, error) {
	return s.findBy(ctx, `email = $1`, email)
}

func (s *PostgresStore) FindByBadge(ctx context.Context, badge string) (*Person, error) {
	return s.findBy(ctx, `badge_number = $1`, badge)
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*Person, error) {
	return s.findBy(ctx, `name = $1`, name)
}

func (s *PostgresStore) FindFirstByRoles(ctx context.Context, roles []id.Role) (*Person, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	query := `
		SELECT user_id, name, email, badge_number, role, created_at
		FROM people
		WHERE role = ANY($1)
		ORDER BY array_position($1, role), created_at
		LIMIT 1
	`
	var (
		person Person
		rawID  uuid.UUID
		badge  sql.NullString
		role   string
	)
	err := s.q(ctx).QueryRowContext(ctx, query, pq.Array(names)).Scan(
		&rawID, &person.Name, &person.Email, &badge, &role, &person.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("query person by roles: %w", err)
	}
	person.ID = id.UserID(rawID)
	person.BadgeNumber = badge.String
	person.Role = id.Role(role)
	return &person, nil
}

func (s *PostgresStore) findBy(ctx context.Context, where string, arg any) (*Person, error) {
	query := `
		SELECT user_id, name, email, badge_number, role, created_at
		FROM people
		WHERE ` + where + `
		LIMIT 1
	`
	var (
		person Person
		rawID  uuid.UUID
		badge  sql.NullString
		role   string
	)
	err := s.q(ctx).QueryRowContext(ctx, query, arg).Scan(
		&rawID, &person.Name, &person.Email, &badge, &role, &person.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("query person: %w", err)
	}
	person.ID = id.UserID(rawID)
	person.BadgeNumber = badge.String
	person.Role = id.Role(role)
	return &person, nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
