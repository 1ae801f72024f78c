package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"yojana/internal/scheme/models"
	id "yojana/pkg/domain"
	"yojana/pkg/platform/sentinel"
)

// PostgresSchemeStore persists the scheme catalog in PostgreSQL.
type PostgresSchemeStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed scheme store.
func NewPostgres(db *sql.DB) *PostgresSchemeStore {
	return &PostgresSchemeStore{db: db}
}

func (s *PostgresSchemeStore) Save(ctx context.Context, scheme *models.Scheme) error {
	rules, err := json.Marshal(scheme.Rules)
	if err != nil {
		return fmt.Errorf("marshal scheme rules: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schemes (id, name, provider, description, rules, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			provider = EXCLUDED.provider,
			description = EXCLUDED.description,
			rules = EXCLUDED.rules`,
		uuid.UUID(scheme.ID),
		scheme.Name,
		scheme.Provider,
		scheme.Description,
		rules,
		scheme.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save scheme: %w", err)
	}
	return nil
}

func (s *PostgresSchemeStore) Get(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, provider, description, rules, created_at
		FROM schemes
		WHERE id = $1`,
		uuid.UUID(schemeID),
	)
	scheme, err := scanScheme(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get scheme: %w", err)
	}
	return scheme, nil
}

func (s *PostgresSchemeStore) List(ctx context.Context) ([]*models.Scheme, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, provider, description, rules, created_at
		FROM schemes
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}
	defer rows.Close()

	var schemes []*models.Scheme
	for rows.Next() {
		scheme, err := scanScheme(rows)
		if err != nil {
			return nil, fmt.Errorf("list schemes: %w", err)
		}
		schemes = append(schemes, scheme)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schemes: %w", err)
	}
	return schemes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScheme(row rowScanner) (*models.Scheme, error) {
	var (
		schemeID    uuid.UUID
		name        string
		provider    string
		description sql.NullString
		rulesRaw    []byte
		createdAt   sql.NullTime
	)
	if err := row.Scan(&schemeID, &name, &provider, &description, &rulesRaw, &createdAt); err != nil {
		return nil, err
	}

	scheme := &models.Scheme{
		ID:          id.SchemeID(schemeID),
		Name:        name,
		Provider:    provider,
		Description: description.String,
	}
	if err := json.Unmarshal(rulesRaw, &scheme.Rules); err != nil {
		return nil, fmt.Errorf("unmarshal scheme rules: %w", err)
	}
	if createdAt.Valid {
		scheme.CreatedAt = createdAt.Time
	}
	return scheme, nil
}
