package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, projectID uuid.UUID, rawDescription string) (*matching.Mapping, error) {
	query := `
		SELECT raw_pattern, account_number, account_name
		FROM account_mappings
		WHERE project_id = $1 AND $2 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var m matching.Mapping

	err := s.db.QueryRowContext(ctx, query, projectID, rawDescription).Scan(&m.Pattern, &m.AccountNumber, &m.AccountName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding match: %w", err)
	}

	return &m, nil
}

func (s *Store) CreateMapping(ctx context.Context, projectID uuid.UUID, m matching.Mapping) error {
	query := `
		INSERT INTO account_mappings (project_id, raw_pattern, account_number, account_name, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, projectID, m.Pattern, m.AccountNumber, m.AccountName)
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
