package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListAccounts(ctx context.Context, projectID uuid.UUID) ([]account.Account, error) {
	query := `
		SELECT id, project_id, number, name, description, type, detail_type,
			is_custom, parent_number, created_at
		FROM accounts
		WHERE project_id = $1
		ORDER BY number ASC
	`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []account.Account

	for rows.Next() {
		var (
			a                     account.Account
			typeStr, detailStr    string
			description, parentNo sql.NullString
		)

		if err := rows.Scan(
			&a.ID, &a.ProjectID, &a.Number, &a.Name, &description, &typeStr, &detailStr,
			&a.IsCustom, &parentNo, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		a.Type = account.Type(typeStr)
		a.DetailType = account.DetailType(detailStr)
		a.Description = description.String
		a.ParentAccountNumber = parentNo.String

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accounts, nil
}

// ReplaceAccounts swaps the project's chart atomically.
func (s *Store) ReplaceAccounts(ctx context.Context, projectID uuid.UUID, accounts []account.Account) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM accounts WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("clearing chart: %w", err)
	}

	query := `
		INSERT INTO accounts (project_id, number, name, description, type, detail_type,
			is_custom, parent_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NOW())
	`

	for _, a := range accounts {
		if _, err := dbTx.ExecContext(ctx, query,
			projectID,
			a.Number,
			a.Name,
			a.Description,
			a.Type,
			a.DetailType,
			a.IsCustom,
			a.ParentAccountNumber,
		); err != nil {
			return fmt.Errorf("inserting account %s: %w", a.Number, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing chart: %w", err)
	}

	return nil
}
