package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a row laid out as selectTransactionColumns.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var (
		directionStr               string
		rawDesc, vendor            sql.NullString
		suggestedNo, suggestedName sql.NullString
		reviewedNo, reviewedName   sql.NullString
		confidence                 sql.NullFloat64
	)

	if err := s.Scan(
		&tx.ID, &tx.ProjectID, &tx.Date, &tx.Description, &rawDesc, &tx.Amount, &directionStr, &vendor,
		&suggestedNo, &suggestedName, &reviewedNo, &reviewedName, &confidence, &tx.IsReviewed,
		&tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Direction = transaction.Direction(directionStr)
	tx.RawDescription = rawDesc.String
	tx.Vendor = vendor.String
	tx.SuggestedAccountNumber = suggestedNo.String
	tx.SuggestedAccountName = suggestedName.String
	tx.ReviewedAccountNumber = reviewedNo.String
	tx.ReviewedAccountName = reviewedName.String
	tx.Confidence = confidence.Float64

	return &tx, nil
}

const selectTransactionColumns = `
	t.id::text, t.project_id, to_char(t.date, 'YYYY-MM-DD'), t.description, t.raw_description,
	t.amount, t.direction, t.vendor,
	t.suggested_account_number, t.suggested_account_name,
	t.reviewed_account_number, t.reviewed_account_name,
	t.confidence, t.is_reviewed, t.created_at, t.updated_at
`

func (s *Store) GetTransaction(ctx context.Context, id string) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id::text = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.project_id = $1`

	args := []any{filter.ProjectID}

	if filter.Reviewed != nil {
		query += " AND t.is_reviewed = $2"

		args = append(args, *filter.Reviewed)
	}

	query += " ORDER BY t.date ASC, t.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) ReviewTransaction(ctx context.Context, id, accountNumber, accountName string) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions t
		SET reviewed_account_number = $1, reviewed_account_name = $2, is_reviewed = TRUE, updated_at = NOW()
		WHERE t.id::text = $3
		RETURNING ` + selectTransactionColumns

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, accountNumber, accountName, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("reviewing transaction: %w", err)
	}

	return tx, nil
}

func importLockKey(projectID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(projectID[:])

	return int64(h.Sum64())
}

type importTx struct {
	tx        *sql.Tx
	projectID uuid.UUID
}

// BeginImport opens a transaction holding the project's import lock so that
// concurrent imports cannot both miss each other's duplicates.
func (s *Store) BeginImport(ctx context.Context, projectID uuid.UUID) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(projectID)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx, projectID: projectID}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date           string
		Amount         string
		Direction      transaction.Direction
		RawDescription string
	}

	minDate, maxDate := params[0].Date, params[0].Date
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		// Dates are YYYY-MM-DD, so they order lexically.
		minDate = min(minDate, p.Date)
		maxDate = max(maxDate, p.Date)

		keySet[lookupKey{
			Date:           p.Date,
			Amount:         p.Amount.String(),
			Direction:      p.Direction,
			RawDescription: p.RawDescription,
		}] = struct{}{}
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.project_id = $1 AND t.date >= $2::date AND t.date <= $3::date
		ORDER BY t.date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, itx.projectID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		k := lookupKey{
			Date:           tx.Date,
			Amount:         tx.Amount.String(),
			Direction:      tx.Direction,
			RawDescription: tx.RawDescription,
		}

		if _, found := keySet[k]; !found {
			continue
		}

		duplicates = append(duplicates, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	query := `
		INSERT INTO transactions (project_id, date, description, raw_description, amount, direction, vendor,
			suggested_account_number, suggested_account_name, confidence, is_reviewed, created_at)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, FALSE, NOW())
		RETURNING id::text, created_at
	`

	for _, tx := range txs {
		err := itx.tx.QueryRowContext(ctx, query,
			itx.projectID,
			tx.Date,
			tx.Description,
			tx.RawDescription,
			tx.Amount,
			tx.Direction,
			tx.Vendor,
			tx.SuggestedAccountNumber,
			tx.SuggestedAccountName,
			tx.Confidence,
		).Scan(&tx.ID, &tx.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	return nil
}
