package transaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	ReviewTransaction(ctx context.Context, id, accountNumber, accountName string) (*Transaction, error)

	BeginImport(ctx context.Context, projectID uuid.UUID) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams describes a ledger line about to be stored.
type CreateParams struct {
	Date           string
	Description    string
	RawDescription string
	Amount         decimal.Decimal
	Direction      Direction
	Vendor         string

	SuggestedAccountNumber string
	SuggestedAccountName   string
	Confidence             float64
}

type ListFilter struct {
	ProjectID uuid.UUID
	Reviewed  *bool
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// Review books the transaction against the given account, overriding any
// suggestion.
func (s *Service) Review(ctx context.Context, id, accountNumber, accountName string) (*Transaction, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return nil, ErrInvalidReview
	}

	return s.repo.ReviewTransaction(ctx, id, accountNumber, strings.TrimSpace(accountName))
}

type ImportResult struct {
	Imported  []*Transaction
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Transaction
}

type dupKey struct {
	Date           string
	Amount         string
	Direction      Direction
	RawDescription string
}

func keyOf(date string, amount decimal.Decimal, dir Direction, raw string) dupKey {
	return dupKey{
		Date:           date,
		Amount:         amount.String(),
		Direction:      dir,
		RawDescription: raw,
	}
}

// ImportBatch stores params unless some of them already exist in the
// project's ledger. On conflicts nothing is written and the caller gets the
// split between new and conflicting lines to confirm with CreateBatch.
func (s *Service) ImportBatch(ctx context.Context, projectID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	itx, err := s.repo.BeginImport(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Transaction, len(duplicates))
	for _, d := range duplicates {
		lookup[keyOf(d.Date, d.Amount, d.Direction, d.RawDescription)] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		existing, found := lookup[keyOf(p.Date, p.Amount, p.Direction, p.RawDescription)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	txs := paramsToTransactions(projectID, newParams)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: txs}, nil
}

// CreateBatch stores params without duplicate detection.
func (s *Service) CreateBatch(ctx context.Context, projectID uuid.UUID, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	itx, err := s.repo.BeginImport(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	txs := paramsToTransactions(projectID, params)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

func paramsToTransactions(projectID uuid.UUID, params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = &Transaction{
			ProjectID:              projectID,
			Date:                   p.Date,
			Description:            p.Description,
			RawDescription:         p.RawDescription,
			Amount:                 p.Amount,
			Direction:              p.Direction,
			Vendor:                 p.Vendor,
			SuggestedAccountNumber: p.SuggestedAccountNumber,
			SuggestedAccountName:   p.SuggestedAccountName,
			Confidence:             p.Confidence,
		}
	}

	return txs
}
