package account

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("account not found")
	ErrDuplicateNumber = errors.New("duplicate account number")
	ErrInvalidAccount  = errors.New("invalid account")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	// ListAccounts returns the chart ordered by account number.
	ListAccounts(ctx context.Context, projectID uuid.UUID) ([]Account, error)
	ReplaceAccounts(ctx context.Context, projectID uuid.UUID, accounts []Account) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, projectID uuid.UUID) ([]Account, error) {
	return s.repo.ListAccounts(ctx, projectID)
}

// Lookup finds an account of the project's chart by number.
func (s *Service) Lookup(ctx context.Context, projectID uuid.UUID, number string) (Account, error) {
	accounts, err := s.repo.ListAccounts(ctx, projectID)
	if err != nil {
		return Account{}, err
	}

	for _, a := range accounts {
		if a.Number == number {
			return a, nil
		}
	}

	return Account{}, fmt.Errorf("%w: %s", ErrNotFound, number)
}

// ReplaceChart validates a chart, sorts it by number and stores it in place
// of the project's current chart.
func (s *Service) ReplaceChart(ctx context.Context, projectID uuid.UUID, accounts []Account) ([]Account, error) {
	chart, err := Normalize(accounts)
	if err != nil {
		return nil, err
	}

	for i := range chart {
		chart[i].ProjectID = projectID
	}

	if err := s.repo.ReplaceAccounts(ctx, projectID, chart); err != nil {
		return nil, fmt.Errorf("replacing chart: %w", err)
	}

	return chart, nil
}

// Normalize trims fields, derives a missing Type from the detail type, rejects
// duplicate or empty numbers and returns a copy sorted by number.
func Normalize(accounts []Account) ([]Account, error) {
	chart := make([]Account, len(accounts))
	seen := make(map[string]struct{}, len(accounts))

	for i, a := range accounts {
		a.Number = strings.TrimSpace(a.Number)
		a.Name = strings.TrimSpace(a.Name)

		if a.Number == "" || a.Name == "" {
			return nil, fmt.Errorf("%w: row %d needs a number and a name", ErrInvalidAccount, i+1)
		}

		if _, dup := seen[a.Number]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNumber, a.Number)
		}

		seen[a.Number] = struct{}{}

		if a.Type == "" {
			a.Type = a.DetailType.Type()
		}

		if a.Type == "" {
			return nil, fmt.Errorf("%w: account %s has no type", ErrInvalidAccount, a.Number)
		}

		chart[i] = a
	}

	sort.Slice(chart, func(i, j int) bool {
		return chart[i].Number < chart[j].Number
	})

	return chart, nil
}
