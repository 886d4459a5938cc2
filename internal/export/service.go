package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/project"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=export
type ProjectSource interface {
	Get(ctx context.Context, id uuid.UUID) (*project.Project, error)
}

type AccountSource interface {
	List(ctx context.Context, projectID uuid.UUID) ([]account.Account, error)
}

type TransactionSource interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Service snapshots a project's chart and ledger and runs them through the
// codecs.
type Service struct {
	projects     ProjectSource
	accounts     AccountSource
	transactions TransactionSource
	now          func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock that dates the exported filenames.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(projects ProjectSource, accounts AccountSource, transactions TransactionSource, opts ...Option) *Service {
	s := &Service{
		projects:     projects,
		accounts:     accounts,
		transactions: transactions,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Files builds every requested artifact of the project separately.
func (s *Service) Files(ctx context.Context, projectID uuid.UUID, sel Selection) ([]Artifact, error) {
	in, err := s.snapshot(ctx, projectID, sel)
	if err != nil {
		return nil, err
	}

	artifacts, err := Build(sel, in)
	if err != nil {
		return nil, fmt.Errorf("building export: %w", err)
	}

	if len(artifacts) == 0 {
		return nil, ErrNothingToExport
	}

	slog.Info("export built",
		"project_id", projectID,
		"target", sel.Target,
		"artifacts", len(artifacts),
	)

	return artifacts, nil
}

// Export builds the requested artifacts and packages them into one payload.
func (s *Service) Export(ctx context.Context, projectID uuid.UUID, sel Selection) (Artifact, error) {
	in, err := s.snapshot(ctx, projectID, sel)
	if err != nil {
		return Artifact{}, err
	}

	artifacts, err := Build(sel, in)
	if err != nil {
		return Artifact{}, fmt.Errorf("building export: %w", err)
	}

	out, err := Package(artifacts, in.ProjectName, sel.Target, in.Date)
	if err != nil {
		return Artifact{}, err
	}

	if len(artifacts) > 1 {
		slog.Info("export packaged",
			"project_id", projectID,
			"target", sel.Target,
			"artifacts", len(artifacts),
			"bytes", len(out.Content),
		)
	}

	return out, nil
}

// snapshot loads only the data the selection needs.
func (s *Service) snapshot(ctx context.Context, projectID uuid.UUID, sel Selection) (Input, error) {
	if _, err := CodecFor(sel.Target); err != nil {
		return Input{}, err
	}

	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return Input{}, fmt.Errorf("loading project: %w", err)
	}

	in := Input{
		ProjectName: p.Name,
		Date:        s.now(),
	}

	if sel.IncludeAccounts {
		in.Accounts, err = s.accounts.List(ctx, projectID)
		if err != nil {
			return Input{}, fmt.Errorf("loading chart of accounts: %w", err)
		}
	}

	if sel.needsTransactions() {
		txs, err := s.transactions.List(ctx, transaction.ListFilter{ProjectID: projectID})
		if err != nil {
			return Input{}, fmt.Errorf("loading transactions: %w", err)
		}

		in.Transactions = make([]transaction.Transaction, len(txs))
		for i, tx := range txs {
			in.Transactions[i] = *tx
		}
	}

	return in, nil
}
