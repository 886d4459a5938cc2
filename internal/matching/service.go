package matching

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

// Mapping is a learned rule: descriptions containing Pattern belong to the
// account.
type Mapping struct {
	Pattern       string
	AccountNumber string
	AccountName   string
}

// Suggestion is the account proposed for a description.
type Suggestion struct {
	AccountNumber string
	AccountName   string
	Confidence    float64
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch returns the longest pattern contained in rawDescription, or
	// nil when none is.
	FindMatch(ctx context.Context, projectID uuid.UUID, rawDescription string) (*Mapping, error)
	CreateMapping(ctx context.Context, projectID uuid.UUID, m Mapping) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest proposes an account for the raw description. It returns nil when no
// learned pattern matches.
func (s *Service) Suggest(ctx context.Context, projectID uuid.UUID, rawDescription string) (*Suggestion, error) {
	m, err := s.repo.FindMatch(ctx, projectID, rawDescription)
	if err != nil || m == nil {
		return nil, err
	}

	return &Suggestion{
		AccountNumber: m.AccountNumber,
		AccountName:   m.AccountName,
		Confidence:    confidence(m.Pattern, rawDescription),
	}, nil
}

// Learn remembers that descriptions containing pattern belong to the account.
func (s *Service) Learn(ctx context.Context, projectID uuid.UUID, m Mapping) error {
	m.Pattern = strings.TrimSpace(m.Pattern)

	return s.repo.CreateMapping(ctx, projectID, m)
}

// Apply fills the suggested account of every param a pattern matches. Lookup
// failures leave the param unsuggested.
func (s *Service) Apply(ctx context.Context, projectID uuid.UUID, params []transaction.CreateParams) {
	for i, p := range params {
		if p.SuggestedAccountNumber != "" {
			continue
		}

		sug, err := s.Suggest(ctx, projectID, p.RawDescription)
		if err != nil || sug == nil {
			continue
		}

		params[i].SuggestedAccountNumber = sug.AccountNumber
		params[i].SuggestedAccountName = sug.AccountName
		params[i].Confidence = sug.Confidence
	}
}

// confidence is the share of the description covered by the pattern.
func confidence(pattern, raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(pattern) >= len(raw) {
		return 1
	}

	return float64(len(pattern)) / float64(len(raw))
}
