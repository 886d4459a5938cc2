package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction tells whether a transaction debits or credits its account.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// Transaction is a single ledger line extracted from a client document.
type Transaction struct {
	ID             string
	ProjectID      uuid.UUID
	Date           string // YYYY-MM-DD
	Description    string
	RawDescription string
	Amount         decimal.Decimal // non-negative magnitude
	Direction      Direction
	Vendor         string

	SuggestedAccountNumber string
	SuggestedAccountName   string
	ReviewedAccountNumber  string
	ReviewedAccountName    string

	Confidence float64
	IsReviewed bool

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ResolvedAccount returns the account the transaction is booked against:
// the reviewed override first, then the suggestion. ok is false when neither
// is set.
func (t Transaction) ResolvedAccount() (number, name string, ok bool) {
	if t.ReviewedAccountNumber != "" {
		return t.ReviewedAccountNumber, t.ReviewedAccountName, true
	}

	if t.SuggestedAccountNumber != "" {
		return t.SuggestedAccountNumber, t.SuggestedAccountName, true
	}

	return "", "", false
}
