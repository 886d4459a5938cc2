package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/export"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

// File is the YAML snapshot the CLI exports from.
type File struct {
	Project      string             `yaml:"project"`
	Date         string             `yaml:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Accounts     []AccountEntry     `yaml:"accounts"`
	Transactions []TransactionEntry `yaml:"transactions"`
}

type AccountEntry struct {
	Number      string `yaml:"number"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type,omitempty"`
	DetailType  string `yaml:"detail_type,omitempty"`
	Description string `yaml:"description,omitempty"`
	Parent      string `yaml:"parent,omitempty"`
}

// TransactionEntry keeps the amount as text so it never passes through a
// float.
type TransactionEntry struct {
	ID                     string `yaml:"id"`
	Date                   string `yaml:"date"`
	Description            string `yaml:"description"`
	Amount                 string `yaml:"amount"`
	Direction              string `yaml:"direction"`
	Vendor                 string `yaml:"vendor,omitempty"`
	SuggestedAccountNumber string `yaml:"suggested_account_number,omitempty"`
	SuggestedAccountName   string `yaml:"suggested_account_name,omitempty"`
	ReviewedAccountNumber  string `yaml:"reviewed_account_number,omitempty"`
	ReviewedAccountName    string `yaml:"reviewed_account_name,omitempty"`
}

// LoadFile reads and parses a YAML snapshot.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing input: %w", err)
	}

	return &f, nil
}

// Input converts the snapshot into an export input dated now unless the file
// carries a date.
func (f *File) Input(now time.Time) (export.Input, error) {
	in := export.Input{
		ProjectName: f.Project,
		Date:        now,
	}

	if f.Date != "" {
		d, err := time.Parse(time.DateOnly, f.Date)
		if err != nil {
			return export.Input{}, fmt.Errorf("parsing date %q: %w", f.Date, err)
		}

		in.Date = d
	}

	accounts := make([]account.Account, len(f.Accounts))
	for i, a := range f.Accounts {
		accounts[i] = account.Account{
			Number:              a.Number,
			Name:                a.Name,
			Type:                account.Type(a.Type),
			DetailType:          account.DetailType(a.DetailType),
			Description:         a.Description,
			ParentAccountNumber: a.Parent,
		}
	}

	chart, err := account.Normalize(accounts)
	if err != nil {
		return export.Input{}, fmt.Errorf("reading accounts: %w", err)
	}

	in.Accounts = chart

	in.Transactions = make([]transaction.Transaction, len(f.Transactions))
	for i, e := range f.Transactions {
		tx, err := e.transaction()
		if err != nil {
			return export.Input{}, fmt.Errorf("transaction %d: %w", i+1, err)
		}

		in.Transactions[i] = tx
	}

	return in, nil
}

func (e TransactionEntry) transaction() (transaction.Transaction, error) {
	amount, err := decimal.NewFromString(e.Amount)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("parsing amount %q: %w", e.Amount, err)
	}

	dir := transaction.Direction(e.Direction)
	if dir != transaction.Debit && dir != transaction.Credit {
		return transaction.Transaction{}, fmt.Errorf("direction must be debit or credit, got %q", e.Direction)
	}

	return transaction.Transaction{
		ID:                     e.ID,
		Date:                   e.Date,
		Description:            e.Description,
		RawDescription:         e.Description,
		Amount:                 amount.Abs(),
		Direction:              dir,
		Vendor:                 e.Vendor,
		SuggestedAccountNumber: e.SuggestedAccountNumber,
		SuggestedAccountName:   e.SuggestedAccountName,
		ReviewedAccountNumber:  e.ReviewedAccountNumber,
		ReviewedAccountName:    e.ReviewedAccountName,
		IsReviewed:             e.ReviewedAccountNumber != "",
	}, nil
}
