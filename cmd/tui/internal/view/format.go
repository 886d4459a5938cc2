package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders a transaction amount with two decimals, negative for
// debits.
func FormatAmount(amount decimal.Decimal, dir transaction.Direction) string {
	if dir == transaction.Debit {
		amount = amount.Neg()
	}

	return amount.StringFixed(2)
}

// AccountLabel renders "number - name", or "-" when no account is set.
func AccountLabel(number, name string) string {
	if number == "" {
		return "-"
	}

	if name == "" {
		return number
	}

	return number + " - " + name
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
