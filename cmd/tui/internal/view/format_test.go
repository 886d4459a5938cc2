package view_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ledgerbridge/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount string
		dir    transaction.Direction
		want   string
	}{
		{amount: "42.5", dir: transaction.Debit, want: "-42.50"},
		{amount: "1250", dir: transaction.Credit, want: "1250.00"},
		{amount: "0", dir: transaction.Debit, want: "0.00"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, view.FormatAmount(decimal.RequireFromString(tc.amount), tc.dir))
		})
	}
}

func TestAccountLabel(t *testing.T) {
	assert.Equal(t, "6100 - Office Supplies", view.AccountLabel("6100", "Office Supplies"))
	assert.Equal(t, "6100", view.AccountLabel("6100", ""))
	assert.Equal(t, "-", view.AccountLabel("", ""))
}
