package export_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/export"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

func TestSummarize(t *testing.T) {
	txs := append(ledger(), transaction.Transaction{
		ID:                    "t4",
		Date:                  "2024-02-01",
		Amount:                decimal.RequireFromString("7.50"),
		Direction:             transaction.Credit,
		ReviewedAccountNumber: "6100",
		ReviewedAccountName:   "Office Supplies",
	})

	rows := export.Summarize(txs)
	require.Len(t, rows, 3)

	assert.Equal(t, "4000", rows[0].AccountNumber)
	assert.Equal(t, "6100", rows[1].AccountNumber)
	assert.Equal(t, "Uncategorized", rows[2].AccountNumber)
	assert.Equal(t, "Uncategorized", rows[2].AccountName)

	supplies := rows[1]
	assert.Equal(t, 2, supplies.Count)
	assert.True(t, decimal.RequireFromString("42.50").Equal(supplies.TotalDebits))
	assert.True(t, decimal.RequireFromString("7.50").Equal(supplies.TotalCredits))
	assert.True(t, decimal.RequireFromString("-35").Equal(supplies.NetAmount()))
}

func TestSummarize_ReviewedNameWins(t *testing.T) {
	suggested := transaction.Transaction{
		Date:                   "2024-01-02",
		Amount:                 decimal.RequireFromString("5"),
		Direction:              transaction.Debit,
		SuggestedAccountNumber: "6100",
		SuggestedAccountName:   "Supplies (guess)",
	}
	reviewed := transaction.Transaction{
		Date:                  "2024-01-03",
		Amount:                decimal.RequireFromString("8"),
		Direction:             transaction.Debit,
		ReviewedAccountNumber: "6100",
		ReviewedAccountName:   "Office Supplies",
	}

	tests := []struct {
		name string
		txs  []transaction.Transaction
	}{
		{name: "SuggestionFirst", txs: []transaction.Transaction{suggested, reviewed}},
		{name: "ReviewedFirst", txs: []transaction.Transaction{reviewed, suggested}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := export.Summarize(tt.txs)
			require.Len(t, rows, 1)
			assert.Equal(t, "Office Supplies", rows[0].AccountName)
			assert.Equal(t, 2, rows[0].Count)
		})
	}
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, export.Summarize(nil))
}

func TestEncodeSummary(t *testing.T) {
	want := lines(
		"Account Number,Account Name,Total Debits,Total Credits,Net Amount,Transaction Count",
		"4000,Sales,0.00,1250.00,1250.00,1",
		"6100,Office Supplies,42.50,0.00,-42.50,1",
		"Uncategorized,Uncategorized,3.10,0.00,-3.10,1",
		"",
		"TOTALS,,45.60,1250.00,1204.40,3",
	)

	assert.Equal(t, want, string(export.EncodeSummary(ledger())))
}

func TestEncodeSummary_EscapesNames(t *testing.T) {
	txs := []transaction.Transaction{{
		Date:                   "2024-01-01",
		Amount:                 decimal.RequireFromString("1"),
		Direction:              transaction.Debit,
		SuggestedAccountNumber: "6500",
		SuggestedAccountName:   "Meals, Entertainment",
	}}

	assert.Contains(t, string(export.EncodeSummary(txs)), "6500,\"Meals, Entertainment\",1.00,0.00,-1.00,1\r\n")
}
