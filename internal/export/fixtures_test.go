package export_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

var exportDate = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

func chart() []account.Account {
	return []account.Account{
		{
			Number:      "1000",
			Name:        "Checking",
			Description: "Main operating account",
			Type:        account.TypeAsset,
			DetailType:  account.DetailChecking,
		},
		{
			Number:      "6100",
			Name:        "Office Supplies",
			Description: "Misc, supplies",
			Type:        account.TypeExpense,
			DetailType:  account.DetailSupplies,
		},
	}
}

func ledger() []transaction.Transaction {
	return []transaction.Transaction{
		{
			ID:                     "3f2a9c1e-0000-4000-8000-00000000abcd",
			Date:                   "2024-01-15",
			Description:            "Misc, supplies",
			Amount:                 decimal.RequireFromString("42.5"),
			Direction:              transaction.Debit,
			Vendor:                 "Staples",
			SuggestedAccountNumber: "6000",
			SuggestedAccountName:   "Misc",
			ReviewedAccountNumber:  "6100",
			ReviewedAccountName:    "Office Supplies",
		},
		{
			ID:                     "tx2short",
			Date:                   "2024-01-20",
			Description:            "Client payment",
			Amount:                 decimal.RequireFromString("1250"),
			Direction:              transaction.Credit,
			Vendor:                 "Globex",
			SuggestedAccountNumber: "4000",
			SuggestedAccountName:   "Sales",
		},
		{
			ID:          "t3",
			Date:        "2024-01-31",
			Description: "Unknown fee",
			Amount:      decimal.RequireFromString("3.10"),
			Direction:   transaction.Debit,
		},
	}
}
