package export

import (
	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

var qboCodec = Codec{
	Target:      TargetQBO,
	Extension:   "csv",
	ContentType: ContentTypeCSV,
	separator:   ",",
	escape:      EscapeDelimited,

	accountsHeader: [][]string{
		{"Account Name", "Type", "Detail Type", "Description", "Account Number"},
	},
	accountRow: func(a account.Account) []string {
		return []string{
			a.Name,
			MapAccountType(a.DetailType, a.Type, TargetQBO),
			string(a.DetailType),
			a.Description,
			a.Number,
		}
	},

	transactionsHeader: [][]string{
		{"Date", "Description", "Amount", "Account", "Payee/Vendor", "Type"},
	},
	transactionLines: qboTransaction,
}

func qboTransaction(tx transaction.Transaction) ([][]string, error) {
	var acct string
	if number, name, ok := tx.ResolvedAccount(); ok {
		acct = number + " - " + name
	}

	kind := "Deposit"
	if tx.Direction == transaction.Debit {
		kind = "Expense"
	}

	return [][]string{{
		tx.Date,
		tx.Description,
		formatAmount(signedAmount(tx)),
		acct,
		tx.Vendor,
		kind,
	}}, nil
}
