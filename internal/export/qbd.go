package export

import (
	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

const (
	iifDateLayout = "01/02/2006"
	iifTrnsType   = "GENERAL JOURNAL"

	// Every journal entry is offset against this account. The real contra
	// account is not known to the exporter.
	iifOffsetAccount = "Opening Balance Equity"

	uncategorized = "Uncategorized"
)

var qbdCodec = Codec{
	Target:      TargetQBD,
	Extension:   "iif",
	ContentType: ContentTypeText,
	separator:   "\t",
	escape:      EscapeTabbed,

	accountsHeader: [][]string{
		{"!ACCNT", "NAME", "ACCNTTYPE", "DESC", "ACCNUM"},
	},
	accountRow: func(a account.Account) []string {
		return []string{
			"ACCNT",
			a.Name,
			MapAccountType(a.DetailType, a.Type, TargetQBD),
			a.Description,
			a.Number,
		}
	},

	transactionsHeader: [][]string{
		{"!TRNS", "TRNSTYPE", "DATE", "ACCNT", "NAME", "AMOUNT", "MEMO"},
		{"!SPL", "TRNSTYPE", "DATE", "ACCNT", "NAME", "AMOUNT", "MEMO"},
		{"!ENDTRNS"},
	},
	transactionLines: qbdTransaction,
}

func qbdTransaction(tx transaction.Transaction) ([][]string, error) {
	date, err := reformatDate(tx.Date, iifDateLayout)
	if err != nil {
		return nil, err
	}

	// IIF books debits as positive amounts.
	amount := tx.Amount
	if tx.Direction == transaction.Credit {
		amount = amount.Neg()
	}

	return [][]string{
		{"TRNS", iifTrnsType, date, qbdAccountName(tx), tx.Vendor, formatAmount(amount), tx.Description},
		{"SPL", iifTrnsType, date, iifOffsetAccount, tx.Vendor, formatAmount(amount.Neg()), tx.Description},
		{"ENDTRNS"},
	}, nil
}

func qbdAccountName(tx transaction.Transaction) string {
	number, name, ok := tx.ResolvedAccount()
	if !ok {
		return uncategorized
	}

	if name == "" {
		return number
	}

	return name
}
