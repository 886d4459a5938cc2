package export

import (
	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

const (
	xeroDateLayout   = "02/01/2006"
	xeroReferenceLen = 8
)

var xeroCodec = Codec{
	Target:      TargetXero,
	Extension:   "csv",
	ContentType: ContentTypeCSV,
	separator:   ",",
	escape:      EscapeDelimited,

	accountsHeader: [][]string{
		{"*Code", "*Name", "*Type", "Description", "Tax Code"},
	},
	accountRow: func(a account.Account) []string {
		code := MapAccountType(a.DetailType, a.Type, TargetXero)

		return []string{a.Number, a.Name, code, a.Description, XeroTaxCode(code)}
	},

	transactionsHeader: [][]string{
		{"*Date", "*Amount", "Payee", "Description", "Reference", "Account Code"},
	},
	transactionLines: xeroTransaction,
}

func xeroTransaction(tx transaction.Transaction) ([][]string, error) {
	date, err := reformatDate(tx.Date, xeroDateLayout)
	if err != nil {
		return nil, err
	}

	number, _, _ := tx.ResolvedAccount()

	return [][]string{{
		date,
		formatAmount(signedAmount(tx)),
		tx.Vendor,
		tx.Description,
		lastN(tx.ID, xeroReferenceLen),
		number,
	}}, nil
}
