package export

import "github.com/MrJamesThe3rd/ledgerbridge/internal/account"

// typeTable maps account classifications to one target's native type codes.
// Lookup goes by detail type first and falls back to the coarse type.
type typeTable struct {
	byDetail map[account.DetailType]string
	byType   map[account.Type]string
}

func (t typeTable) lookup(detail account.DetailType, typ account.Type) string {
	if code, ok := t.byDetail[detail]; ok {
		return code
	}

	return t.byType[typ]
}

var qboTypes = typeTable{
	byDetail: map[account.DetailType]string{
		account.DetailCash:                    "Bank",
		account.DetailChecking:                "Bank",
		account.DetailSavings:                 "Bank",
		account.DetailAccountsReceivable:      "Accounts Receivable",
		account.DetailInventory:               "Other Current Asset",
		account.DetailPrepaidExpenses:         "Other Current Asset",
		account.DetailOtherCurrentAsset:       "Other Current Asset",
		account.DetailFixedAsset:              "Fixed Asset",
		account.DetailAccumulatedDepreciation: "Fixed Asset",
		account.DetailOtherAsset:              "Other Asset",

		account.DetailAccountsPayable:       "Accounts Payable",
		account.DetailCreditCard:            "Credit Card",
		account.DetailPayrollLiabilities:    "Other Current Liability",
		account.DetailSalesTaxPayable:       "Other Current Liability",
		account.DetailOtherCurrentLiability: "Other Current Liability",
		account.DetailLongTermLiability:     "Long Term Liability",
		account.DetailNotesPayable:          "Long Term Liability",

		account.DetailOwnersEquity:     "Equity",
		account.DetailOwnerDraws:       "Equity",
		account.DetailRetainedEarnings: "Equity",
		account.DetailOpeningBalance:   "Equity",

		account.DetailSales:          "Income",
		account.DetailServiceIncome:  "Income",
		account.DetailInterestEarned: "Other Income",
		account.DetailOtherIncome:    "Other Income",

		account.DetailCostOfGoodsSold:    "Cost of Goods Sold",
		account.DetailAdvertising:        "Expense",
		account.DetailBankCharges:        "Expense",
		account.DetailInsurance:          "Expense",
		account.DetailPayroll:            "Expense",
		account.DetailProfessionalFees:   "Expense",
		account.DetailRentOrLease:        "Expense",
		account.DetailSupplies:           "Expense",
		account.DetailUtilities:          "Expense",
		account.DetailTravel:             "Expense",
		account.DetailMeals:              "Expense",
		account.DetailDepreciation:       "Expense",
		account.DetailOtherMiscellaneous: "Expense",
		account.DetailOtherExpense:       "Other Expense",
	},
	byType: map[account.Type]string{
		account.TypeAsset:     "Other Current Asset",
		account.TypeLiability: "Other Current Liability",
		account.TypeEquity:    "Equity",
		account.TypeIncome:    "Income",
		account.TypeExpense:   "Expense",
	},
}

var qbdTypes = typeTable{
	byDetail: map[account.DetailType]string{
		account.DetailCash:                    "BANK",
		account.DetailChecking:                "BANK",
		account.DetailSavings:                 "BANK",
		account.DetailAccountsReceivable:      "AR",
		account.DetailInventory:               "OCASSET",
		account.DetailPrepaidExpenses:         "OCASSET",
		account.DetailOtherCurrentAsset:       "OCASSET",
		account.DetailFixedAsset:              "FIXASSET",
		account.DetailAccumulatedDepreciation: "FIXASSET",
		account.DetailOtherAsset:              "OCASSET",

		account.DetailAccountsPayable:       "AP",
		account.DetailCreditCard:            "CCARD",
		account.DetailPayrollLiabilities:    "OCLIAB",
		account.DetailSalesTaxPayable:       "OCLIAB",
		account.DetailOtherCurrentLiability: "OCLIAB",
		account.DetailLongTermLiability:     "LTLIAB",
		account.DetailNotesPayable:          "LTLIAB",

		account.DetailOwnersEquity:     "EQUITY",
		account.DetailOwnerDraws:       "EQUITY",
		account.DetailRetainedEarnings: "EQUITY",
		account.DetailOpeningBalance:   "EQUITY",

		account.DetailSales:          "INC",
		account.DetailServiceIncome:  "INC",
		account.DetailInterestEarned: "EXINC",
		account.DetailOtherIncome:    "EXINC",

		account.DetailCostOfGoodsSold:    "COGS",
		account.DetailAdvertising:        "EXP",
		account.DetailBankCharges:        "EXP",
		account.DetailInsurance:          "EXP",
		account.DetailPayroll:            "EXP",
		account.DetailProfessionalFees:   "EXP",
		account.DetailRentOrLease:        "EXP",
		account.DetailSupplies:           "EXP",
		account.DetailUtilities:          "EXP",
		account.DetailTravel:             "EXP",
		account.DetailMeals:              "EXP",
		account.DetailDepreciation:       "EXP",
		account.DetailOtherMiscellaneous: "EXP",
		account.DetailOtherExpense:       "EXEXP",
	},
	byType: map[account.Type]string{
		account.TypeAsset:     "OCASSET",
		account.TypeLiability: "OCLIAB",
		account.TypeEquity:    "EQUITY",
		account.TypeIncome:    "INC",
		account.TypeExpense:   "EXP",
	},
}

var xeroTypes = typeTable{
	byDetail: map[account.DetailType]string{
		account.DetailCash:                    "BANK",
		account.DetailChecking:                "BANK",
		account.DetailSavings:                 "BANK",
		account.DetailAccountsReceivable:      "CURRENT",
		account.DetailInventory:               "INVENTORY",
		account.DetailPrepaidExpenses:         "CURRENT",
		account.DetailOtherCurrentAsset:       "CURRENT",
		account.DetailFixedAsset:              "FIXED",
		account.DetailAccumulatedDepreciation: "FIXED",
		account.DetailOtherAsset:              "FIXED",

		account.DetailAccountsPayable:       "CURRLIAB",
		account.DetailCreditCard:            "CURRLIAB",
		account.DetailPayrollLiabilities:    "CURRLIAB",
		account.DetailSalesTaxPayable:       "CURRLIAB",
		account.DetailOtherCurrentLiability: "CURRLIAB",
		account.DetailLongTermLiability:     "TERMLIAB",
		account.DetailNotesPayable:          "TERMLIAB",

		account.DetailOwnersEquity:     "EQUITY",
		account.DetailOwnerDraws:       "EQUITY",
		account.DetailRetainedEarnings: "EQUITY",
		account.DetailOpeningBalance:   "EQUITY",

		account.DetailSales:          "REVENUE",
		account.DetailServiceIncome:  "REVENUE",
		account.DetailInterestEarned: "OTHERINCOME",
		account.DetailOtherIncome:    "OTHERINCOME",

		account.DetailCostOfGoodsSold:    "DIRECTCOSTS",
		account.DetailAdvertising:        "EXPENSE",
		account.DetailBankCharges:        "OVERHEADS",
		account.DetailInsurance:          "OVERHEADS",
		account.DetailPayroll:            "EXPENSE",
		account.DetailProfessionalFees:   "EXPENSE",
		account.DetailRentOrLease:        "OVERHEADS",
		account.DetailSupplies:           "EXPENSE",
		account.DetailUtilities:          "OVERHEADS",
		account.DetailTravel:             "EXPENSE",
		account.DetailMeals:              "EXPENSE",
		account.DetailDepreciation:       "OVERHEADS",
		account.DetailOtherMiscellaneous: "EXPENSE",
		account.DetailOtherExpense:       "EXPENSE",
	},
	byType: map[account.Type]string{
		account.TypeAsset:     "CURRENT",
		account.TypeLiability: "CURRLIAB",
		account.TypeEquity:    "EQUITY",
		account.TypeIncome:    "REVENUE",
		account.TypeExpense:   "EXPENSE",
	},
}

var typeTables = map[Target]typeTable{
	TargetQBO:  qboTypes,
	TargetQBD:  qbdTypes,
	TargetXero: xeroTypes,
}

// MapAccountType resolves the target's native account type code. Every
// detail type has an entry per target and every coarse type has a fallback,
// so a supported target always yields a code.
func MapAccountType(detail account.DetailType, typ account.Type, target Target) string {
	return typeTables[target].lookup(detail, typ)
}

const (
	xeroOutputTax = "OUTPUT"
	xeroInputTax  = "INPUT"
)

// XeroTaxCode derives the default tax code hint for a Xero account type code.
func XeroTaxCode(code string) string {
	switch code {
	case "REVENUE", "OTHERINCOME":
		return xeroOutputTax
	case "EXPENSE", "OVERHEADS", "DIRECTCOSTS":
		return xeroInputTax
	}

	return ""
}
