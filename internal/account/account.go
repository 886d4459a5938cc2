package account

import (
	"time"

	"github.com/google/uuid"
)

// Type is the coarse classification of an account.
type Type string

const (
	TypeAsset     Type = "Asset"
	TypeLiability Type = "Liability"
	TypeEquity    Type = "Equity"
	TypeIncome    Type = "Income"
	TypeExpense   Type = "Expense"
)

// Types returns every coarse account type.
func Types() []Type {
	return []Type{TypeAsset, TypeLiability, TypeEquity, TypeIncome, TypeExpense}
}

// DetailType is the fine-grained subtype of an account. Each detail type
// belongs to exactly one Type.
type DetailType string

const (
	DetailCash                    DetailType = "Cash"
	DetailChecking                DetailType = "Checking"
	DetailSavings                 DetailType = "Savings"
	DetailAccountsReceivable      DetailType = "Accounts Receivable"
	DetailInventory               DetailType = "Inventory"
	DetailPrepaidExpenses         DetailType = "Prepaid Expenses"
	DetailOtherCurrentAsset       DetailType = "Other Current Asset"
	DetailFixedAsset              DetailType = "Fixed Asset"
	DetailAccumulatedDepreciation DetailType = "Accumulated Depreciation"
	DetailOtherAsset              DetailType = "Other Asset"

	DetailAccountsPayable       DetailType = "Accounts Payable"
	DetailCreditCard            DetailType = "Credit Card"
	DetailPayrollLiabilities    DetailType = "Payroll Liabilities"
	DetailSalesTaxPayable       DetailType = "Sales Tax Payable"
	DetailOtherCurrentLiability DetailType = "Other Current Liability"
	DetailLongTermLiability     DetailType = "Long Term Liability"
	DetailNotesPayable          DetailType = "Notes Payable"

	DetailOwnersEquity     DetailType = "Owner's Equity"
	DetailOwnerDraws       DetailType = "Owner Draws"
	DetailRetainedEarnings DetailType = "Retained Earnings"
	DetailOpeningBalance   DetailType = "Opening Balance Equity"

	DetailSales          DetailType = "Sales"
	DetailServiceIncome  DetailType = "Service/Fee Income"
	DetailInterestEarned DetailType = "Interest Earned"
	DetailOtherIncome    DetailType = "Other Income"

	DetailCostOfGoodsSold    DetailType = "Cost of Goods Sold"
	DetailAdvertising        DetailType = "Advertising"
	DetailBankCharges        DetailType = "Bank Charges"
	DetailInsurance          DetailType = "Insurance"
	DetailPayroll            DetailType = "Payroll"
	DetailProfessionalFees   DetailType = "Professional Fees"
	DetailRentOrLease        DetailType = "Rent or Lease"
	DetailSupplies           DetailType = "Supplies"
	DetailUtilities          DetailType = "Utilities"
	DetailTravel             DetailType = "Travel"
	DetailMeals              DetailType = "Meals and Entertainment"
	DetailDepreciation       DetailType = "Depreciation"
	DetailOtherMiscellaneous DetailType = "Other Miscellaneous"
	DetailOtherExpense       DetailType = "Other Expense"
)

// detailTypes lists every detail type in display order together with its
// coarse type.
var detailTypes = []struct {
	detail DetailType
	typ    Type
}{
	{DetailCash, TypeAsset},
	{DetailChecking, TypeAsset},
	{DetailSavings, TypeAsset},
	{DetailAccountsReceivable, TypeAsset},
	{DetailInventory, TypeAsset},
	{DetailPrepaidExpenses, TypeAsset},
	{DetailOtherCurrentAsset, TypeAsset},
	{DetailFixedAsset, TypeAsset},
	{DetailAccumulatedDepreciation, TypeAsset},
	{DetailOtherAsset, TypeAsset},

	{DetailAccountsPayable, TypeLiability},
	{DetailCreditCard, TypeLiability},
	{DetailPayrollLiabilities, TypeLiability},
	{DetailSalesTaxPayable, TypeLiability},
	{DetailOtherCurrentLiability, TypeLiability},
	{DetailLongTermLiability, TypeLiability},
	{DetailNotesPayable, TypeLiability},

	{DetailOwnersEquity, TypeEquity},
	{DetailOwnerDraws, TypeEquity},
	{DetailRetainedEarnings, TypeEquity},
	{DetailOpeningBalance, TypeEquity},

	{DetailSales, TypeIncome},
	{DetailServiceIncome, TypeIncome},
	{DetailInterestEarned, TypeIncome},
	{DetailOtherIncome, TypeIncome},

	{DetailCostOfGoodsSold, TypeExpense},
	{DetailAdvertising, TypeExpense},
	{DetailBankCharges, TypeExpense},
	{DetailInsurance, TypeExpense},
	{DetailPayroll, TypeExpense},
	{DetailProfessionalFees, TypeExpense},
	{DetailRentOrLease, TypeExpense},
	{DetailSupplies, TypeExpense},
	{DetailUtilities, TypeExpense},
	{DetailTravel, TypeExpense},
	{DetailMeals, TypeExpense},
	{DetailDepreciation, TypeExpense},
	{DetailOtherMiscellaneous, TypeExpense},
	{DetailOtherExpense, TypeExpense},
}

// DetailTypes returns the full detail type enumeration.
func DetailTypes() []DetailType {
	out := make([]DetailType, len(detailTypes))
	for i, d := range detailTypes {
		out[i] = d.detail
	}

	return out
}

// Type returns the coarse type the detail type belongs to, or "" for a
// value outside the enumeration.
func (d DetailType) Type() Type {
	for _, dt := range detailTypes {
		if dt.detail == d {
			return dt.typ
		}
	}

	return ""
}

// Account is a single entry of a project's chart of accounts.
type Account struct {
	ID                  uuid.UUID
	ProjectID           uuid.UUID
	Number              string
	Name                string
	Description         string
	Type                Type
	DetailType          DetailType
	IsCustom            bool
	ParentAccountNumber string // informational only
	CreatedAt           time.Time
}
