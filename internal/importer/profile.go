package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSigned means one signed column; negative amounts are debits.
	amountSigned amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// ledgerProfile describes a ledger column layout. Every field lists the
// accepted header names, already normalized.
type ledgerProfile struct {
	Name       string
	AmountMode amountMode
	Date       []string
	Desc       []string
	Amount     []string
	Debit      []string
	Credit     []string
	Vendor     []string
}

var (
	dateAliases   = []string{"date", "transaction date", "posted date", "posting date"}
	descAliases   = []string{"description", "memo", "details", "narrative"}
	vendorAliases = []string{"payee/vendor", "payee", "vendor", "name", "merchant"}
)

// ledgerProfiles is the ordered list of layouts tried during detection.
// The split layout comes first so a sheet with both an amount and
// debit/credit columns uses the explicit direction.
var ledgerProfiles = []ledgerProfile{
	{
		Name:       "split",
		AmountMode: amountSplit,
		Date:       dateAliases,
		Desc:       descAliases,
		Debit:      []string{"debit", "debits", "withdrawal", "withdrawals", "money out"},
		Credit:     []string{"credit", "credits", "deposit", "deposits", "money in"},
		Vendor:     vendorAliases,
	},
	{
		Name:       "signed",
		AmountMode: amountSigned,
		Date:       dateAliases,
		Desc:       descAliases,
		Amount:     []string{"amount", "value", "total"},
		Vendor:     vendorAliases,
	},
}

// ledgerColumns is a profile resolved against a header row.
type ledgerColumns struct {
	profile *ledgerProfile
	date    int
	desc    int
	amount  int
	debit   int
	credit  int
	vendor  int
}

func (p *ledgerProfile) resolve(cols colIndex) (ledgerColumns, bool) {
	lc := ledgerColumns{
		profile: p,
		date:    cols.lookup(p.Date),
		desc:    cols.lookup(p.Desc),
		amount:  cols.lookup(p.Amount),
		debit:   cols.lookup(p.Debit),
		credit:  cols.lookup(p.Credit),
		vendor:  cols.lookup(p.Vendor),
	}

	if lc.date < 0 || lc.desc < 0 {
		return lc, false
	}

	switch p.AmountMode {
	case amountSigned:
		return lc, lc.amount >= 0
	case amountSplit:
		return lc, lc.debit >= 0 && lc.credit >= 0
	}

	return lc, false
}

// chartColumns locates the chart of accounts columns in a header row.
type chartColumns struct {
	number     int
	name       int
	typ        int
	detailType int
	desc       int
	parent     int
}

func resolveChart(cols colIndex) (chartColumns, bool) {
	cc := chartColumns{
		number:     cols.lookup([]string{"account number", "number", "code", "accnum", "account code"}),
		name:       cols.lookup([]string{"account name", "name"}),
		typ:        cols.lookup([]string{"type", "account type", "accnttype"}),
		detailType: cols.lookup([]string{"detail type", "detail"}),
		desc:       cols.lookup([]string{"description", "desc"}),
		parent:     cols.lookup([]string{"parent", "parent account", "parent account number"}),
	}

	ok := cc.number >= 0 && cc.name >= 0 && (cc.typ >= 0 || cc.detailType >= 0)

	return cc, ok
}
