package export

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

// SummaryRow holds the totals of one resolved account.
type SummaryRow struct {
	AccountNumber string
	AccountName   string
	TotalDebits   decimal.Decimal
	TotalCredits  decimal.Decimal
	Count         int
}

// NetAmount is credits minus debits.
func (r SummaryRow) NetAmount() decimal.Decimal {
	return r.TotalCredits.Sub(r.TotalDebits)
}

// Summarize groups transactions by resolved account number. Unresolved
// transactions are grouped under "Uncategorized". A group takes its name from
// the first reviewed transaction in it, or from the first suggestion when none
// is reviewed. Rows are sorted by account number.
func Summarize(txs []transaction.Transaction) []SummaryRow {
	byNumber := make(map[string]*SummaryRow)
	reviewedName := make(map[string]bool)

	for _, tx := range txs {
		number, name, ok := tx.ResolvedAccount()
		if !ok {
			number, name = uncategorized, uncategorized
		}

		reviewed := tx.ReviewedAccountNumber != ""

		row, found := byNumber[number]
		switch {
		case !found:
			row = &SummaryRow{AccountNumber: number, AccountName: name}
			byNumber[number] = row
			reviewedName[number] = reviewed
		case reviewed && !reviewedName[number]:
			row.AccountName = name
			reviewedName[number] = true
		}

		switch tx.Direction {
		case transaction.Debit:
			row.TotalDebits = row.TotalDebits.Add(tx.Amount)
		case transaction.Credit:
			row.TotalCredits = row.TotalCredits.Add(tx.Amount)
		}

		row.Count++
	}

	rows := make([]SummaryRow, 0, len(byNumber))
	for _, r := range byNumber {
		rows = append(rows, *r)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].AccountNumber < rows[j].AccountNumber
	})

	return rows
}

var summaryHeader = []string{
	"Account Number", "Account Name", "Total Debits", "Total Credits", "Net Amount", "Transaction Count",
}

// EncodeSummary renders the account summary table followed by a blank line
// and a TOTALS row. It is always comma-delimited.
func EncodeSummary(txs []transaction.Transaction) []byte {
	var (
		buf   bytes.Buffer
		total SummaryRow
	)

	writeCSVLine(&buf, summaryHeader)

	for _, r := range Summarize(txs) {
		writeCSVLine(&buf, []string{
			r.AccountNumber,
			r.AccountName,
			formatAmount(r.TotalDebits),
			formatAmount(r.TotalCredits),
			formatAmount(r.NetAmount()),
			strconv.Itoa(r.Count),
		})

		total.TotalDebits = total.TotalDebits.Add(r.TotalDebits)
		total.TotalCredits = total.TotalCredits.Add(r.TotalCredits)
		total.Count += r.Count
	}

	buf.WriteString(lineEnd)
	writeCSVLine(&buf, []string{
		"TOTALS",
		"",
		formatAmount(total.TotalDebits),
		formatAmount(total.TotalCredits),
		formatAmount(total.NetAmount()),
		strconv.Itoa(total.Count),
	})

	return buf.Bytes()
}

func writeCSVLine(buf *bytes.Buffer, fields []string) {
	writeLine(buf, ",", EscapeDelimited, fields)
}
