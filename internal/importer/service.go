package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

// Service turns uploaded sheets into ledger lines or a chart of accounts. The
// header row is found by scanning for the first row that matches a known
// column layout, so preamble lines above it are ignored.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) ParseLedger(format Format, r io.Reader) ([]transaction.CreateParams, error) {
	rows, err := readRows(format, r)
	if err != nil {
		return nil, err
	}

	for headerIdx, row := range rows {
		cols := indexHeader(row)

		for i := range ledgerProfiles {
			lc, ok := ledgerProfiles[i].resolve(cols)
			if !ok {
				continue
			}

			return parseLedgerRows(lc, rows[headerIdx+1:], headerIdx+1)
		}
	}

	return nil, fmt.Errorf("%w: expected date, description and amount or debit/credit columns", ErrNoProfile)
}

// parseLedgerRows extracts transactions from data rows. headerRowNum is the
// 0-based index of the header in the original file.
func parseLedgerRows(lc ledgerColumns, rows [][]string, headerRowNum int) ([]transaction.CreateParams, error) {
	var txs []transaction.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(cellValue(row, lc.date))
		if !ok {
			continue
		}

		amount, dir, ok := lc.amountOf(row)
		if !ok {
			continue
		}

		desc := cellValue(row, lc.desc)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		txs = append(txs, transaction.CreateParams{
			Date:           date,
			Description:    desc,
			RawDescription: desc,
			Amount:         amount,
			Direction:      dir,
			Vendor:         cellValue(row, lc.vendor),
		})
	}

	return txs, nil
}

// amountOf returns the magnitude and direction of a row. Rows without a
// usable non-zero amount are skipped.
func (lc ledgerColumns) amountOf(row []string) (decimal.Decimal, transaction.Direction, bool) {
	switch lc.profile.AmountMode {
	case amountSigned:
		d, ok := nonZeroAmount(cellValue(row, lc.amount))
		if !ok {
			return decimal.Zero, "", false
		}

		if d.IsNegative() {
			return d.Abs(), transaction.Debit, true
		}

		return d, transaction.Credit, true

	case amountSplit:
		if d, ok := nonZeroAmount(cellValue(row, lc.debit)); ok {
			return d.Abs(), transaction.Debit, true
		}

		if d, ok := nonZeroAmount(cellValue(row, lc.credit)); ok {
			return d.Abs(), transaction.Credit, true
		}
	}

	return decimal.Zero, "", false
}

func nonZeroAmount(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	d, err := parseAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}

// ParseChart reads a chart of accounts. Rows without a number are skipped.
// The result is not normalized; see account.Normalize.
func (s *Service) ParseChart(format Format, r io.Reader) ([]account.Account, error) {
	rows, err := readRows(format, r)
	if err != nil {
		return nil, err
	}

	for headerIdx, row := range rows {
		cc, ok := resolveChart(indexHeader(row))
		if !ok {
			continue
		}

		return parseChartRows(cc, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("%w: expected account number, name and type columns", ErrNoProfile)
}

func parseChartRows(cc chartColumns, rows [][]string, headerRowNum int) ([]account.Account, error) {
	var accounts []account.Account

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		number := cellValue(row, cc.number)
		if number == "" {
			continue
		}

		a := account.Account{
			Number:              number,
			Name:                cellValue(row, cc.name),
			Description:         cellValue(row, cc.desc),
			ParentAccountNumber: cellValue(row, cc.parent),
			IsCustom:            true,
		}

		if s := cellValue(row, cc.detailType); s != "" {
			d, ok := matchDetailType(s)
			if !ok {
				return nil, fmt.Errorf("row %d: unknown detail type %q", rowNum, s)
			}

			a.DetailType = d
		}

		if s := cellValue(row, cc.typ); s != "" {
			t, ok := matchType(s)
			if !ok {
				return nil, fmt.Errorf("row %d: unknown account type %q", rowNum, s)
			}

			a.Type = t
		}

		accounts = append(accounts, a)
	}

	return accounts, nil
}

func matchType(s string) (account.Type, bool) {
	for _, t := range account.Types() {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}

	return "", false
}

func matchDetailType(s string) (account.DetailType, bool) {
	for _, d := range account.DetailTypes() {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}

	return "", false
}
