package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

const lineEnd = "\r\n"

// Codec encodes a chart of accounts and a ledger for one target. Codecs are
// immutable descriptors and safe for concurrent use.
type Codec struct {
	Target      Target
	Extension   string
	ContentType string

	separator string
	escape    func(string) string

	accountsHeader [][]string
	accountRow     func(account.Account) []string

	transactionsHeader [][]string
	transactionLines   func(transaction.Transaction) ([][]string, error)
}

var codecs = map[Target]Codec{
	TargetQBO:  qboCodec,
	TargetQBD:  qbdCodec,
	TargetXero: xeroCodec,
}

// CodecFor returns the codec of a target.
func CodecFor(t Target) (Codec, error) {
	c, ok := codecs[t]
	if !ok {
		return Codec{}, fmt.Errorf("%w: %q", ErrUnknownTarget, t)
	}

	return c, nil
}

// EncodeAccounts renders the chart of accounts in input order.
func (c Codec) EncodeAccounts(accounts []account.Account) []byte {
	var buf bytes.Buffer

	for _, h := range c.accountsHeader {
		c.writeLine(&buf, h)
	}

	for _, a := range accounts {
		c.writeLine(&buf, c.accountRow(a))
	}

	return buf.Bytes()
}

// EncodeTransactions renders the ledger in input order. It fails on the first
// transaction the target cannot represent.
func (c Codec) EncodeTransactions(txs []transaction.Transaction) ([]byte, error) {
	var buf bytes.Buffer

	for _, h := range c.transactionsHeader {
		c.writeLine(&buf, h)
	}

	for _, tx := range txs {
		lines, err := c.transactionLines(tx)
		if err != nil {
			return nil, fmt.Errorf("encoding transaction %s: %w", tx.ID, err)
		}

		for _, l := range lines {
			c.writeLine(&buf, l)
		}
	}

	return buf.Bytes(), nil
}

func (c Codec) writeLine(buf *bytes.Buffer, fields []string) {
	writeLine(buf, c.separator, c.escape, fields)
}

func writeLine(buf *bytes.Buffer, sep string, escape func(string) string, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteString(sep)
		}

		buf.WriteString(escape(f))
	}

	buf.WriteString(lineEnd)
}

// formatAmount renders a money amount with exactly two decimals.
func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// signedAmount returns the amount negated for debits, as the comma-delimited
// targets expect.
func signedAmount(tx transaction.Transaction) decimal.Decimal {
	if tx.Direction == transaction.Debit {
		return tx.Amount.Neg()
	}

	return tx.Amount
}

// reformatDate converts a YYYY-MM-DD date to the given layout.
func reformatDate(s, layout string) (string, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return t.Format(layout), nil
}

// lastN returns the trailing n characters of s, or s when shorter.
func lastN(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[len(r)-n:])
}
