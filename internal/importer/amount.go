package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyStripper = strings.NewReplacer("$", "", "€", "", "£", "", " ", "", " ", "")

// parseAmount parses a signed money amount. It accepts thousands separators,
// a decimal comma ("1.234,56"), accounting parentheses ("(12.00)") and a
// trailing minus ("12.00-").
func parseAmount(s string) (decimal.Decimal, error) {
	clean := currencyStripper.Replace(strings.TrimSpace(s))

	neg := false

	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		neg = true
		clean = clean[1 : len(clean)-1]
	}

	if strings.HasSuffix(clean, "-") {
		neg = !neg
		clean = strings.TrimSuffix(clean, "-")
	}

	clean = normalizeSeparators(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	if neg {
		d = d.Neg()
	}

	return d, nil
}

// normalizeSeparators rewrites the number so that '.' is the only decimal
// separator. When both ',' and '.' appear the last one is the decimal
// separator; a lone ',' is decimal only when followed by exactly two digits.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma < 0:
		return s
	case lastDot > lastComma:
		return strings.ReplaceAll(s, ",", "")
	case lastDot >= 0:
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ",") == 1 && len(s)-lastComma-1 == 2:
		return strings.Replace(s, ",", ".", 1)
	}

	return strings.ReplaceAll(s, ",", "")
}
