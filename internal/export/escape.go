package export

import "strings"

// EscapeDelimited quotes a value for comma-separated output. Values holding a
// comma, double quote, CR or LF are wrapped in double quotes with inner quotes
// doubled; everything else is returned unchanged.
func EscapeDelimited(v string) string {
	if !strings.ContainsAny(v, ",\"\r\n") {
		return v
	}

	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

var tabbedReplacer = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// EscapeTabbed makes a value safe for tab-separated output by turning tabs and
// line breaks into spaces and trimming the result. It never quotes.
func EscapeTabbed(v string) string {
	return strings.TrimSpace(tabbedReplacer.Replace(v))
}
