package importer

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.DateOnly,
	"01/02/2006",
	"1/2/2006",
}

// parseDate normalizes a cell to YYYY-MM-DD. It returns false for cells that
// are not dates, such as footer rows.
func parseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	// Workbooks often carry a time part.
	if d, _, ok := strings.Cut(s, " "); ok {
		s = d
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly), true
		}
	}

	return "", false
}
