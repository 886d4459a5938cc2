package export

import (
	"fmt"
	"strings"
	"time"
)

// SanitizeName drops every rune outside [A-Za-z0-9_-].
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return -1
	}, name)
}

// Filename builds {project}_{target}_{kind}_{YYYY-MM-DD}.{ext}.
func Filename(project string, target Target, kind Kind, date time.Time, ext string) string {
	return fmt.Sprintf("%s_%s_%s_%s.%s", SanitizeName(project), target.Label(), kind, date.Format(time.DateOnly), ext)
}
