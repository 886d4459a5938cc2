package export

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTarget   = errors.New("unknown export target")
	ErrNothingToExport = errors.New("nothing to export")
	ErrInvalidDate     = errors.New("invalid transaction date")
)

// Target is a downstream accounting system.
type Target string

const (
	TargetQBO  Target = "qbo"
	TargetQBD  Target = "qbd"
	TargetXero Target = "xero"
)

// Targets returns every supported target.
func Targets() []Target {
	return []Target{TargetQBO, TargetQBD, TargetXero}
}

// ParseTarget accepts a target name in any case.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TargetQBO, TargetQBD, TargetXero:
		return t, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// Label is the name used in filenames.
func (t Target) Label() string {
	switch t {
	case TargetQBO:
		return "QBO"
	case TargetQBD:
		return "QBD"
	case TargetXero:
		return "Xero"
	}

	return string(t)
}

// Kind names the content of an artifact.
type Kind string

const (
	KindChartOfAccounts Kind = "ChartOfAccounts"
	KindTransactions    Kind = "Transactions"
	KindAccountSummary  Kind = "AccountSummary"
	KindArchive         Kind = "Export"
)

const (
	ContentTypeCSV  = "text/csv;charset=utf-8"
	ContentTypeText = "text/plain;charset=utf-8"
	ContentTypeZip  = "application/zip"
)
