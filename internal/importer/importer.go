package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrUnknownFormat = errors.New("unknown file format")
	ErrNoProfile     = errors.New("no matching column layout found")
)

// Format is the container of an uploaded sheet.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromFilename guesses the format from the file extension. Anything
// that is not a workbook is read as delimited text.
func FormatFromFilename(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	}

	return FormatCSV
}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}
