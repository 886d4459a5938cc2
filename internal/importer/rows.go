package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	enc "github.com/MrJamesThe3rd/ledgerbridge/internal/encoding"
)

// readRows loads every row of the first sheet (xlsx) or of the file (csv).
func readRows(format Format, r io.Reader) ([][]string, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatXLSX:
		return readXLSX(r)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func readCSV(r io.Reader) ([][]string, error) {
	utf8r, charset, err := enc.Detect(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	slog.Debug("decoding csv upload", "charset", charset)

	br := bufio.NewReader(utf8r)

	head, err := br.Peek(1024)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek csv: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(string(head))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab in the
// first line.
func sniffDelimiter(head string) rune {
	line, _, _ := strings.Cut(head, "\n")

	best, bestCount := ',', strings.Count(line, ",")

	for _, c := range []rune{';', '\t'} {
		if n := strings.Count(line, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}

	return best
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	return rows, nil
}

// colIndex maps normalized column names to their index in the row.
type colIndex map[string]int

func indexHeader(row []string) colIndex {
	cols := make(colIndex)

	for i, cell := range row {
		name := normalizeHeader(cell)
		if name == "" {
			continue
		}

		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	return cols
}

// normalizeHeader lowercases and strips the markers some tools put on
// required columns, so "*Date " and "date" match.
func normalizeHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "*")

	return strings.ToLower(strings.TrimSpace(s))
}

// lookup returns the index of the first alias present in the header, or -1.
func (c colIndex) lookup(aliases []string) int {
	for _, a := range aliases {
		if i, ok := c[a]; ok {
			return i
		}
	}

	return -1
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
