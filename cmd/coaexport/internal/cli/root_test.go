package cli

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/export"
)

const snapshot = `project: Acme Co.
date: 2024-03-05
accounts:
  - number: "6100"
    name: Office Supplies
    detail_type: Supplies
  - number: "1000"
    name: Checking
    type: Asset
    detail_type: Checking
transactions:
  - id: 3f2a9c1e-0000-4000-8000-00000000abcd
    date: 2024-01-15
    description: Misc, supplies
    amount: "42.50"
    direction: debit
    vendor: Staples
    reviewed_account_number: "6100"
    reviewed_account_name: Office Supplies
`

var now = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCommand(func() time.Time { return now })
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestRoot_SingleFile(t *testing.T) {
	input := writeSnapshot(t, snapshot)
	outDir := t.TempDir()

	stdout, err := execute(t, "--input", input, "--format", "qbo", "--transactions", "--out", outDir)
	require.NoError(t, err)

	path := filepath.Join(outDir, "AcmeCo_QBO_Transactions_2024-03-05.csv")
	assert.Equal(t, path+"\n", stdout)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Date,Description,Amount,Account,Payee/Vendor,Type\r\n"+
			"2024-01-15,\"Misc, supplies\",-42.50,6100 - Office Supplies,Staples,Expense\r\n",
		string(content))
}

func TestRoot_Archive(t *testing.T) {
	input := writeSnapshot(t, snapshot)
	outDir := t.TempDir()

	_, err := execute(t, "-i", input, "-f", "XERO", "-o", outDir, "--project", "Beta")
	require.NoError(t, err)

	path := filepath.Join(outDir, "Beta_Xero_Export_2024-03-05.zip")

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{
		"Beta_Xero_ChartOfAccounts_2024-03-05.csv",
		"Beta_Xero_Transactions_2024-03-05.csv",
		"Beta_Xero_AccountSummary_2024-03-05.csv",
	}, names)
}

func TestRoot_Split(t *testing.T) {
	input := writeSnapshot(t, snapshot)
	outDir := t.TempDir()

	stdout, err := execute(t, "-i", input, "-f", "qbd", "-o", outDir, "--split", "--coa", "--summary")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.FileExists(t, filepath.Join(outDir, "AcmeCo_QBD_ChartOfAccounts_2024-03-05.iif"))
	assert.FileExists(t, filepath.Join(outDir, "AcmeCo_QBD_AccountSummary_2024-03-05.csv"))
}

func TestRoot_Errors(t *testing.T) {
	type testCase struct {
		name    string
		content string
		args    []string
		wantErr error
		errText string
	}

	tests := []testCase{
		{
			name:    "unknown format",
			content: snapshot,
			args:    []string{"--format", "sage"},
			wantErr: export.ErrUnknownTarget,
		},
		{
			name:    "nothing to export",
			content: "project: Empty\n",
			args:    []string{"--coa"},
			wantErr: export.ErrNothingToExport,
		},
		{
			name:    "nothing to export split",
			content: "project: Empty\n",
			args:    []string{"--split"},
			wantErr: export.ErrNothingToExport,
		},
		{
			name: "bad amount",
			content: `project: Acme
transactions:
  - id: t1
    date: 2024-01-15
    amount: "12,x"
    direction: debit
`,
			errText: "transaction 1: parsing amount",
		},
		{
			name: "bad direction",
			content: `project: Acme
transactions:
  - id: t1
    date: 2024-01-15
    amount: "1.00"
    direction: up
`,
			errText: "direction must be debit or credit",
		},
		{
			name: "malformed date in xero",
			content: `project: Acme
transactions:
  - id: t1
    date: 15/01/2024
    amount: "1.00"
    direction: credit
`,
			args:    []string{"--format", "xero", "--transactions"},
			wantErr: export.ErrInvalidDate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := writeSnapshot(t, tc.content)

			args := append([]string{"--input", input, "--out", t.TempDir()}, tc.args...)

			_, err := execute(t, args...)
			require.Error(t, err)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}

			if tc.errText != "" {
				assert.Contains(t, err.Error(), tc.errText)
			}
		})
	}
}

func TestRoot_RequiresInput(t *testing.T) {
	_, err := execute(t, "--format", "qbo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "input" not set`)
}

func TestFile_InputDefaultsDate(t *testing.T) {
	f := &File{Project: "Acme"}

	in, err := f.Input(now)
	require.NoError(t, err)
	assert.Equal(t, now, in.Date)
	assert.Empty(t, in.Accounts)
	assert.Empty(t, in.Transactions)
}
