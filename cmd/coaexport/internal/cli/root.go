package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/export"
)

type options struct {
	input        string
	format       string
	out          string
	project      string
	coa          bool
	transactions bool
	summary      bool
	split        bool
}

// NewRootCommand creates the coaexport command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(time.Now)
}

func newRootCommand(now func() time.Time) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "coaexport",
		Short: "Export a chart of accounts and ledger for QuickBooks or Xero",
		Long: `coaexport reads a YAML snapshot of a project's chart of accounts and
transactions and writes import files for QuickBooks Online, QuickBooks Desktop
or Xero. Several files are bundled into one zip archive unless --split is set.
Without --coa, --transactions or --summary every file is written.`,
		Args: cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			written, err := run(opts, now())
			if err != nil {
				return err
			}

			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "YAML snapshot to export (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.TargetQBO), "target system: qbo, qbd or xero")
	cmd.Flags().StringVarP(&opts.out, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&opts.project, "project", "", "project name used in filenames (overrides the snapshot)")
	cmd.Flags().BoolVar(&opts.coa, "coa", false, "include the chart of accounts")
	cmd.Flags().BoolVar(&opts.transactions, "transactions", false, "include the transactions")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "include the account summary")
	cmd.Flags().BoolVar(&opts.split, "split", false, "write every file separately instead of a zip archive")

	return cmd
}

func (o options) selection() (export.Selection, error) {
	target, err := export.ParseTarget(o.format)
	if err != nil {
		return export.Selection{}, err
	}

	sel := export.Selection{
		Target:              target,
		IncludeAccounts:     o.coa,
		IncludeTransactions: o.transactions,
		IncludeSummary:      o.summary,
	}

	if !o.coa && !o.transactions && !o.summary {
		sel.IncludeAccounts = true
		sel.IncludeTransactions = true
		sel.IncludeSummary = true
	}

	return sel, nil
}

// run exports the snapshot and returns the paths it wrote.
func run(opts options, now time.Time) ([]string, error) {
	sel, err := opts.selection()
	if err != nil {
		return nil, err
	}

	f, err := LoadFile(opts.input)
	if err != nil {
		return nil, err
	}

	if opts.project != "" {
		f.Project = opts.project
	}

	in, err := f.Input(now)
	if err != nil {
		return nil, err
	}

	artifacts, err := export.Build(sel, in)
	if err != nil {
		return nil, fmt.Errorf("building export: %w", err)
	}

	if !opts.split {
		out, err := export.Package(artifacts, in.ProjectName, sel.Target, in.Date)
		if err != nil {
			return nil, nicer(err)
		}

		artifacts = []export.Artifact{out}
	} else if len(artifacts) == 0 {
		return nil, nicer(export.ErrNothingToExport)
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	written := make([]string, 0, len(artifacts))

	for _, a := range artifacts {
		path := filepath.Join(opts.out, a.Filename)
		if err := os.WriteFile(path, a.Content, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", a.Filename, err)
		}

		written = append(written, path)
	}

	return written, nil
}

func nicer(err error) error {
	if errors.Is(err, export.ErrNothingToExport) {
		return fmt.Errorf("%w: the snapshot has no accounts or transactions for the selected files", err)
	}

	return err
}
