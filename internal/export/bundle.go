package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

// Selection picks the target format and which artifacts to produce.
type Selection struct {
	Target              Target
	IncludeAccounts     bool
	IncludeTransactions bool
	IncludeSummary      bool
}

// needsTransactions reports whether any requested artifact reads the ledger.
func (s Selection) needsTransactions() bool {
	return s.IncludeTransactions || s.IncludeSummary
}

// Input is the immutable snapshot an export is built from. Accounts must
// already be sorted by number.
type Input struct {
	ProjectName  string
	Accounts     []account.Account
	Transactions []transaction.Transaction
	Date         time.Time
}

// Artifact is one exported file.
type Artifact struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Build encodes every requested artifact that has data behind it. Artifacts
// come back in the order chart of accounts, transactions, summary.
func Build(sel Selection, in Input) ([]Artifact, error) {
	codec, err := CodecFor(sel.Target)
	if err != nil {
		return nil, err
	}

	name := func(kind Kind, ext string) string {
		return Filename(in.ProjectName, sel.Target, kind, in.Date, ext)
	}

	var jobs []func() (Artifact, error)

	if sel.IncludeAccounts && len(in.Accounts) > 0 {
		jobs = append(jobs, func() (Artifact, error) {
			return Artifact{
				Filename:    name(KindChartOfAccounts, codec.Extension),
				ContentType: codec.ContentType,
				Content:     codec.EncodeAccounts(in.Accounts),
			}, nil
		})
	}

	var txs []transaction.Transaction
	if sel.needsTransactions() {
		txs = in.Transactions
	}

	if sel.IncludeTransactions && len(txs) > 0 {
		jobs = append(jobs, func() (Artifact, error) {
			content, err := codec.EncodeTransactions(txs)
			if err != nil {
				return Artifact{}, err
			}

			return Artifact{
				Filename:    name(KindTransactions, codec.Extension),
				ContentType: codec.ContentType,
				Content:     content,
			}, nil
		})
	}

	if sel.IncludeSummary && len(txs) > 0 {
		jobs = append(jobs, func() (Artifact, error) {
			return Artifact{
				Filename:    name(KindAccountSummary, "csv"),
				ContentType: ContentTypeCSV,
				Content:     EncodeSummary(txs),
			}, nil
		})
	}

	artifacts := make([]Artifact, len(jobs))

	var g errgroup.Group

	for i, job := range jobs {
		g.Go(func() error {
			a, err := job()
			if err != nil {
				return err
			}

			artifacts[i] = a

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return artifacts, nil
}

// Package turns built artifacts into the single file handed to the caller: the
// artifact itself when there is one, a zip archive when there are several.
func Package(artifacts []Artifact, projectName string, target Target, date time.Time) (Artifact, error) {
	switch len(artifacts) {
	case 0:
		return Artifact{}, ErrNothingToExport
	case 1:
		return artifacts[0], nil
	}

	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)

	for _, a := range artifacts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     a.Filename,
			Method:   zip.Deflate,
			Modified: date,
		})
		if err != nil {
			return Artifact{}, fmt.Errorf("adding %s to archive: %w", a.Filename, err)
		}

		if _, err := w.Write(a.Content); err != nil {
			return Artifact{}, fmt.Errorf("writing %s to archive: %w", a.Filename, err)
		}
	}

	if err := zw.Close(); err != nil {
		return Artifact{}, fmt.Errorf("closing archive: %w", err)
	}

	return Artifact{
		Filename:    Filename(projectName, target, KindArchive, date, "zip"),
		ContentType: ContentTypeZip,
		Content:     buf.Bytes(),
	}, nil
}
