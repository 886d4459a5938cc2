package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/matching"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/project"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

const importTimeout = 2 * time.Minute

const (
	kindLedger = "ledger"
	kindChart  = "chart"
)

type importStep int

const (
	stepKind importStep = iota
	stepFile
	stepWorking
	stepDuplicates
	stepDone
)

// importForm holds the form bindings on the heap so model copies share them.
type importForm struct {
	kind string
	keep []int
}

// pendingImport is a parsed ledger waiting for the user to settle duplicates.
type pendingImport struct {
	fresh      []transaction.CreateParams
	duplicates []transaction.Conflict
}

// accepted returns the fresh lines plus the duplicates picked by index.
func (p pendingImport) accepted(keep []int) []transaction.CreateParams {
	out := append([]transaction.CreateParams(nil), p.fresh...)

	for _, i := range keep {
		if i >= 0 && i < len(p.duplicates) {
			out = append(out, p.duplicates[i].Incoming)
		}
	}

	return out
}

type ImportModel struct {
	txService       *transaction.Service
	accountService  *account.Service
	matchingService *matching.Service
	importService   *importer.Service
	project         *project.Project

	step    importStep
	form    *huh.Form
	values  *importForm
	picker  filepicker.Model
	spinner spinner.Model
	pending pendingImport

	outcome string
	err     error
}

func NewImportModel(
	p *project.Project,
	txSvc *transaction.Service,
	accSvc *account.Service,
	matchSvc *matching.Service,
	impSvc *importer.Service,
) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt", ".xlsx", ".xlsm"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ImportModel{
		txService:       txSvc,
		accountService:  accSvc,
		matchingService: matchSvc,
		importService:   impSvc,
		project:         p,
		values:          &importForm{kind: kindLedger},
		picker:          fp,
		spinner:         s,
	}
	m.form = m.kindForm()

	return m
}

func (m ImportModel) Title() string { return "Import into " + m.project.Name }

func (m ImportModel) ShortHelp() string {
	switch m.step {
	case stepDuplicates:
		return "Space: toggle | Enter: import selected | Esc: discard"
	case stepWorking:
		return "Working..."
	case stepDone:
		return "Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		return m.back()
	}

	switch msg := msg.(type) {
	case chartImportedMsg:
		return m.finish(msg.err, fmt.Sprintf("Imported %d accounts.", msg.count))

	case ledgerParsedMsg:
		if msg.err != nil {
			return m.finish(msg.err, "")
		}

		if len(msg.result.Conflicts) == 0 {
			return m.finish(nil, fmt.Sprintf("Imported %d transactions.", len(msg.result.Imported)))
		}

		m.pending = pendingImport{fresh: msg.result.New, duplicates: msg.result.Conflicts}
		m.values.keep = nil
		m.step = stepDuplicates
		m.form = m.duplicatesForm()

		return m, m.form.Init()

	case ledgerConfirmedMsg:
		return m.finish(msg.err, fmt.Sprintf("Imported %d transactions.", msg.count))
	}

	switch m.step {
	case stepKind, stepDuplicates:
		return m.updateForm(msg)

	case stepFile:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		if ok, path := m.picker.DidSelectFile(msg); ok {
			m.step = stepWorking
			return m, tea.Batch(m.spinner.Tick, m.importCmd(m.values.kind, path))
		}

		return m, cmd

	case stepWorking:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ImportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.step == stepKind {
		m.step = stepFile
		return m, m.picker.Init()
	}

	m.step = stepWorking

	return m, tea.Batch(m.spinner.Tick, m.confirmCmd(m.pending.accepted(m.values.keep)))
}

func (m ImportModel) back() (tea.Model, tea.Cmd) {
	if m.step == stepKind {
		return m, Back
	}

	m.step = stepKind
	m.pending = pendingImport{}
	m.err = nil
	m.outcome = ""
	m.form = m.kindForm()

	return m, m.form.Init()
}

func (m ImportModel) finish(err error, outcome string) (tea.Model, tea.Cmd) {
	m.step = stepDone
	m.err = err
	m.outcome = outcome
	m.pending = pendingImport{}

	return m, nil
}

func (m ImportModel) kindForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What are you importing?").
				Options(
					huh.NewOption("Ledger (transactions)", kindLedger),
					huh.NewOption("Chart of accounts", kindChart),
				).
				Value(&m.values.kind),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ImportModel) duplicatesForm() *huh.Form {
	options := make([]huh.Option[int], len(m.pending.duplicates))
	for i, c := range m.pending.duplicates {
		options[i] = huh.NewOption(duplicateLabel(c), i)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title(fmt.Sprintf("%d new lines. These already exist, pick any to import again:", len(m.pending.fresh))).
				Options(options...).
				Value(&m.values.keep),
		),
	).WithWidth(100).WithShowHelp(false)
}

func duplicateLabel(c transaction.Conflict) string {
	status := "unreviewed"
	if c.Existing.IsReviewed {
		status = "reviewed as " + AccountLabel(c.Existing.ReviewedAccountNumber, c.Existing.ReviewedAccountName)
	}

	return fmt.Sprintf("%s  %10s  %s  (%s)",
		c.Incoming.Date,
		FormatAmount(c.Incoming.Amount, c.Incoming.Direction),
		c.Incoming.Description,
		status,
	)
}

func (m ImportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.step {
	case stepKind, stepDuplicates:
		return style.Render(m.form.View())
	case stepFile:
		return style.Render("Select a CSV or XLSX file:\n\n" + m.picker.View())
	case stepWorking:
		return style.Render(m.spinner.View() + " Importing...")
	}

	if m.err != nil {
		return style.Render(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Error: " + m.err.Error()))
	}

	return style.Render(lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.outcome))
}

type ledgerParsedMsg struct {
	result *transaction.ImportResult
	err    error
}

type ledgerConfirmedMsg struct {
	count int
	err   error
}

type chartImportedMsg struct {
	count int
	err   error
}

func (m ImportModel) importCmd(kind, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			if kind == kindChart {
				return chartImportedMsg{err: err}
			}

			return ledgerParsedMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		format := importer.FormatFromFilename(path)

		if kind == kindChart {
			accounts, err := m.importService.ParseChart(format, f)
			if err != nil {
				return chartImportedMsg{err: err}
			}

			chart, err := m.accountService.ReplaceChart(ctx, m.project.ID, accounts)

			return chartImportedMsg{count: len(chart), err: err}
		}

		params, err := m.importService.ParseLedger(format, f)
		if err != nil {
			return ledgerParsedMsg{err: err}
		}

		m.matchingService.Apply(ctx, m.project.ID, params)

		result, err := m.txService.ImportBatch(ctx, m.project.ID, params)

		return ledgerParsedMsg{result: result, err: err}
	}
}

func (m ImportModel) confirmCmd(params []transaction.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, err := m.txService.CreateBatch(ctx, m.project.ID, params)

		return ledgerConfirmedMsg{count: len(txs), err: err}
	}
}
