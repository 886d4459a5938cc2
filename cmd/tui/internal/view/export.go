package view

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/export"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/project"
)

const writeTimeout = 2 * time.Minute

const (
	includeAccounts     = "accounts"
	includeTransactions = "transactions"
	includeSummary      = "summary"
)

// exportForm holds the form bindings on the heap so model copies share them.
type exportForm struct {
	format   string
	includes []string
	dir      string
}

func (f *exportForm) selection() (export.Selection, error) {
	target, err := export.ParseTarget(f.format)
	if err != nil {
		return export.Selection{}, err
	}

	return export.Selection{
		Target:              target,
		IncludeAccounts:     slices.Contains(f.includes, includeAccounts),
		IncludeTransactions: slices.Contains(f.includes, includeTransactions),
		IncludeSummary:      slices.Contains(f.includes, includeSummary),
	}, nil
}

// ExportModel asks for a target and a file selection, then writes the
// packaged export into a local directory.
type ExportModel struct {
	exportService *export.Service
	project       *project.Project

	form    *huh.Form
	values  *exportForm
	spinner spinner.Model
	busy    bool
	done    *exportDoneMsg
}

func NewExportModel(p *project.Project, svc *export.Service, defaultFormat string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		exportService: svc,
		project:       p,
		values: &exportForm{
			format:   defaultFormat,
			includes: []string{includeAccounts, includeTransactions, includeSummary},
			dir:      "./exports",
		},
		spinner: s,
	}
	m.form = m.selectionForm()

	return m
}

func (m ExportModel) Title() string { return "Export " + m.project.Name }

func (m ExportModel) ShortHelp() string {
	switch {
	case m.busy:
		return "Building files..."
	case m.done != nil:
		return "Esc: back"
	}

	return "Tab: next field | Enter: export | Esc: back"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && !m.busy {
		return m, Back
	}

	if done, ok := msg.(exportDoneMsg); ok {
		m.busy = false
		m.done = &done

		return m, nil
	}

	if m.busy {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	if m.done != nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	sel, err := m.values.selection()
	if err != nil {
		m.done = &exportDoneMsg{err: err}
		return m, nil
	}

	m.busy = true

	return m, tea.Batch(m.spinner.Tick, m.write(sel, m.values.dir))
}

func (m ExportModel) selectionForm() *huh.Form {
	targets := export.Targets()

	formats := make([]huh.Option[string], len(targets))
	for i, t := range targets {
		formats[i] = huh.NewOption(t.Label(), string(t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Accounting system").
				Options(formats...).
				Value(&m.values.format),

			huh.NewMultiSelect[string]().
				Title("Files").
				Options(
					huh.NewOption("Chart of accounts", includeAccounts),
					huh.NewOption("Transactions", includeTransactions),
					huh.NewOption("Account summary", includeSummary),
				).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return errors.New("pick at least one file")
					}

					return nil
				}).
				Value(&m.values.includes),

			huh.NewInput().
				Title("Directory").
				Placeholder("./exports").
				Value(&m.values.dir),
		),
	).WithWidth(56).WithShowHelp(false)
}

func (m ExportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch {
	case m.busy:
		return style.Render(m.spinner.View() + " Building export files...")
	case m.done == nil:
		return style.Render(m.form.View())
	case errors.Is(m.done.err, export.ErrNothingToExport):
		return style.Render(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(
			"Nothing to export: the project has no data for the selected files.",
		))
	case m.done.err != nil:
		return style.Render(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Error: " + m.done.err.Error()))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).Render("Exported"),
		"",
		fmt.Sprintf("%s (%s)", m.done.path, humanize.Bytes(uint64(m.done.size))),
	))
}

type exportDoneMsg struct {
	path string
	size int
	err  error
}

func (m ExportModel) write(sel export.Selection, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		out, err := m.exportService.Export(ctx, m.project.ID, sel)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportDoneMsg{err: fmt.Errorf("creating %s: %w", dir, err)}
		}

		path := filepath.Join(dir, out.Filename)
		if err := os.WriteFile(path, out.Content, 0o644); err != nil {
			return exportDoneMsg{err: fmt.Errorf("writing %s: %w", path, err)}
		}

		return exportDoneMsg{path: path, size: len(out.Content)}
	}
}
