package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/export"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/project"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

type ledgerTab struct {
	label    string
	reviewed *bool
}

var ledgerTabs = []ledgerTab{
	{label: "All"},
	{label: "To review", reviewed: new(false)},
	{label: "Reviewed", reviewed: new(true)},
}

var (
	tabActive   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true)
	tabInactive = lipgloss.NewStyle().Faint(true)
)

var panelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Width(52)

// LedgerModel browses a project's ledger with running totals per account and
// books the highlighted line on demand.
type LedgerModel struct {
	reviewer *Reviewer
	project  *project.Project

	tab      int
	grid     table.Model
	lines    []*transaction.Transaction
	accounts []account.Account

	// booking is non-nil while the account picker is open.
	booking *huh.Form
	choice  *string

	ready  bool
	notice string
	err    error
}

func NewLedgerModel(p *project.Project, reviewer *Reviewer) LedgerModel {
	grid := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Amount", Width: 11},
			{Title: "Description", Width: 32},
			{Title: "Vendor", Width: 16},
			{Title: "Account", Width: 26},
			{Title: "✓", Width: 1},
		}),
		table.WithFocused(true),
		table.WithHeight(16),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("63"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("63"))
	grid.SetStyles(styles)

	return LedgerModel{
		reviewer: reviewer,
		project:  p,
		grid:     grid,
		choice:   new(""),
	}
}

func (m LedgerModel) Title() string { return m.project.Name + " Ledger" }

func (m LedgerModel) ShortHelp() string {
	if m.booking != nil {
		return "Enter: book | Esc: cancel"
	}

	return "Tab: switch view | b: book account | r: reload | Esc: back"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.fetch()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		m.ready = true
		m.err = msg.err
		m.lines = msg.lines
		m.accounts = msg.accounts
		m.grid.SetRows(ledgerRows(m.lines))

		return m, nil

	case ledgerBookedMsg:
		m.booking = nil
		m.grid.Focus()

		m.notice = ""
		if msg.err != nil {
			m.notice = "Could not book: " + msg.err.Error()
		}

		return m, m.fetch()

	case tea.WindowSizeMsg:
		m.grid.SetHeight(max(msg.Height-12, 5))
		return m, nil
	}

	if m.booking != nil {
		return m.updateBooking(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, Back
		case "tab":
			m.tab = (m.tab + 1) % len(ledgerTabs)
			return m, m.fetch()
		case "r":
			return m, m.fetch()
		case "b":
			return m.openBooking()
		}
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)

	return m, cmd
}

func (m LedgerModel) highlighted() (*transaction.Transaction, bool) {
	i := m.grid.Cursor()
	if i < 0 || i >= len(m.lines) {
		return nil, false
	}

	return m.lines[i], true
}

func (m LedgerModel) openBooking() (tea.Model, tea.Cmd) {
	tx, ok := m.highlighted()
	if !ok {
		return m, nil
	}

	if len(m.accounts) == 0 {
		m.notice = "This project has no chart of accounts yet. Import one first."
		return m, nil
	}

	ctx, cancel := DbCtx()
	defer cancel()

	*m.choice = m.reviewer.suggestion(ctx, tx)
	m.booking = accountForm(m.accounts, m.choice)
	m.grid.Blur()

	return m, m.booking.Init()
}

func (m LedgerModel) updateBooking(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.booking = nil
		m.grid.Focus()

		return m, nil
	}

	form, cmd := m.booking.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.booking = f
	}

	if m.booking.State != huh.StateCompleted {
		return m, cmd
	}

	tx, ok := m.highlighted()
	if !ok {
		return m, nil
	}

	acc, ok := findAccount(m.accounts, *m.choice)
	if !ok {
		return m, nil
	}

	return m, m.book(tx, acc)
}

func (m LedgerModel) View() string {
	if !m.ready {
		return lipgloss.NewStyle().Padding(1).Render("Loading ledger...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render("Error: " + m.err.Error())
	}

	tabs := make([]string, len(ledgerTabs))
	for i, t := range ledgerTabs {
		style := tabInactive
		if i == m.tab {
			style = tabActive
		}

		tabs[i] = style.Render(t.label)
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(tabs, "  ")+fmt.Sprintf("   %d lines", len(m.lines)),
		"",
		m.grid.View(),
	)

	var right string
	if m.booking != nil {
		tx, _ := m.highlighted()
		right = panelStyle.Render(fmt.Sprintf("Book %q\n\n%s", tx.RawDescription, m.booking.View()))
	} else {
		right = panelStyle.Render(totalsPanel(m.lines))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	if m.notice != "" {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.notice) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func ledgerRows(lines []*transaction.Transaction) []table.Row {
	rows := make([]table.Row, len(lines))
	for i, tx := range lines {
		number, name, _ := tx.ResolvedAccount()

		mark := ""
		if tx.IsReviewed {
			mark = "✓"
		}

		rows[i] = table.Row{
			tx.Date,
			FormatAmount(tx.Amount, tx.Direction),
			tx.Description,
			tx.Vendor,
			AccountLabel(number, name),
			mark,
		}
	}

	return rows
}

// totalsPanel renders the net amount per resolved account, the same grouping
// the account summary export uses.
func totalsPanel(lines []*transaction.Transaction) string {
	if len(lines) == 0 {
		return "No transactions."
	}

	txs := make([]transaction.Transaction, len(lines))
	for i, tx := range lines {
		txs[i] = *tx
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Net by account"))
	b.WriteString("\n\n")

	for _, row := range export.Summarize(txs) {
		fmt.Fprintf(&b, "%-32s %12s\n",
			truncate(AccountLabel(row.AccountNumber, row.AccountName), 32),
			row.NetAmount().StringFixed(2),
		)
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}

type ledgerLoadedMsg struct {
	lines    []*transaction.Transaction
	accounts []account.Account
	err      error
}

type ledgerBookedMsg struct {
	err error
}

func (m LedgerModel) fetch() tea.Cmd {
	filter := transaction.ListFilter{ProjectID: m.project.ID, Reviewed: ledgerTabs[m.tab].reviewed}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		lines, err := m.reviewer.txService.List(ctx, filter)
		if err != nil {
			return ledgerLoadedMsg{err: err}
		}

		accounts, err := m.reviewer.accountService.List(ctx, m.project.ID)

		return ledgerLoadedMsg{lines: lines, accounts: accounts, err: err}
	}
}

func (m LedgerModel) book(tx *transaction.Transaction, acc account.Account) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.reviewer.save(ctx, tx, acc)

		return ledgerBookedMsg{err: err}
	}
}
