package view

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/matching"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/project"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
)

// Reviewer books transactions against chart accounts and learns from it.
// It is shared by the review queue and the ledger list.
type Reviewer struct {
	txService       *transaction.Service
	accountService  *account.Service
	matchingService *matching.Service
}

func NewReviewer(txSvc *transaction.Service, accSvc *account.Service, matchSvc *matching.Service) *Reviewer {
	return &Reviewer{
		txService:       txSvc,
		accountService:  accSvc,
		matchingService: matchSvc,
	}
}

// suggestion returns the account to preselect for tx.
func (r *Reviewer) suggestion(ctx context.Context, tx *transaction.Transaction) string {
	if number, _, ok := tx.ResolvedAccount(); ok {
		return number
	}

	if tx.RawDescription == "" {
		return ""
	}

	s, err := r.matchingService.Suggest(ctx, tx.ProjectID, tx.RawDescription)
	if err != nil || s == nil {
		return ""
	}

	return s.AccountNumber
}

func (r *Reviewer) save(ctx context.Context, tx *transaction.Transaction, acc account.Account) (*transaction.Transaction, error) {
	reviewed, err := r.txService.Review(ctx, tx.ID, acc.Number, acc.Name)
	if err != nil {
		return nil, err
	}

	if reviewed.RawDescription != "" {
		_ = r.matchingService.Learn(ctx, reviewed.ProjectID, matching.Mapping{
			Pattern:       reviewed.RawDescription,
			AccountNumber: acc.Number,
			AccountName:   acc.Name,
		})
	}

	return reviewed, nil
}

func accountForm(accounts []account.Account, value *string) *huh.Form {
	options := make([]huh.Option[string], len(accounts))
	for i, a := range accounts {
		options[i] = huh.NewOption(AccountLabel(a.Number, a.Name)+"  ("+string(a.Type)+")", a.Number)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Account").
				Options(options...).
				Height(12).
				Value(value),
		),
	).WithWidth(60).WithShowHelp(false)
}

func findAccount(accounts []account.Account, number string) (account.Account, bool) {
	for _, a := range accounts {
		if a.Number == number {
			return a, true
		}
	}

	return account.Account{}, false
}

type ReviewModel struct {
	reviewer *Reviewer
	project  *project.Project

	accounts []account.Account
	queue    []*transaction.Transaction

	currentTx *transaction.Transaction
	form      *huh.Form
	choice    *string

	status     string
	loading    bool
	totalCount int
}

func NewReviewModel(p *project.Project, reviewer *Reviewer) ReviewModel {
	return ReviewModel{
		reviewer: reviewer,
		project:  p,
		choice:   new(""),
		status:   "Loading unreviewed transactions...",
		loading:  true,
	}
}

func (m ReviewModel) Title() string { return "Review " + m.project.Name }

func (m ReviewModel) ShortHelp() string {
	return "Enter: book & next | Esc: back"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.loading {
			return m, nil
		}

	case loadReviewMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading transactions: %v", msg.err)
			return m, nil
		}

		if len(msg.accounts) == 0 {
			m.status = "The project has no chart of accounts yet. Import one first."
			return m, nil
		}

		m.accounts = msg.accounts
		m.queue = msg.txs
		m.totalCount = len(m.queue)

		return m, m.nextTx()

	case reviewSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			m.form = accountForm(m.accounts, m.choice)

			return m, m.form.Init()
		}

		return m, m.nextTx()
	}

	if m.form == nil || m.currentTx == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	acc, ok := findAccount(m.accounts, *m.choice)
	if !ok {
		return m, nil
	}

	m.form = nil

	return m, m.saveCmd(m.currentTx, acc)
}

func (m *ReviewModel) nextTx() tea.Cmd {
	if len(m.queue) == 0 {
		m.currentTx = nil
		m.form = nil

		if m.totalCount == 0 {
			m.status = "Nothing to review."
		} else {
			m.status = "All done!"
		}

		return nil
	}

	tx := m.queue[0]
	m.queue = m.queue[1:]
	m.currentTx = tx

	currentIdx := m.totalCount - len(m.queue)
	m.status = fmt.Sprintf("Reviewing %d/%d", currentIdx, m.totalCount)

	ctx, cancel := DbCtx()
	defer cancel()

	*m.choice = m.reviewer.suggestion(ctx, tx)
	m.form = accountForm(m.accounts, m.choice)

	return m.form.Init()
}

func (m ReviewModel) View() string {
	if m.loading || m.currentTx == nil || m.form == nil {
		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	tx := m.currentTx
	info := fmt.Sprintf(
		"Date:        %s\nAmount:      %s\nDescription: %s\nVendor:      %s\nSuggested:   %s",
		tx.Date,
		FormatAmount(tx.Amount, tx.Direction),
		tx.Description,
		tx.Vendor,
		AccountLabel(tx.SuggestedAccountNumber, tx.SuggestedAccountName),
	)

	if tx.Confidence > 0 {
		info += fmt.Sprintf(" (%.0f%%)", tx.Confidence*100)
	}

	return lipgloss.NewStyle().Padding(2).Render(
		fmt.Sprintf("%s\n\n%s\n\n%s", m.status, info, m.form.View()),
	)
}

type loadReviewMsg struct {
	accounts []account.Account
	txs      []*transaction.Transaction
	err      error
}

func (m ReviewModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.reviewer.accountService.List(ctx, m.project.ID)
		if err != nil {
			return loadReviewMsg{err: err}
		}

		txs, err := m.reviewer.txService.List(ctx, transaction.ListFilter{
			ProjectID: m.project.ID,
			Reviewed:  new(false),
		})

		return loadReviewMsg{accounts: accounts, txs: txs, err: err}
	}
}

type reviewSavedMsg struct {
	err error
}

func (m ReviewModel) saveCmd(tx *transaction.Transaction, acc account.Account) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := m.reviewer.save(ctx, tx, acc)

		return reviewSavedMsg{err: err}
	}
}
