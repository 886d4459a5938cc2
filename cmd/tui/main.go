package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledgerbridge/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/account"
	accountStore "github.com/MrJamesThe3rd/ledgerbridge/internal/account/store"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/config"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/database"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/export"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/ledgerbridge/internal/matching/store"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/project"
	projectStore "github.com/MrJamesThe3rd/ledgerbridge/internal/project/store"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/transaction"
	txStore "github.com/MrJamesThe3rd/ledgerbridge/internal/transaction/store"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

type model struct {
	appName       string
	defaultFormat string

	projectService  *project.Service
	accountService  *account.Service
	txService       *transaction.Service
	matchingService *matching.Service
	importService   *importer.Service
	exportService   *export.Service
	reviewer        *view.Reviewer

	project *project.Project

	// current is nil while the menu is shown.
	current view.View
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.DB.Migrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	projectSvc := project.NewService(projectStore.New(db))
	accSvc := account.NewService(accountStore.New(db))
	txSvc := transaction.NewService(txStore.New(db))
	matchSvc := matching.NewService(matchingStore.New(db))

	return model{
		appName:         cfg.App.Name,
		defaultFormat:   cfg.Export.DefaultFormat,
		projectService:  projectSvc,
		accountService:  accSvc,
		txService:       txSvc,
		matchingService: matchSvc,
		importService:   importer.NewService(),
		exportService:   export.NewService(projectSvc, accSvc, txSvc),
		reviewer:        view.NewReviewer(txSvc, accSvc, matchSvc),
		current:         view.NewProjectsModel(projectSvc),
	}
}

func (m model) Init() tea.Cmd {
	return m.current.Init()
}

func (m model) open(v view.View) (tea.Model, tea.Cmd) {
	m.current = v
	return m, v.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.current == nil {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(view.NewImportModel(m.project, m.txService, m.accountService, m.matchingService, m.importService))
			case "2":
				return m.open(view.NewReviewModel(m.project, m.reviewer))
			case "3":
				return m.open(view.NewLedgerModel(m.project, m.reviewer))
			case "4":
				return m.open(view.NewExportModel(m.project, m.exportService, m.defaultFormat))
			case "p":
				m.project = nil
				return m.open(view.NewProjectsModel(m.projectService))
			}

			return m, nil
		}

	case view.ProjectSelectedMsg:
		m.project = msg.Project
		m.current = nil

		return m, nil

	case view.BackMsg:
		if m.project == nil {
			return m, tea.Quit
		}

		m.current = nil

		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	if v, ok := next.(view.View); ok {
		m.current = v
	}

	return m, cmd
}

func (m model) View() string {
	if m.current == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			titleStyle.Render(m.appName+" · "+m.project.Name) + "\n\n" +
				"1. Import Chart or Ledger\n" +
				"2. Review Transactions\n" +
				"3. Browse Ledger\n" +
				"4. Export\n\n" +
				"p. Switch Project\n" +
				"q. Quit",
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingLeft(1).Render(titleStyle.Render(m.current.Title())),
		m.current.View(),
		lipgloss.NewStyle().PaddingLeft(1).Render(helpStyle.Render(m.current.ShortHelp())),
	)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
