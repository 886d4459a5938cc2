package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/project"
)

const newProjectOption = "__new__"

type projectsState int

const (
	projectsStateLoading projectsState = iota
	projectsStatePick
	projectsStateCreate
)

// ProjectSelectedMsg is sent once the user picked or created a project.
type ProjectSelectedMsg struct {
	Project *project.Project
}

// projectForm holds the form bindings on the heap so model copies share them.
type projectForm struct {
	choice string
	name   string
}

type ProjectsModel struct {
	projectService *project.Service

	state    projectsState
	projects []*project.Project
	form     *huh.Form
	values   *projectForm
	err      error
}

func NewProjectsModel(svc *project.Service) ProjectsModel {
	return ProjectsModel{
		projectService: svc,
		values:         &projectForm{},
	}
}

func (m ProjectsModel) Title() string { return "Select Project" }

func (m ProjectsModel) ShortHelp() string { return "Enter: select | Ctrl+C: quit" }

func (m ProjectsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProjectsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.projects = msg.projects
		m.state = projectsStatePick
		m.form = m.buildPickForm()

		return m, m.form.Init()

	case projectCreatedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = projectsStateCreate
			m.form = m.buildCreateForm()

			return m, m.form.Init()
		}

		return m, selectProject(msg.project)
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case projectsStatePick:
		if m.values.choice == newProjectOption {
			m.state = projectsStateCreate
			m.form = m.buildCreateForm()

			return m, m.form.Init()
		}

		for _, p := range m.projects {
			if p.ID.String() == m.values.choice {
				return m, selectProject(p)
			}
		}
	case projectsStateCreate:
		return m, m.createCmd(m.values.name)
	}

	return m, nil
}

func (m ProjectsModel) buildPickForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(m.projects)+1)
	for _, p := range m.projects {
		options = append(options, huh.NewOption(p.Name, p.ID.String()))
	}

	options = append(options, huh.NewOption("+ New project", newProjectOption))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project").
				Options(options...).
				Value(&m.values.choice),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ProjectsModel) buildCreateForm() *huh.Form {
	m.values.name = ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&m.values.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ProjectsModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.err != nil && m.form == nil {
		return style.Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == projectsStateLoading {
		return style.Render("Loading projects...")
	}

	content := m.form.View()
	if m.err != nil {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.err.Error()) + "\n\n" + content
	}

	return style.Render(content)
}

type loadProjectsMsg struct {
	projects []*project.Project
	err      error
}

type projectCreatedMsg struct {
	project *project.Project
	err     error
}

func selectProject(p *project.Project) tea.Cmd {
	return func() tea.Msg {
		return ProjectSelectedMsg{Project: p}
	}
}

func (m ProjectsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		projects, err := m.projectService.List(ctx)

		return loadProjectsMsg{projects: projects, err: err}
	}
}

func (m ProjectsModel) createCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.projectService.Create(ctx, name)

		return projectCreatedMsg{project: p, err: err}
	}
}
