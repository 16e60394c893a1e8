package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/workday/internal/config"
	"github.com/emilianohg/workday/internal/timesheet"
	"github.com/emilianohg/workday/internal/tui/screens"
)

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenEmployees
	ScreenDay
)

type App struct {
	svc           *timesheet.Service
	cfg           *config.Config
	currentScreen Screen
	width         int
	height        int

	// Screen models
	dashboard *screens.Dashboard
	employees *screens.Employees
	day       *screens.Day
}

func NewApp(svc *timesheet.Service, cfg *config.Config) *App {
	return &App{
		svc:           svc,
		cfg:           cfg,
		currentScreen: ScreenDashboard,
	}
}

func (a *App) Init() tea.Cmd {
	a.dashboard = screens.NewDashboard(a.svc)
	a.employees = screens.NewEmployees(a.svc)
	a.day = screens.NewDay(a.svc, a.cfg)

	return a.dashboard.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.currentScreen == ScreenDashboard {
				return a, tea.Quit
			}
			// Let individual screens handle 'q' for going back
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.employees.SetSize(msg.Width, msg.Height)
		a.day.SetSize(msg.Width, msg.Height)

	case screens.NavigateMsg:
		return a.handleNavigation(msg)
	}

	// Update current screen
	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenDashboard:
		cmd = a.dashboard.Update(msg)
	case ScreenEmployees:
		cmd = a.employees.Update(msg)
	case ScreenDay:
		cmd = a.day.Update(msg)
	}

	return a, cmd
}

func (a *App) handleNavigation(msg screens.NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Screen {
	case "dashboard":
		a.currentScreen = ScreenDashboard
		return a, a.dashboard.Init()
	case "employees":
		a.currentScreen = ScreenEmployees
		return a, a.employees.Init()
	case "day":
		a.currentScreen = ScreenDay
		a.day.SetTarget(msg.EmployeeID, msg.Day)
		return a, a.day.Init()
	}
	return a, nil
}

func (a *App) View() string {
	var content string

	switch a.currentScreen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenEmployees:
		content = a.employees.View()
	case ScreenDay:
		content = a.day.View()
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Render(content)
}

func Run(svc *timesheet.Service, cfg *config.Config) error {
	app := NewApp(svc, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
