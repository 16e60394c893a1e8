package screens

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/workday/internal/budget"
	"github.com/emilianohg/workday/internal/repository"
	"github.com/emilianohg/workday/internal/timesheet"
)

type Dashboard struct {
	svc    *timesheet.Service
	width  int
	height int

	today     string
	employees []repository.EmployeeWithStats
	cursor    int
	loading   bool
	err       error
}

func NewDashboard(svc *timesheet.Service) *Dashboard {
	return &Dashboard{
		svc:     svc,
		loading: true,
	}
}

func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

type dashboardDataMsg struct {
	today     string
	employees []repository.EmployeeWithStats
	err       error
}

func (d *Dashboard) Init() tea.Cmd {
	d.loading = true
	return d.loadData
}

func (d *Dashboard) loadData() tea.Msg {
	today := budget.DayOf(time.Now().In(d.svc.Location()))
	employees, err := d.svc.EmployeeStats(today)
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{today: today, employees: employees}
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.loading = false
		d.err = msg.err
		d.today = msg.today
		d.employees = msg.employees
		if d.cursor >= len(d.employees) {
			d.cursor = max(0, len(d.employees)-1)
		}
		return nil

	case RefreshMsg:
		return d.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.employees)-1 {
				d.cursor++
			}
		case "enter":
			if len(d.employees) > 0 {
				return NavigateToDay(d.employees[d.cursor].ID, d.today)
			}
		case "e":
			return Navigate("employees")
		case "r":
			return d.Init()
		}
	}

	return nil
}

func (d *Dashboard) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("WORKDAY"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Daily hours at a glance"))
	b.WriteString("\n\n")

	if d.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if d.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", d.err)))
		b.WriteString("\n")
		return b.String()
	}

	var full int
	for _, e := range d.employees {
		if e.DayHours >= budget.MaxDailyHours {
			full++
		}
	}
	statsContent := fmt.Sprintf(
		"Today: %s\nEmployees: %d\nFull days: %s",
		d.today,
		len(d.employees),
		d.formatFull(full),
	)
	b.WriteString(BoxStyle.Render(statsContent))
	b.WriteString("\n\n")

	if len(d.employees) > 0 {
		b.WriteString(SubtitleStyle.Render("Logged today"))
		b.WriteString("\n")
		for i, e := range d.employees {
			cursor := "  "
			style := NormalStyle
			if i == d.cursor {
				cursor = "> "
				style = SelectedStyle
			}
			b.WriteString(fmt.Sprintf("%s%-24s %s %s\n",
				cursor,
				style.Render(e.Name),
				HoursBar(e.DayHours),
				DimStyle.Render(fmt.Sprintf("%s / %s left", FormatHours(e.DayHours), FormatHours(budget.Remaining(e.DayHours)))),
			))
		}
	} else {
		b.WriteString(DimStyle.Render("No employees yet. Press 'e' to add one."))
	}

	b.WriteString("\n")

	help := "[enter] Open day  [e] Employees  [r] Refresh  [q] Quit"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}

func (d *Dashboard) formatFull(n int) string {
	if n == 0 {
		return DimStyle.Render("0")
	}
	return WarningStyle.Render(fmt.Sprintf("%d", n))
}
