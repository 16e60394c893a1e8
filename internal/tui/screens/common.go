package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/workday/internal/budget"
)

// NavigateMsg is sent when navigation to another screen is requested
type NavigateMsg struct {
	Screen     string
	EmployeeID string
	Day        string
}

func Navigate(screen string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen}
	}
}

// NavigateToDay opens an employee's day. An empty day means today.
func NavigateToDay(employeeID, day string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: "day", EmployeeID: employeeID, Day: day}
	}
}

// RefreshMsg is sent when data should be refreshed
type RefreshMsg struct{}

func Refresh() tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{}
	}
}

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginBottom(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// HoursBar draws logged hours against the daily budget, one cell per
// half hour.
func HoursBar(hours float64) string {
	const cells = int(budget.MaxDailyHours * 2)
	filled := int(hours*2 + 0.5)
	if filled > cells {
		filled = cells
	}
	style := SuccessStyle
	if hours >= budget.MaxDailyHours {
		style = WarningStyle
	}
	return style.Render(strings.Repeat("█", filled)) +
		DimStyle.Render(strings.Repeat("░", cells-filled))
}

// FormatHours renders hours with two decimals.
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2fh", hours)
}
