package screens

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/workday/internal/budget"
	"github.com/emilianohg/workday/internal/config"
	"github.com/emilianohg/workday/internal/report"
	"github.com/emilianohg/workday/internal/timesheet"
)

type dayMode int

const (
	dayModeList dayMode = iota
	dayModeAdd
	dayModeEdit
	dayModeDelete
)

// Day shows one employee's tasks for one day and edits them.
type Day struct {
	svc    *timesheet.Service
	cfg    *config.Config
	width  int
	height int

	employeeID string
	day        string
	summary    *timesheet.DailySummary
	cursor     int
	mode       dayMode
	taskForm   *form
	precheck   string
	precheckOK bool
	loading    bool
	err        error
	message    string
}

func NewDay(svc *timesheet.Service, cfg *config.Config) *Day {
	return &Day{
		svc: svc,
		cfg: cfg,
		taskForm: newForm(
			[]string{"Description", "From", "To"},
			[]string{"What was done", "09:00", "11:30"},
		),
	}
}

func (d *Day) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetTarget selects the employee and day to show. An empty day means today.
func (d *Day) SetTarget(employeeID, day string) {
	if day == "" {
		day = budget.DayOf(time.Now().In(d.svc.Location()))
	}
	d.employeeID = employeeID
	d.day = day
	d.cursor = 0
}

type dayDataMsg struct {
	summary *timesheet.DailySummary
	err     error
}

func (d *Day) Init() tea.Cmd {
	d.loading = true
	d.mode = dayModeList
	return d.loadData
}

func (d *Day) loadData() tea.Msg {
	summary, err := d.svc.Summarize(d.employeeID, d.day)
	return dayDataMsg{summary: summary, err: err}
}

func (d *Day) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dayDataMsg:
		d.loading = false
		d.err = msg.err
		d.summary = msg.summary
		if d.summary != nil && d.cursor >= len(d.summary.Tasks) {
			d.cursor = max(0, len(d.summary.Tasks)-1)
		}
		return nil

	case RefreshMsg:
		return d.Init()

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	if d.mode == dayModeAdd || d.mode == dayModeEdit {
		cmd, changed := d.taskForm.update(msg)
		if changed {
			d.runPrecheck()
		}
		return cmd
	}
	return nil
}

func (d *Day) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch d.mode {
	case dayModeList:
		return d.handleListKey(msg)
	case dayModeAdd, dayModeEdit:
		return d.handleInputKey(msg)
	case dayModeDelete:
		return d.handleDeleteKey(msg)
	}
	return nil
}

func (d *Day) tasks() []timesheet.SummaryTask {
	if d.summary == nil {
		return nil
	}
	return d.summary.Tasks
}

func (d *Day) shiftDay(days int) tea.Cmd {
	t, err := budget.ParseDay(d.day, d.svc.Location())
	if err != nil {
		return nil
	}
	d.day = budget.DayOf(t.AddDate(0, 0, days))
	d.cursor = 0
	d.message = ""
	return d.Init()
}

func (d *Day) handleListKey(msg tea.KeyMsg) tea.Cmd {
	tasks := d.tasks()
	switch msg.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(tasks)-1 {
			d.cursor++
		}
	case "left", "h":
		return d.shiftDay(-1)
	case "right", "l":
		return d.shiftDay(1)
	case "t":
		d.SetTarget(d.employeeID, "")
		return d.Init()
	case "a":
		d.mode = dayModeAdd
		d.message = ""
		cmd := d.taskForm.reset()
		d.runPrecheck()
		return cmd
	case "e":
		if len(tasks) > 0 {
			sel := tasks[d.cursor]
			d.mode = dayModeEdit
			d.message = ""
			cmd := d.taskForm.reset(sel.Description, formatClock(sel.From, d.day), formatClock(sel.To, d.day))
			d.runPrecheck()
			return cmd
		}
	case "d":
		if len(tasks) > 0 {
			d.mode = dayModeDelete
		}
	case "w":
		d.writeReport()
	case "q", "esc":
		return Navigate("employees")
	}
	return nil
}

func (d *Day) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		in, err := d.formInput()
		if err != nil {
			d.err = err
			return nil
		}
		if d.mode == dayModeAdd {
			_, dec, err := d.svc.CreateTask(in)
			if err != nil {
				d.err = err
				return nil
			}
			d.message = fmt.Sprintf("Task added (%s left today)", FormatHours(dec.RemainingHours))
		} else {
			_, dec, err := d.svc.UpdateTask(d.tasks()[d.cursor].ID, in)
			if err != nil {
				d.err = err
				return nil
			}
			d.message = fmt.Sprintf("Task updated (%s left today)", FormatHours(dec.RemainingHours))
		}
		d.mode = dayModeList
		d.taskForm.blur()
		return d.loadData

	case "esc":
		d.mode = dayModeList
		d.taskForm.blur()
		return nil
	}

	cmd, changed := d.taskForm.update(msg)
	if changed {
		d.runPrecheck()
	}
	return cmd
}

func (d *Day) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		sel := d.tasks()[d.cursor]
		if err := d.svc.DeleteTask(sel.ID); err != nil {
			d.err = err
		} else {
			d.message = fmt.Sprintf("Deleted task: %s", sel.Description)
		}
		d.mode = dayModeList
		return d.loadData

	case "n", "N", "esc":
		d.mode = dayModeList
	}
	return nil
}

// formInput turns the form into a task candidate. Clock times are read
// on the displayed day; full timestamps are taken as typed.
func (d *Day) formInput() (timesheet.TaskInput, error) {
	return timesheet.ParseTaskInput(
		d.employeeID,
		d.taskForm.value(0),
		composeInstant(d.day, d.taskForm.value(1)),
		composeInstant(d.day, d.taskForm.value(2)),
		d.svc.Location(),
	)
}

// runPrecheck validates the form against the stored day without writing.
func (d *Day) runPrecheck() {
	d.precheck, d.precheckOK = "", false

	in, err := d.formInput()
	if err != nil {
		var ve *timesheet.ValidationError
		if errors.As(err, &ve) && (ve.Field == "from" || ve.Field == "to") {
			return
		}
		d.precheck = err.Error()
		return
	}
	if in.Description == "" {
		in.Description = "-"
	}

	exclude := ""
	if d.mode == dayModeEdit {
		exclude = d.tasks()[d.cursor].ID
	}
	dec, err := d.svc.Check(in, exclude)
	if err != nil {
		d.precheck = err.Error()
		return
	}
	if !dec.Accepted {
		d.precheck = string(dec.Reason)
		if dec.Reason == budget.ReasonDailyExceeded {
			d.precheck += fmt.Sprintf(" (%s logged, %s left)", FormatHours(dec.CurrentHours), FormatHours(dec.RemainingHours))
		}
		return
	}
	d.precheckOK = true
	d.precheck = fmt.Sprintf("%s, %s left after saving", FormatHours(dec.Hours), FormatHours(dec.RemainingHours))
}

func (d *Day) writeReport() {
	week, err := report.Build(d.svc, d.employeeID, d.day)
	if err != nil {
		d.err = err
		return
	}
	path, err := report.WriteFile(d.cfg.ReportsOutput, week)
	if err != nil {
		d.err = err
		return
	}
	d.message = fmt.Sprintf("Weekly report written to %s", path)
}

// composeInstant anchors a bare HH:MM clock time to day.
func composeInstant(day, value string) string {
	value = strings.TrimSpace(value)
	if len(value) <= 5 && strings.Contains(value, ":") {
		return day + "T" + value
	}
	return value
}

// formatClock renders t as HH:MM when it falls on day, otherwise as a
// full local timestamp so the form round-trips.
func formatClock(t time.Time, day string) string {
	if budget.DayOf(t) == day {
		return t.Format("15:04")
	}
	return t.Format("2006-01-02T15:04")
}

func (d *Day) View() string {
	var b strings.Builder

	title := "DAY"
	if d.summary != nil {
		title = strings.ToUpper(d.summary.Employee.Name)
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(d.day))
	b.WriteString("\n\n")

	if d.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if d.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", d.err)))
		b.WriteString("\n\n")
		d.err = nil
	}

	if d.message != "" {
		b.WriteString(SuccessStyle.Render(d.message))
		b.WriteString("\n\n")
	}

	if d.summary == nil {
		b.WriteString(HelpStyle.Render("[q] Back"))
		return b.String()
	}

	if d.mode == dayModeAdd || d.mode == dayModeEdit {
		if d.mode == dayModeAdd {
			b.WriteString("New task:\n\n")
		} else {
			b.WriteString("Edit task:\n\n")
		}
		b.WriteString(d.taskForm.view())
		b.WriteString("\n")
		if d.precheck != "" {
			if d.precheckOK {
				b.WriteString(SuccessStyle.Render(d.precheck))
			} else {
				b.WriteString(WarningStyle.Render(d.precheck))
			}
			b.WriteString("\n")
		}
		b.WriteString(HelpStyle.Render("[tab] Next field  [enter] Save  [esc] Cancel"))
		return b.String()
	}

	tasks := d.summary.Tasks
	if d.mode == dayModeDelete && len(tasks) > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"Delete task '%s'? (y/n)",
			tasks[d.cursor].Description,
		)))
		b.WriteString("\n")
		return b.String()
	}

	statsContent := fmt.Sprintf(
		"%s\nLogged: %s  Remaining: %s",
		HoursBar(d.summary.TotalHours),
		FormatHours(d.summary.TotalHours),
		FormatHours(d.summary.RemainingHours),
	)
	b.WriteString(BoxStyle.Render(statsContent))
	b.WriteString("\n\n")

	if len(tasks) == 0 {
		b.WriteString(DimStyle.Render("No tasks on this day."))
		b.WriteString("\n\n")
	} else {
		for i, t := range tasks {
			cursor := "  "
			style := NormalStyle
			if i == d.cursor {
				cursor = "> "
				style = SelectedStyle
			}
			line := fmt.Sprintf("%s%s-%s  %-7s %s",
				cursor,
				t.From.Format("15:04"),
				t.To.Format("15:04"),
				FormatHours(t.Duration),
				t.Description,
			)
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	help := "[a] Add  [e] Edit  [d] Delete  [h/l] Prev/next day  [t] Today  [w] Weekly report  [q] Back"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}
