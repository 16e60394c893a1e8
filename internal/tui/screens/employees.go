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

type employeesMode int

const (
	employeesModeList employeesMode = iota
	employeesModeAdd
	employeesModeEdit
	employeesModeDelete
)

type Employees struct {
	svc    *timesheet.Service
	width  int
	height int

	employees []repository.EmployeeWithStats
	cursor    int
	mode      employeesMode
	addForm   *form
	editForm  *form
	loading   bool
	err       error
	message   string
}

func NewEmployees(svc *timesheet.Service) *Employees {
	return &Employees{
		svc: svc,
		addForm: newForm(
			[]string{"Name", "Email", "Phone", "Position"},
			[]string{"Ada Lovelace", "ada@example.com", "optional", "optional"},
		),
		editForm: newForm(
			[]string{"Name", "Phone", "Position"},
			[]string{"Ada Lovelace", "optional", "optional"},
		),
	}
}

func (e *Employees) SetSize(width, height int) {
	e.width = width
	e.height = height
}

type employeesDataMsg struct {
	employees []repository.EmployeeWithStats
	err       error
}

func (e *Employees) Init() tea.Cmd {
	e.loading = true
	e.mode = employeesModeList
	e.message = ""
	return e.loadData
}

func (e *Employees) loadData() tea.Msg {
	today := budget.DayOf(time.Now().In(e.svc.Location()))
	employees, err := e.svc.EmployeeStats(today)
	return employeesDataMsg{employees: employees, err: err}
}

func (e *Employees) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case employeesDataMsg:
		e.loading = false
		e.err = msg.err
		e.employees = msg.employees
		if e.cursor >= len(e.employees) {
			e.cursor = max(0, len(e.employees)-1)
		}
		return nil

	case RefreshMsg:
		return e.Init()

	case tea.KeyMsg:
		return e.handleKey(msg)
	}

	if f := e.activeForm(); f != nil {
		cmd, _ := f.update(msg)
		return cmd
	}

	return nil
}

func (e *Employees) activeForm() *form {
	switch e.mode {
	case employeesModeAdd:
		return e.addForm
	case employeesModeEdit:
		return e.editForm
	}
	return nil
}

func (e *Employees) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch e.mode {
	case employeesModeList:
		return e.handleListKey(msg)
	case employeesModeAdd, employeesModeEdit:
		return e.handleInputKey(msg)
	case employeesModeDelete:
		return e.handleDeleteKey(msg)
	}
	return nil
}

func (e *Employees) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < len(e.employees)-1 {
			e.cursor++
		}
	case "a":
		e.mode = employeesModeAdd
		e.message = ""
		return e.addForm.reset()
	case "e":
		if len(e.employees) > 0 {
			sel := e.employees[e.cursor]
			e.mode = employeesModeEdit
			e.message = ""
			return e.editForm.reset(sel.Name, sel.Phone, sel.Position)
		}
	case "d":
		if len(e.employees) > 0 {
			e.mode = employeesModeDelete
		}
	case "enter":
		if len(e.employees) > 0 {
			return NavigateToDay(e.employees[e.cursor].ID, "")
		}
	case "q", "esc":
		return Navigate("dashboard")
	}
	return nil
}

func (e *Employees) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if e.mode == employeesModeAdd {
			created, err := e.svc.CreateEmployee(timesheet.EmployeeInput{
				Name:     e.addForm.value(0),
				Email:    e.addForm.value(1),
				Phone:    e.addForm.value(2),
				Position: e.addForm.value(3),
			})
			if err != nil {
				// Stay in the form so the input can be corrected.
				e.err = err
				return nil
			}
			e.message = fmt.Sprintf("Created employee: %s", created.Name)
		} else {
			name, phone, position := e.editForm.value(0), e.editForm.value(1), e.editForm.value(2)
			updated, err := e.svc.UpdateEmployee(e.employees[e.cursor].ID, timesheet.EmployeePatch{
				Name:     &name,
				Phone:    &phone,
				Position: &position,
			})
			if err != nil {
				e.err = err
				return nil
			}
			e.message = fmt.Sprintf("Updated employee: %s", updated.Name)
		}
		e.mode = employeesModeList
		e.addForm.blur()
		e.editForm.blur()
		return e.loadData

	case "esc":
		e.mode = employeesModeList
		e.addForm.blur()
		e.editForm.blur()
		return nil
	}

	cmd, _ := e.activeForm().update(msg)
	return cmd
}

func (e *Employees) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		sel := e.employees[e.cursor]
		removed, err := e.svc.DeleteEmployee(sel.ID)
		if err != nil {
			e.err = err
		} else {
			e.message = fmt.Sprintf("Deleted employee: %s (%d tasks removed)", sel.Name, removed)
		}
		e.mode = employeesModeList
		return e.loadData

	case "n", "N", "esc":
		e.mode = employeesModeList
	}
	return nil
}

func (e *Employees) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("EMPLOYEES"))
	b.WriteString("\n\n")

	if e.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if e.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", e.err)))
		b.WriteString("\n\n")
		e.err = nil
	}

	if e.message != "" {
		b.WriteString(SuccessStyle.Render(e.message))
		b.WriteString("\n\n")
	}

	if e.mode == employeesModeAdd {
		b.WriteString("New employee:\n\n")
		b.WriteString(e.addForm.view())
		b.WriteString(HelpStyle.Render("[tab] Next field  [enter] Save  [esc] Cancel"))
		return b.String()
	}

	if e.mode == employeesModeEdit {
		sel := e.employees[e.cursor]
		b.WriteString(fmt.Sprintf("Edit employee %s:\n\n", DimStyle.Render(sel.Email)))
		b.WriteString(e.editForm.view())
		b.WriteString(HelpStyle.Render("[tab] Next field  [enter] Save  [esc] Cancel"))
		return b.String()
	}

	if e.mode == employeesModeDelete && len(e.employees) > 0 {
		sel := e.employees[e.cursor]
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"Delete employee '%s'? This also deletes their %d tasks. (y/n)",
			sel.Name,
			sel.TaskCount,
		)))
		b.WriteString("\n")
		return b.String()
	}

	if len(e.employees) == 0 {
		b.WriteString(DimStyle.Render("No employees yet."))
		b.WriteString("\n\n")
	} else {
		for i, emp := range e.employees {
			cursor := "  "
			style := NormalStyle
			if i == e.cursor {
				cursor = "> "
				style = SelectedStyle
			}

			line := fmt.Sprintf("%s%s <%s> (%d tasks)", cursor, emp.Name, emp.Email, emp.TaskCount)
			if emp.Position != "" {
				line += " - " + emp.Position
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	help := "[a] Add  [e] Edit  [d] Delete  [enter] View day  [q] Back"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}
