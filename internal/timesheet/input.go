package timesheet

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/emilianohg/workday/internal/budget"
)

// TaskInput is a create or update request for a task.
type TaskInput struct {
	EmployeeID  string
	Description string
	From        time.Time
	To          time.Time
}

// EmployeeInput is a create request for an employee.
type EmployeeInput struct {
	Name     string
	Email    string
	Phone    string
	Position string
}

// EmployeePatch updates only the non-nil fields. Email can't be patched.
type EmployeePatch struct {
	Name     *string
	Phone    *string
	Position *string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Accepted instant layouts, tried in order. Layouts without an offset are
// read in the service's location.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseInstant parses an ISO-8601 instant. Values without an offset are
// interpreted in loc; the result is always expressed in loc.
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 instant %q", s)
}

// ParseTaskInput builds a TaskInput from raw strings, reporting which
// field failed to parse.
func ParseTaskInput(employeeID, description, from, to string, loc *time.Location) (TaskInput, error) {
	in := TaskInput{
		EmployeeID:  strings.TrimSpace(employeeID),
		Description: strings.TrimSpace(description),
	}
	if strings.TrimSpace(from) == "" {
		return in, invalidf("from", "from is required")
	}
	if strings.TrimSpace(to) == "" {
		return in, invalidf("to", "to is required")
	}

	var err error
	if in.From, err = ParseInstant(from, loc); err != nil {
		return in, invalidf("from", "from must be a valid ISO-8601 date")
	}
	if in.To, err = ParseInstant(to, loc); err != nil {
		return in, invalidf("to", "to must be a valid ISO-8601 date")
	}
	return in, nil
}

// CheckTaskShape is the coarse transport-level check: required fields and
// an end after the start. The budget validator stays the source of truth
// for the same rules and runs regardless of whether this was called.
func CheckTaskShape(in TaskInput) error {
	if err := checkTaskRequired(in); err != nil {
		return err
	}
	if !in.To.After(in.From) {
		return invalidf("to", "to must be greater than from")
	}
	return nil
}

func checkTaskRequired(in TaskInput) error {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return invalidf("employeeId", "employeeId is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalidf("description", "description is required")
	}
	if in.From.IsZero() {
		return invalidf("from", "from is required")
	}
	if in.To.IsZero() {
		return invalidf("to", "to is required")
	}
	return nil
}

func checkEmployee(in EmployeeInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidf("name", "name is required")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return invalidf("email", "email is required")
	}
	if !emailPattern.MatchString(email) {
		return invalidf("email", "email must be a valid email")
	}
	return nil
}

func checkDay(day string) error {
	if _, err := time.Parse(budget.DayLayout, day); err != nil {
		return invalidf("date", "date must be formatted YYYY-MM-DD")
	}
	return nil
}
