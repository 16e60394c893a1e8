// Package report renders an employee's week as a markdown document.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/emilianohg/workday/internal/budget"
	"github.com/emilianohg/workday/internal/models"
	"github.com/emilianohg/workday/internal/timesheet"
)

// Day is one row of the weekly report.
type Day struct {
	Date      string
	Weekday   time.Weekday
	Hours     float64
	Remaining float64
	Tasks     []models.Task
}

type Week struct {
	Employee   models.Employee
	Start      string
	End        string
	Days       []Day
	TotalHours float64
}

// WeekBounds returns the Monday and Sunday of the week containing day.
func WeekBounds(day string, loc *time.Location) (string, string, error) {
	t, err := budget.ParseDay(day, loc)
	if err != nil {
		return "", "", err
	}
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)
	return budget.DayOf(monday), budget.DayOf(monday.AddDate(0, 0, 6)), nil
}

// Build collects the week containing day for the employee identified by
// ref (id or email).
func Build(svc *timesheet.Service, ref, day string) (*Week, error) {
	employee, err := svc.ResolveEmployee(ref)
	if err != nil {
		return nil, err
	}
	start, end, err := WeekBounds(day, svc.Location())
	if err != nil {
		return nil, &timesheet.ValidationError{Field: "date", Msg: "date must be in YYYY-MM-DD format"}
	}

	tasks, err := svc.TasksInRange(employee.ID, start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]models.Task)
	for _, t := range tasks {
		byDay[t.Date] = append(byDay[t.Date], t)
	}

	week := &Week{Employee: *employee, Start: start, End: end}
	monday, _ := budget.ParseDay(start, svc.Location())
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		date := budget.DayOf(d)

		var total float64
		for _, t := range byDay[date] {
			total += t.Duration
		}
		week.Days = append(week.Days, Day{
			Date:      date,
			Weekday:   d.Weekday(),
			Hours:     total,
			Remaining: budget.Remaining(total),
			Tasks:     byDay[date],
		})
		week.TotalHours += total
	}

	return week, nil
}

// Render writes the week as markdown.
func Render(w io.Writer, week *Week) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Weekly report: %s\n\n", week.Employee.Name)
	fmt.Fprintf(&sb, "- Email: %s\n", week.Employee.Email)
	if week.Employee.Position != "" {
		fmt.Fprintf(&sb, "- Position: %s\n", week.Employee.Position)
	}
	fmt.Fprintf(&sb, "- Week: %s to %s\n", week.Start, week.End)
	fmt.Fprintf(&sb, "- Total: %sh\n\n", hours(week.TotalHours))

	sb.WriteString("| Day | Date | Hours | Remaining |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, d := range week.Days {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			d.Weekday, d.Date, hours(d.Hours), hours(d.Remaining))
	}

	for _, d := range week.Days {
		if len(d.Tasks) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s %s\n\n", d.Weekday, d.Date)
		for _, t := range d.Tasks {
			fmt.Fprintf(&sb, "- [%sh] %s-%s %s\n",
				hours(t.Duration), t.From.Format("15:04"), t.To.Format("15:04"), t.Description)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Filename is the report's file name within the output directory.
func Filename(week *Week) string {
	name := unsafeName.ReplaceAllString(strings.ToLower(week.Employee.Name), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = week.Employee.ID
	}
	return fmt.Sprintf("%s-%s.md", name, week.Start)
}

// WriteFile renders week into dir and returns the file path.
func WriteFile(dir string, week *Week) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	path := filepath.Join(dir, Filename(week))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	if err := Render(f, week); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

func hours(v float64) string {
	return fmt.Sprintf("%.2f", math.Round(v*100)/100)
}
