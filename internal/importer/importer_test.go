package importer

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emilianohg/workday/internal/budget"
	"github.com/emilianohg/workday/internal/db"
	"github.com/emilianohg/workday/internal/timesheet"
)

func newService(t *testing.T) *timesheet.Service {
	t.Helper()
	conn, err := db.OpenPath(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return timesheet.New(conn, time.UTC)
}

const sample = `
[[task]]
employee = "ada@example.com"
description = "standup"
from = "2024-01-10T09:00"
to = "2024-01-10T14:00"

[[task]]
employee = "ada@example.com"
description = "too long"
from = "2024-01-10T14:00"
to = "2024-01-10T18:00"

[[task]]
employee = "ghost@example.com"
description = "nobody"
from = "2024-01-10T09:00"
to = "2024-01-10T10:00"

[[task]]
employee = "ada@example.com"
description = "wrap up"
from = "2024-01-10T14:00"
to = "2024-01-10T17:00"
`

func TestImport(t *testing.T) {
	svc := newService(t)
	ada, err := svc.CreateEmployee(timesheet.EmployeeInput{Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatal(err)
	}

	f, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	result, err := Import(svc, f, ImportOptions{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Total != 4 || result.Imported != 2 || result.Rejected != 2 {
		t.Fatalf("unexpected counters: %+v", result)
	}

	if result.Failures[0].Index != 2 || !errors.Is(result.Failures[0].Err, timesheet.ErrBudget) {
		t.Errorf("unexpected first failure: %+v", result.Failures[0])
	}
	var be *timesheet.BudgetError
	if errors.As(result.Failures[0].Err, &be) && be.Reason != budget.ReasonDailyExceeded {
		t.Errorf("Reason = %q", be.Reason)
	}
	if result.Failures[1].Index != 3 || !errors.Is(result.Failures[1].Err, timesheet.ErrNotFound) {
		t.Errorf("unexpected second failure: %+v", result.Failures[1])
	}

	sum, err := svc.Summarize(ada.ID, "2024-01-10")
	if err != nil {
		t.Fatal(err)
	}
	if sum.TotalHours != 8 {
		t.Fatalf("TotalHours = %v, want 8", sum.TotalHours)
	}
}

func TestImport_DryRunWritesNothing(t *testing.T) {
	svc := newService(t)
	ada, err := svc.CreateEmployee(timesheet.EmployeeInput{Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatal(err)
	}

	f, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	result, err := Import(svc, f, ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	// Without writes each entry is checked against an empty day.
	if result.Imported != 3 || result.Rejected != 1 {
		t.Fatalf("unexpected counters: %+v", result)
	}

	tasks, err := svc.ListTasksByEmployee(ada.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Fatalf("dry run wrote %d tasks", len(tasks))
	}
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader(`
[[task]]
employee = "a@example.com"
description = "x"
from = "2024-01-10T09:00"
to = "2024-01-10T10:00"
duration = 1.0
`))
	if err == nil || !strings.Contains(err.Error(), "duration") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}
