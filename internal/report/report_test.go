package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emilianohg/workday/internal/db"
	"github.com/emilianohg/workday/internal/timesheet"
)

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		day, start, end string
	}{
		{"2024-01-10", "2024-01-08", "2024-01-14"}, // Wednesday
		{"2024-01-08", "2024-01-08", "2024-01-14"}, // Monday
		{"2024-01-14", "2024-01-08", "2024-01-14"}, // Sunday
		{"2024-03-01", "2024-02-26", "2024-03-03"}, // across a leap February
	}
	for _, tt := range tests {
		start, end, err := WeekBounds(tt.day, time.UTC)
		if err != nil {
			t.Fatalf("WeekBounds(%s): %v", tt.day, err)
		}
		if start != tt.start || end != tt.end {
			t.Errorf("WeekBounds(%s) = %s..%s, want %s..%s", tt.day, start, end, tt.start, tt.end)
		}
	}

	if _, _, err := WeekBounds("10-01-2024", time.UTC); err == nil {
		t.Error("expected error for malformed day")
	}
}

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

func addTask(t *testing.T, svc *timesheet.Service, employeeID, desc, from, to string) {
	t.Helper()
	in, err := timesheet.ParseTaskInput(employeeID, desc, from, to, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.CreateTask(in); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
}

func TestBuildAndWrite(t *testing.T) {
	svc := newService(t)
	e, err := svc.CreateEmployee(timesheet.EmployeeInput{Name: "Ada Lovelace", Email: "ada@example.com", Position: "Engineer"})
	if err != nil {
		t.Fatal(err)
	}
	addTask(t, svc, e.ID, "planning", "2024-01-08T09:00", "2024-01-08T11:30")
	addTask(t, svc, e.ID, "build", "2024-01-10T09:00", "2024-01-10T17:00")
	addTask(t, svc, e.ID, "next week", "2024-01-15T09:00", "2024-01-15T10:00")

	week, err := Build(svc, "ada@example.com", "2024-01-12")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if week.Start != "2024-01-08" || week.End != "2024-01-14" || len(week.Days) != 7 {
		t.Fatalf("unexpected week: %+v", week)
	}
	if week.TotalHours != 10.5 {
		t.Fatalf("TotalHours = %v, want 10.5", week.TotalHours)
	}
	if week.Days[0].Hours != 2.5 || week.Days[2].Remaining != 0 || week.Days[6].Remaining != 8 {
		t.Fatalf("unexpected days: %+v", week.Days)
	}

	dir := filepath.Join(t.TempDir(), "reports")
	path, err := WriteFile(dir, week)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if filepath.Base(path) != "ada-lovelace-2024-01-08.md" {
		t.Fatalf("unexpected file name %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"# Weekly report: Ada Lovelace",
		"- Total: 10.50h",
		"| Monday | 2024-01-08 | 2.50 | 5.50 |",
		"- [8.00h] 09:00-17:00 build",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "next week") {
		t.Error("report includes a task from the following week")
	}
}

func TestBuild_UnknownEmployee(t *testing.T) {
	svc := newService(t)
	if _, err := Build(svc, "ghost@example.com", "2024-01-10"); err == nil {
		t.Fatal("expected error for unknown employee")
	}
}
