package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/emilianohg/workday/internal/db"
	"github.com/emilianohg/workday/internal/timesheet"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	conn, err := db.OpenPath(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(New(timesheet.New(conn, time.UTC), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	data, _ := io.ReadAll(resp.Body)
	if len(data) > 0 && data[0] == '{' {
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
	}
	return resp.StatusCode, out
}

func createEmployee(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	status, body := do(t, srv, http.MethodPost, "/api/employees", map[string]string{
		"name":  "Ada",
		"email": email,
	})
	if status != http.StatusCreated {
		t.Fatalf("create employee: %d %v", status, body)
	}
	return body["id"].(string)
}

func TestTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)
	empID := createEmployee(t, srv, "ada@example.com")

	status, task := do(t, srv, http.MethodPost, "/api/tasks", map[string]string{
		"employeeId":  empID,
		"description": "morning",
		"from":        "2024-01-10T09:00:00Z",
		"to":          "2024-01-10T13:00:00Z",
	})
	if status != http.StatusCreated {
		t.Fatalf("create task: %d %v", status, task)
	}
	if task["duration"].(float64) != 4 || task["date"] != "2024-01-10" {
		t.Fatalf("unexpected task: %v", task)
	}

	status, body := do(t, srv, http.MethodPost, "/api/tasks", map[string]string{
		"employeeId":  empID,
		"description": "too much",
		"from":        "2024-01-10T13:00:00Z",
		"to":          "2024-01-10T18:00:00Z",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %v", status, body)
	}
	if body["error"] != "total daily tasks cannot exceed 8 hours" ||
		body["currentHours"].(float64) != 4 || body["remainingHours"].(float64) != 4 {
		t.Fatalf("unexpected budget body: %v", body)
	}

	status, summary := do(t, srv, http.MethodGet, "/api/tasks/summary/"+empID+"/2024-01-10", nil)
	if status != http.StatusOK {
		t.Fatalf("summary: %d %v", status, summary)
	}
	if summary["totalHours"].(float64) != 4 || summary["remainingHours"].(float64) != 4 {
		t.Fatalf("unexpected summary: %v", summary)
	}

	taskID := task["id"].(string)
	status, updated := do(t, srv, http.MethodPut, "/api/tasks/"+taskID, map[string]string{
		"employeeId":  empID,
		"description": "whole day",
		"from":        "2024-01-10T09:00:00Z",
		"to":          "2024-01-10T17:00:00Z",
	})
	if status != http.StatusOK || updated["duration"].(float64) != 8 {
		t.Fatalf("update: %d %v", status, updated)
	}

	status, _ = do(t, srv, http.MethodDelete, "/api/tasks/"+taskID, nil)
	if status != http.StatusOK {
		t.Fatalf("delete: %d", status)
	}
	status, _ = do(t, srv, http.MethodGet, "/api/tasks/"+taskID, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}

func TestCreateTask_TransportChecks(t *testing.T) {
	srv := newTestServer(t)
	empID := createEmployee(t, srv, "ada@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing description", map[string]any{"employeeId": empID, "from": "2024-01-10T09:00:00Z", "to": "2024-01-10T10:00:00Z"}},
		{"bad date", map[string]any{"employeeId": empID, "description": "x", "from": "soon", "to": "2024-01-10T10:00:00Z"}},
		{"inverted window", map[string]any{"employeeId": empID, "description": "x", "from": "2024-01-10T10:00:00Z", "to": "2024-01-10T09:00:00Z"}},
		{"duration is not settable", map[string]any{"employeeId": empID, "description": "x", "from": "2024-01-10T09:00:00Z", "to": "2024-01-10T10:00:00Z", "duration": 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, srv, http.MethodPost, "/api/tasks", tt.body)
			if status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d %v", status, body)
			}
		})
	}

	status, body := do(t, srv, http.MethodPost, "/api/tasks", map[string]string{
		"employeeId":  "ghost",
		"description": "x",
		"from":        "2024-01-10T09:00:00Z",
		"to":          "2024-01-10T10:00:00Z",
	})
	if status != http.StatusNotFound || body["error"] != "employee not found" {
		t.Fatalf("expected employee not found, got %d %v", status, body)
	}
}

func TestCheckTask(t *testing.T) {
	srv := newTestServer(t)
	empID := createEmployee(t, srv, "ada@example.com")

	status, body := do(t, srv, http.MethodPost, "/api/tasks/check", map[string]string{
		"employeeId":  empID,
		"description": "late",
		"from":        "2024-01-10T23:00:00Z",
		"to":          "2024-01-11T02:00:00Z",
	})
	if status != http.StatusOK {
		t.Fatalf("check: %d %v", status, body)
	}
	if body["accepted"] != false || body["reason"] != "start and end time must be on the same day" {
		t.Fatalf("unexpected decision: %v", body)
	}

	status, body = do(t, srv, http.MethodPost, "/api/tasks/check", map[string]string{
		"employeeId":  empID,
		"description": "ok",
		"from":        "2024-01-10T09:00:00Z",
		"to":          "2024-01-10T17:00:00Z",
	})
	if status != http.StatusOK || body["accepted"] != true || body["remainingHours"].(float64) != 0 {
		t.Fatalf("unexpected decision: %d %v", status, body)
	}

	status, list := do(t, srv, http.MethodGet, "/api/tasks/employee/"+empID, nil)
	if status != http.StatusOK || list != nil {
		t.Fatalf("check must not write: %d %v", status, list)
	}
}

func TestEmployeeEndpoints(t *testing.T) {
	srv := newTestServer(t)
	empID := createEmployee(t, srv, "ada@example.com")

	status, body := do(t, srv, http.MethodPost, "/api/employees", map[string]string{
		"name":  "Again",
		"email": "ada@example.com",
	})
	if status != http.StatusBadRequest || body["error"] != "employee with this email already exists" {
		t.Fatalf("duplicate email: %d %v", status, body)
	}

	status, body = do(t, srv, http.MethodPut, "/api/employees/"+empID, map[string]string{
		"email": "new@example.com",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("email must not be updatable: %d %v", status, body)
	}

	status, body = do(t, srv, http.MethodPut, "/api/employees/"+empID, map[string]string{
		"position": "Lead",
	})
	if status != http.StatusOK || body["position"] != "Lead" || body["email"] != "ada@example.com" {
		t.Fatalf("update: %d %v", status, body)
	}

	do(t, srv, http.MethodPost, "/api/tasks", map[string]string{
		"employeeId":  empID,
		"description": "x",
		"from":        "2024-01-10T09:00:00Z",
		"to":          "2024-01-10T10:00:00Z",
	})

	status, body = do(t, srv, http.MethodDelete, "/api/employees/"+empID, nil)
	if status != http.StatusOK || body["tasksDeleted"].(float64) != 1 {
		t.Fatalf("delete: %d %v", status, body)
	}

	status, _ = do(t, srv, http.MethodGet, "/api/employees/"+empID, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}
