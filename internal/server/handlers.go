package server

import (
	"net/http"

	"github.com/emilianohg/workday/internal/budget"
	"github.com/emilianohg/workday/internal/models"
	"github.com/emilianohg/workday/internal/timesheet"
)

type employeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
}

type employeeUpdateRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Position *string `json:"position"`
}

type taskRequest struct {
	EmployeeID  string `json:"employeeId"`
	Description string `json:"description"`
	From        string `json:"from"`
	To          string `json:"to"`
}

type checkRequest struct {
	taskRequest
	ExcludeTaskID string `json:"excludeTaskId"`
}

type checkResponse struct {
	Accepted       bool    `json:"accepted"`
	Reason         string  `json:"reason,omitempty"`
	Date           string  `json:"date"`
	Duration       float64 `json:"duration"`
	TotalHours     float64 `json:"totalHours"`
	CurrentHours   float64 `json:"currentHours"`
	RemainingHours float64 `json:"remainingHours"`
}

type deleteResponse struct {
	Message      string `json:"message"`
	TasksDeleted *int   `json:"tasksDeleted,omitempty"`
}

func (s *Server) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := s.svc.CreateEmployee(timesheet.EmployeeInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Position: req.Position,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.svc.ListEmployees()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) getEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.GetEmployee(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) updateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := s.svc.UpdateEmployee(r.PathValue("id"), timesheet.EmployeePatch{
		Name:     req.Name,
		Phone:    req.Phone,
		Position: req.Position,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.DeleteEmployee(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{
		Message:      "Employee deleted successfully",
		TasksDeleted: &removed,
	})
}

// parseTask runs the coarse transport checks shared by create, update and
// check. The service re-validates the window authoritatively.
func (s *Server) parseTask(req taskRequest) (timesheet.TaskInput, error) {
	in, err := timesheet.ParseTaskInput(req.EmployeeID, req.Description, req.From, req.To, s.svc.Location())
	if err != nil {
		return in, err
	}
	if err := timesheet.CheckTaskShape(in); err != nil {
		return in, err
	}
	return in, nil
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := s.parseTask(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	task, _, err := s.svc.CreateTask(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := s.parseTask(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	task, _, err := s.svc.UpdateTask(r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) checkTask(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	// Only parsing here: an inverted window should come back as a
	// decision, not a shape error.
	in, err := timesheet.ParseTaskInput(req.EmployeeID, req.Description, req.From, req.To, s.svc.Location())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.svc.Check(in, req.ExcludeTaskID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, decisionResponse(d))
}

func decisionResponse(d budget.Decision) checkResponse {
	return checkResponse{
		Accepted:       d.Accepted,
		Reason:         string(d.Reason),
		Date:           d.Day,
		Duration:       d.Hours,
		TotalHours:     d.TotalHours,
		CurrentHours:   d.CurrentHours,
		RemainingHours: d.RemainingHours,
	}
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTask(r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Message: "Task deleted successfully"})
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.svc.GetTask(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.ListTasks()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeTasks(w, tasks)
}

func (s *Server) listEmployeeTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.ListTasksByEmployee(r.PathValue("employeeId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeTasks(w, tasks)
}

func writeTasks(w http.ResponseWriter, tasks []models.Task) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) dailySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Summarize(r.PathValue("employeeId"), r.PathValue("date"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
