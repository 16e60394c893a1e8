// Package server exposes the timesheet over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/emilianohg/workday/internal/timesheet"
)

type Server struct {
	svc *timesheet.Service
	log *slog.Logger
	mux *http.ServeMux
}

func New(svc *timesheet.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{svc: svc, log: log, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/employees", s.createEmployee)
	s.mux.HandleFunc("GET /api/employees", s.listEmployees)
	s.mux.HandleFunc("GET /api/employees/{id}", s.getEmployee)
	s.mux.HandleFunc("PUT /api/employees/{id}", s.updateEmployee)
	s.mux.HandleFunc("DELETE /api/employees/{id}", s.deleteEmployee)

	s.mux.HandleFunc("POST /api/tasks", s.createTask)
	s.mux.HandleFunc("POST /api/tasks/check", s.checkTask)
	s.mux.HandleFunc("GET /api/tasks", s.listTasks)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.getTask)
	s.mux.HandleFunc("PUT /api/tasks/{id}", s.updateTask)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)
	s.mux.HandleFunc("GET /api/tasks/employee/{employeeId}", s.listEmployeeTasks)
	s.mux.HandleFunc("GET /api/tasks/summary/{employeeId}/{date}", s.dailySummary)
}

// Handler returns the API with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error          string   `json:"error"`
	CurrentHours   *float64 `json:"currentHours,omitempty"`
	RemainingHours *float64 `json:"remainingHours,omitempty"`
}

// writeError maps the timesheet error taxonomy onto status codes.
// Infrastructure failures are logged and reported generically.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var be *timesheet.BudgetError
	if errors.As(err, &be) {
		body := errorBody{Error: be.Error()}
		if be.HasHours {
			body.CurrentHours = &be.CurrentHours
			body.RemainingHours = &be.RemainingHours
		}
		writeJSON(w, http.StatusBadRequest, body)
		return
	}

	switch {
	case errors.Is(err, timesheet.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, timesheet.ErrValidation), errors.Is(err, timesheet.ErrConflict):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &timesheet.ValidationError{Field: "body", Msg: "invalid JSON body: " + err.Error()}
	}
	return nil
}
