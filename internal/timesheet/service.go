// Package timesheet is the write path and reporting layer for employees
// and their tasks. Every task mutation re-reads the employee's day bucket
// and runs it through the budget validator before anything is written.
package timesheet

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emilianohg/workday/internal/budget"
	"github.com/emilianohg/workday/internal/models"
	"github.com/emilianohg/workday/internal/repository"
)

type Service struct {
	db    *sql.DB
	loc   *time.Location
	locks *dayLocks
}

// New returns a Service over db. Day buckets are computed in loc.
func New(db *sql.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		db:    db,
		loc:   loc,
		locks: newDayLocks(),
	}
}

// Location is the zone day buckets are computed in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// CreateTask validates in against the employee's day and stores it.
// The returned decision carries the day's new total and remaining hours.
func (s *Service) CreateTask(in TaskInput) (*models.Task, budget.Decision, error) {
	if err := checkTaskRequired(in); err != nil {
		return nil, budget.Decision{}, err
	}
	from, to := in.From.In(s.loc), in.To.In(s.loc)
	day := budget.DayOf(from)

	unlock := s.locks.Lock(dayKey(in.EmployeeID, day))
	defer unlock()

	var created *models.Task
	var decision budget.Decision
	err := s.withTx(func(tx *sql.Tx) error {
		d, err := s.decide(tx, in.EmployeeID, from, to, "")
		if err != nil {
			return err
		}
		decision = d

		created, err = repository.NewTaskRepo(tx).Create(models.Task{
			EmployeeID:  in.EmployeeID,
			Description: strings.TrimSpace(in.Description),
			From:        from,
			To:          to,
			Date:        d.Day,
			Duration:    d.Hours,
		})
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, decision, err
	}

	s.localize(created)
	return created, decision, nil
}

// UpdateTask replaces task id's fields with in. The task's own stored
// window is excluded from the day total it is checked against.
func (s *Service) UpdateTask(id string, in TaskInput) (*models.Task, budget.Decision, error) {
	if err := checkTaskRequired(in); err != nil {
		return nil, budget.Decision{}, err
	}

	current, err := repository.NewTaskRepo(s.db).GetByID(id)
	if err != nil {
		return nil, budget.Decision{}, fmt.Errorf("failed to load task: %w", err)
	}
	if current == nil {
		return nil, budget.Decision{}, &NotFoundError{Entity: "task"}
	}

	from, to := in.From.In(s.loc), in.To.In(s.loc)
	day := budget.DayOf(from)

	// Lock the bucket the task leaves as well as the one it joins.
	unlock := s.locks.Lock(
		dayKey(current.EmployeeID, current.Date),
		dayKey(in.EmployeeID, day),
	)
	defer unlock()

	var updated *models.Task
	var decision budget.Decision
	err = s.withTx(func(tx *sql.Tx) error {
		tasks := repository.NewTaskRepo(tx)

		// Re-read under the lock; it may have been deleted meanwhile.
		existing, err := tasks.GetByID(id)
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}
		if existing == nil {
			return &NotFoundError{Entity: "task"}
		}

		d, err := s.decide(tx, in.EmployeeID, from, to, id)
		if err != nil {
			return err
		}
		decision = d

		err = tasks.Update(models.Task{
			ID:          id,
			EmployeeID:  in.EmployeeID,
			Description: strings.TrimSpace(in.Description),
			From:        from,
			To:          to,
			Date:        d.Day,
			Duration:    d.Hours,
		})
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		updated, err = tasks.GetByID(id)
		return err
	})
	if err != nil {
		return nil, decision, err
	}

	s.localize(updated)
	return updated, decision, nil
}

// Check runs the budget validator without writing. excludeID is the task
// being edited, or "" for a new task. A rejected candidate is reported in
// the decision, not as an error.
func (s *Service) Check(in TaskInput, excludeID string) (budget.Decision, error) {
	if err := checkTaskRequired(in); err != nil {
		return budget.Decision{}, err
	}
	from, to := in.From.In(s.loc), in.To.In(s.loc)

	d, err := s.decide(s.db, in.EmployeeID, from, to, excludeID)
	if err != nil {
		var be *BudgetError
		if errors.As(err, &be) {
			return d, nil
		}
		return budget.Decision{}, err
	}
	return d, nil
}

// decide resolves the employee, loads the candidate's day bucket and
// validates against it. Rejections come back as *BudgetError alongside
// the decision.
func (s *Service) decide(q repository.DBTX, employeeID string, from, to time.Time, excludeID string) (budget.Decision, error) {
	employee, err := repository.NewEmployeeRepo(q).GetByID(employeeID)
	if err != nil {
		return budget.Decision{}, fmt.Errorf("failed to load employee: %w", err)
	}
	if employee == nil {
		return budget.Decision{}, &NotFoundError{Entity: "employee"}
	}

	existing, err := repository.NewTaskRepo(q).GetByEmployeeAndDate(employeeID, budget.DayOf(from))
	if err != nil {
		return budget.Decision{}, fmt.Errorf("failed to load day tasks: %w", err)
	}

	d := budget.Validate(budget.Candidate{From: from, To: to}, existing, excludeID)
	if !d.Accepted {
		return d, budgetError(d)
	}
	return d, nil
}

func (s *Service) DeleteTask(id string) error {
	tasks := repository.NewTaskRepo(s.db)
	existing, err := tasks.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to load task: %w", err)
	}
	if existing == nil {
		return &NotFoundError{Entity: "task"}
	}
	if err := tasks.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *Service) GetTask(id string) (*models.Task, error) {
	t, err := repository.NewTaskRepo(s.db).GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if t == nil {
		return nil, &NotFoundError{Entity: "task"}
	}
	s.localize(t)
	return t, nil
}

// ListTasks returns every task, newest first.
func (s *Service) ListTasks() ([]models.Task, error) {
	tasks, err := repository.NewTaskRepo(s.db).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return s.localizeAll(tasks), nil
}

// ListTasksByEmployee returns an employee's tasks, latest day first.
func (s *Service) ListTasksByEmployee(employeeID string) ([]models.Task, error) {
	if _, err := s.GetEmployee(employeeID); err != nil {
		return nil, err
	}
	tasks, err := repository.NewTaskRepo(s.db).GetByEmployee(employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return s.localizeAll(tasks), nil
}

// TasksInRange returns an employee's tasks between two inclusive days.
func (s *Service) TasksInRange(employeeID, fromDay, toDay string) ([]models.Task, error) {
	if err := checkDay(fromDay); err != nil {
		return nil, err
	}
	if err := checkDay(toDay); err != nil {
		return nil, err
	}
	if _, err := s.GetEmployee(employeeID); err != nil {
		return nil, err
	}
	tasks, err := repository.NewTaskRepo(s.db).GetByEmployeeAndDateRange(employeeID, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return s.localizeAll(tasks), nil
}

func (s *Service) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *Service) localize(t *models.Task) {
	if t == nil {
		return
	}
	t.From = t.From.In(s.loc)
	t.To = t.To.In(s.loc)
}

func (s *Service) localizeAll(tasks []models.Task) []models.Task {
	for i := range tasks {
		s.localize(&tasks[i])
	}
	return tasks
}
