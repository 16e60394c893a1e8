package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/emilianohg/workday/internal/models"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskSelect = `
	SELECT t.id, t.employee_id, t.description, t.from_at, t.to_at, t.date, t.duration,
	       t.created_at, t.updated_at, e.name, e.email
	FROM tasks t
	JOIN employees e ON e.id = t.employee_id
`

// Create inserts t. Date and Duration must already be derived by the caller.
// Instants are stored in UTC; Date keeps the caller's day bucket.
func (r *TaskRepo) Create(t models.Task) (*models.Task, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO tasks (id, employee_id, description, from_at, to_at, date, duration, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, t.EmployeeID, t.Description, t.From.UTC(), t.To.UTC(), t.Date, t.Duration, now, now)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *TaskRepo) Update(t models.Task) error {
	_, err := r.db.Exec(`
		UPDATE tasks
		SET employee_id = ?, description = ?, from_at = ?, to_at = ?, date = ?, duration = ?, updated_at = ?
		WHERE id = ?
	`, t.EmployeeID, t.Description, t.From.UTC(), t.To.UTC(), t.Date, t.Duration, time.Now().UTC(), t.ID)
	return err
}

func (r *TaskRepo) GetByID(id string) (*models.Task, error) {
	var t models.Task

	err := r.db.QueryRow(taskSelect+"WHERE t.id = ?", id).Scan(
		&t.ID, &t.EmployeeID, &t.Description, &t.From, &t.To, &t.Date, &t.Duration,
		&t.CreatedAt, &t.UpdatedAt, &t.EmployeeName, &t.EmployeeEmail,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// GetAll returns every task, newest first.
func (r *TaskRepo) GetAll() ([]models.Task, error) {
	rows, err := r.db.Query(taskSelect + "ORDER BY t.created_at DESC, t.rowid DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanTasks(rows)
}

// GetByEmployee returns an employee's tasks, latest day first and in
// chronological order within a day.
func (r *TaskRepo) GetByEmployee(employeeID string) ([]models.Task, error) {
	rows, err := r.db.Query(taskSelect+`
		WHERE t.employee_id = ?
		ORDER BY t.date DESC, t.from_at ASC
	`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanTasks(rows)
}

// GetByEmployeeAndDate returns the day bucket the budget check re-scans.
func (r *TaskRepo) GetByEmployeeAndDate(employeeID, date string) ([]models.Task, error) {
	rows, err := r.db.Query(taskSelect+`
		WHERE t.employee_id = ? AND t.date = ?
		ORDER BY t.from_at ASC
	`, employeeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanTasks(rows)
}

// GetByEmployeeAndDateRange returns tasks with from <= date <= to, both
// inclusive YYYY-MM-DD days.
func (r *TaskRepo) GetByEmployeeAndDateRange(employeeID, from, to string) ([]models.Task, error) {
	rows, err := r.db.Query(taskSelect+`
		WHERE t.employee_id = ? AND t.date >= ? AND t.date <= ?
		ORDER BY t.date ASC, t.from_at ASC
	`, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanTasks(rows)
}

func (r *TaskRepo) scanTasks(rows *sql.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.Description, &t.From, &t.To, &t.Date, &t.Duration,
			&t.CreatedAt, &t.UpdatedAt, &t.EmployeeName, &t.EmployeeEmail,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) CountByEmployee(employeeID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM tasks WHERE employee_id = ?", employeeID).Scan(&count)
	return count, err
}

func (r *TaskRepo) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	return err
}
