package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/emilianohg/workday/internal/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so repos can run inside
// a caller's transaction.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type EmployeeRepo struct {
	db DBTX
}

func NewEmployeeRepo(db DBTX) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

const employeeColumns = "id, name, email, phone, position, created_at, updated_at"

func (r *EmployeeRepo) Create(name, email, phone, position string) (*models.Employee, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO employees (id, name, email, phone, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, name, email, phone, position, now, now)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *EmployeeRepo) GetByID(id string) (*models.Employee, error) {
	return r.getOne("SELECT "+employeeColumns+" FROM employees WHERE id = ?", id)
}

func (r *EmployeeRepo) GetByEmail(email string) (*models.Employee, error) {
	return r.getOne("SELECT "+employeeColumns+" FROM employees WHERE email = ?", email)
}

func (r *EmployeeRepo) getOne(query string, arg any) (*models.Employee, error) {
	var e models.Employee
	err := r.db.QueryRow(query, arg).Scan(
		&e.ID, &e.Name, &e.Email, &e.Phone, &e.Position, &e.CreatedAt, &e.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetAll returns every employee, newest first.
func (r *EmployeeRepo) GetAll() ([]models.Employee, error) {
	rows, err := r.db.Query("SELECT " + employeeColumns + " FROM employees ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Position, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update changes the mutable fields. Email is deliberately not among them.
func (r *EmployeeRepo) Update(id, name, phone, position string) error {
	_, err := r.db.Exec(`
		UPDATE employees SET name = ?, phone = ?, position = ?, updated_at = ?
		WHERE id = ?
	`, name, phone, position, time.Now().UTC(), id)
	return err
}

func (r *EmployeeRepo) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM employees WHERE id = ?", id)
	return err
}

type EmployeeWithStats struct {
	models.Employee
	TaskCount int
	DayHours  float64
}

// GetAllWithStats lists employees with their total task count and the
// hours logged on day.
func (r *EmployeeRepo) GetAllWithStats(day string) ([]EmployeeWithStats, error) {
	query := `
		SELECT
			e.id, e.name, e.email, e.phone, e.position, e.created_at, e.updated_at,
			COUNT(t.id) as task_count,
			COALESCE(SUM(CASE WHEN t.date = ? THEN t.duration ELSE 0 END), 0) as day_hours
		FROM employees e
		LEFT JOIN tasks t ON t.employee_id = e.id
		GROUP BY e.id
		ORDER BY e.name
	`
	rows, err := r.db.Query(query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []EmployeeWithStats
	for rows.Next() {
		var e EmployeeWithStats
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Email, &e.Phone, &e.Position, &e.CreatedAt, &e.UpdatedAt,
			&e.TaskCount, &e.DayHours,
		); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
