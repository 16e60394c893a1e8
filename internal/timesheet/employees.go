package timesheet

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/emilianohg/workday/internal/models"
	"github.com/emilianohg/workday/internal/repository"
)

func (s *Service) CreateEmployee(in EmployeeInput) (*models.Employee, error) {
	if err := checkEmployee(in); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(in.Email)

	employees := repository.NewEmployeeRepo(s.db)
	existing, err := employees.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Msg: "employee with this email already exists"}
	}

	e, err := employees.Create(
		strings.TrimSpace(in.Name),
		email,
		strings.TrimSpace(in.Phone),
		strings.TrimSpace(in.Position),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

func (s *Service) GetEmployee(id string) (*models.Employee, error) {
	e, err := repository.NewEmployeeRepo(s.db).GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	if e == nil {
		return nil, &NotFoundError{Entity: "employee"}
	}
	return e, nil
}

// ResolveEmployee looks ref up as an id first, then as an email.
func (s *Service) ResolveEmployee(ref string) (*models.Employee, error) {
	ref = strings.TrimSpace(ref)
	employees := repository.NewEmployeeRepo(s.db)
	e, err := employees.GetByID(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	if e == nil && strings.Contains(ref, "@") {
		if e, err = employees.GetByEmail(ref); err != nil {
			return nil, fmt.Errorf("failed to load employee: %w", err)
		}
	}
	if e == nil {
		return nil, &NotFoundError{Entity: "employee"}
	}
	return e, nil
}

// ListEmployees returns every employee, newest first.
func (s *Service) ListEmployees() ([]models.Employee, error) {
	employees, err := repository.NewEmployeeRepo(s.db).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// EmployeeStats lists employees by name with the hours they logged on day.
func (s *Service) EmployeeStats(day string) ([]repository.EmployeeWithStats, error) {
	if err := checkDay(day); err != nil {
		return nil, err
	}
	stats, err := repository.NewEmployeeRepo(s.db).GetAllWithStats(day)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee stats: %w", err)
	}
	return stats, nil
}

// UpdateEmployee applies patch. The email is fixed at creation.
func (s *Service) UpdateEmployee(id string, patch EmployeePatch) (*models.Employee, error) {
	e, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalidf("name", "name must not be empty")
		}
		e.Name = name
	}
	if patch.Phone != nil {
		e.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Position != nil {
		e.Position = strings.TrimSpace(*patch.Position)
	}

	employees := repository.NewEmployeeRepo(s.db)
	if err := employees.Update(id, e.Name, e.Phone, e.Position); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return s.GetEmployee(id)
}

// DeleteEmployee removes the employee together with all of its tasks and
// returns how many tasks went with it.
func (s *Service) DeleteEmployee(id string) (int, error) {
	var removed int
	err := s.withTx(func(tx *sql.Tx) error {
		employees := repository.NewEmployeeRepo(tx)
		e, err := employees.GetByID(id)
		if err != nil {
			return fmt.Errorf("failed to load employee: %w", err)
		}
		if e == nil {
			return &NotFoundError{Entity: "employee"}
		}

		removed, err = repository.NewTaskRepo(tx).CountByEmployee(id)
		if err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}
		if err := employees.Delete(id); err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
