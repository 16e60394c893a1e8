package timesheet

import (
	"fmt"
	"math"
	"time"

	"github.com/emilianohg/workday/internal/budget"
	"github.com/emilianohg/workday/internal/repository"
)

type SummaryEmployee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SummaryTask struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	Duration    float64   `json:"duration"`
}

// DailySummary is a read-only view of one employee's day. Hours are
// rounded to two decimals for display.
type DailySummary struct {
	Date           string          `json:"date"`
	Employee       SummaryEmployee `json:"employee"`
	TotalHours     float64         `json:"totalHours"`
	RemainingHours float64         `json:"remainingHours"`
	Tasks          []SummaryTask   `json:"tasks"`
}

// Summarize reports the hours an employee logged on day (YYYY-MM-DD).
func (s *Service) Summarize(employeeID, day string) (*DailySummary, error) {
	if err := checkDay(day); err != nil {
		return nil, err
	}
	e, err := s.GetEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	tasks, err := repository.NewTaskRepo(s.db).GetByEmployeeAndDate(employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load day tasks: %w", err)
	}

	summary := &DailySummary{
		Date:     day,
		Employee: SummaryEmployee{ID: e.ID, Name: e.Name, Email: e.Email},
		Tasks:    make([]SummaryTask, 0, len(tasks)),
	}

	var total float64
	for _, t := range tasks {
		total += t.Duration
		summary.Tasks = append(summary.Tasks, SummaryTask{
			ID:          t.ID,
			Description: t.Description,
			From:        t.From.In(s.loc),
			To:          t.To.In(s.loc),
			Duration:    round2(t.Duration),
		})
	}
	summary.TotalHours = round2(total)
	summary.RemainingHours = round2(budget.Remaining(total))

	return summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
