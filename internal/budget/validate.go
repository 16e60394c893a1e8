package budget

import (
	"time"

	"github.com/emilianohg/workday/internal/models"
)

// Reason is the machine-readable cause of a rejected candidate.
type Reason string

const (
	ReasonNonPositive   Reason = "end time must be after start time"
	ReasonCrossDay      Reason = "start and end time must be on the same day"
	ReasonTaskTooLong   Reason = "task duration cannot exceed 8 hours"
	ReasonDailyExceeded Reason = "total daily tasks cannot exceed 8 hours"
)

// Candidate is a task window about to be created or edited.
type Candidate struct {
	From time.Time
	To   time.Time
}

// Decision is the outcome of Validate.
//
// On accept, Hours, TotalHours and RemainingHours are set. On a
// ReasonDailyExceeded reject, CurrentHours and RemainingHours describe the
// budget left before the candidate.
type Decision struct {
	Accepted       bool
	Reason         Reason
	Day            string
	Hours          float64
	TotalHours     float64
	CurrentHours   float64
	RemainingHours float64
}

// Validate checks a candidate against the employee's tasks for the
// candidate's day. excludeID names the task being edited, whose stored
// duration must not count against its own new window; pass "" on create.
//
// existing may contain tasks from other days; only those in the candidate's
// day bucket are summed.
func Validate(c Candidate, existing []models.Task, excludeID string) Decision {
	span := Derive(c.From, c.To)
	d := Decision{Day: span.Day, Hours: span.Hours}

	if span.Hours <= 0 {
		d.Reason = ReasonNonPositive
		return d
	}
	if !span.SameDay() {
		d.Reason = ReasonCrossDay
		return d
	}
	if span.Hours > MaxDailyHours {
		d.Reason = ReasonTaskTooLong
		return d
	}

	prior := PriorTotal(existing, span.Day, excludeID)
	if prior+span.Hours > MaxDailyHours {
		d.Reason = ReasonDailyExceeded
		d.CurrentHours = prior
		d.RemainingHours = Remaining(prior)
		return d
	}

	d.Accepted = true
	d.TotalHours = prior + span.Hours
	d.RemainingHours = MaxDailyHours - d.TotalHours
	return d
}

// PriorTotal sums the durations of tasks on day, skipping excludeID.
// Durations are recomputed from each task's window rather than trusted
// from the stored column.
func PriorTotal(tasks []models.Task, day, excludeID string) float64 {
	var total float64
	for _, t := range tasks {
		if excludeID != "" && t.ID == excludeID {
			continue
		}
		taskDay := t.Date
		if taskDay == "" {
			taskDay = DayOf(t.From)
		}
		if taskDay != day {
			continue
		}
		total += t.To.Sub(t.From).Hours()
	}
	return total
}

// Remaining is the budget left after total hours, floored at zero.
func Remaining(total float64) float64 {
	if total >= MaxDailyHours {
		return 0
	}
	return MaxDailyHours - total
}
