package timesheet

import (
	"errors"
	"fmt"

	"github.com/emilianohg/workday/internal/budget"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
	ErrBudget     = errors.New("budget violation")
	ErrConflict   = errors.New("conflict")
)

// NotFoundError names the missing entity, e.g. "employee" or "task".
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return e.Entity + " not found"
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError is a malformed input caught before any budget logic runs.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// BudgetError is a rejected candidate. For the cumulative case HasHours is
// set and CurrentHours/RemainingHours tell the caller how much of the day
// is left.
type BudgetError struct {
	Reason         budget.Reason
	CurrentHours   float64
	RemainingHours float64
	HasHours       bool
}

func (e *BudgetError) Error() string {
	if e == nil {
		return ""
	}
	return string(e.Reason)
}

func (e *BudgetError) Unwrap() error { return ErrBudget }

func budgetError(d budget.Decision) error {
	be := &BudgetError{Reason: d.Reason}
	if d.Reason == budget.ReasonDailyExceeded {
		be.HasHours = true
		be.CurrentHours = d.CurrentHours
		be.RemainingHours = d.RemainingHours
	}
	return be
}

// ConflictError reports a uniqueness violation such as a reused email.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	if e == nil {
		return ""
	}
	return e.Msg
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
