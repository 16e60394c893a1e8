// Package budget enforces the daily hour budget for employee tasks.
//
// Everything here is pure: callers load the employee's tasks for the day
// and hand them in, so the same checks run on the write path and on any
// pre-flight check without touching the store.
package budget

import "time"

// DayLayout is the format of a day bucket.
const DayLayout = "2006-01-02"

// MaxDailyHours caps both a single task and the sum of an employee's tasks
// on one day.
const MaxDailyHours = 8.0

// Span is the derived shape of a task's time window.
type Span struct {
	Hours  float64
	Day    string
	EndDay string
}

// SameDay reports whether the window starts and ends on the same calendar day.
func (s Span) SameDay() bool {
	return s.Day == s.EndDay
}

// Derive computes the duration in hours and the day bucket of a window.
// The day comes from start only, in start's own location; end is projected
// into that location so a window can't dodge the same-day check by carrying
// a different offset.
func Derive(start, end time.Time) Span {
	return Span{
		Hours:  end.Sub(start).Hours(),
		Day:    DayOf(start),
		EndDay: end.In(start.Location()).Format(DayLayout),
	}
}

// DayOf returns the day bucket for an instant.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD day bucket in loc.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, day, loc)
}
