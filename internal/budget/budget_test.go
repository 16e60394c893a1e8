package budget

import (
	"math"
	"testing"
	"time"

	"github.com/emilianohg/workday/internal/models"
)

func at(day string, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+clock, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func task(id, day, from, to string) models.Task {
	start, end := at(day, from), at(day, to)
	return models.Task{
		ID:       id,
		From:     start,
		To:       end,
		Date:     DayOf(start),
		Duration: end.Sub(start).Hours(),
	}
}

func TestDerive(t *testing.T) {
	span := Derive(at("2024-01-10", "09:00"), at("2024-01-10", "10:20"))
	if span.Day != "2024-01-10" {
		t.Fatalf("Day = %q, want 2024-01-10", span.Day)
	}
	if math.Abs(span.Hours-80.0/60.0) > 1e-12 {
		t.Fatalf("Hours = %v, want %v", span.Hours, 80.0/60.0)
	}
	if !span.SameDay() {
		t.Fatalf("expected same day")
	}
}

func TestDerive_DayComesFromStart(t *testing.T) {
	span := Derive(at("2024-01-10", "23:00"), at("2024-01-11", "02:00"))
	if span.Day != "2024-01-10" {
		t.Fatalf("Day = %q, want 2024-01-10", span.Day)
	}
	if span.EndDay != "2024-01-11" {
		t.Fatalf("EndDay = %q, want 2024-01-11", span.EndDay)
	}
	if span.SameDay() {
		t.Fatalf("expected window to cross days")
	}
}

func TestDerive_EndProjectedIntoStartLocation(t *testing.T) {
	plus2 := time.FixedZone("+02", 2*60*60)
	start := time.Date(2024, 1, 10, 22, 0, 0, 0, plus2)
	// 21:30 UTC is 23:30 at +02, still the same local day as start.
	end := time.Date(2024, 1, 10, 21, 30, 0, 0, time.UTC)

	span := Derive(start, end)
	if !span.SameDay() {
		t.Fatalf("expected same day, got %s / %s", span.Day, span.EndDay)
	}
	if span.Hours != 1.5 {
		t.Fatalf("Hours = %v, want 1.5", span.Hours)
	}
}

func TestValidate(t *testing.T) {
	day := "2024-01-10"

	tests := []struct {
		name      string
		candidate Candidate
		existing  []models.Task
		excludeID string

		accepted  bool
		reason    Reason
		total     float64
		current   float64
		remaining float64
	}{
		{
			name:      "scenario A: full day on empty day",
			candidate: Candidate{at(day, "09:00"), at(day, "17:00")},
			accepted:  true,
			total:     8,
			remaining: 0,
		},
		{
			name:      "scenario B: overflow reports remaining budget",
			candidate: Candidate{at(day, "13:00"), at(day, "18:00")},
			existing:  []models.Task{task("a", day, "09:00", "13:00")},
			reason:    ReasonDailyExceeded,
			current:   4,
			remaining: 4,
		},
		{
			name:      "scenario C: crosses midnight",
			candidate: Candidate{at(day, "23:00"), at("2024-01-11", "02:00")},
			reason:    ReasonCrossDay,
		},
		{
			name:      "scenario D: end before start",
			candidate: Candidate{at(day, "10:00"), at(day, "09:30")},
			reason:    ReasonNonPositive,
		},
		{
			name:      "scenario E: edit excludes its own old window",
			candidate: Candidate{at(day, "13:00"), at(day, "17:00")},
			existing: []models.Task{
				task("edited", day, "08:00", "12:00"),
				task("other", day, "09:00", "13:00"),
			},
			excludeID: "edited",
			accepted:  true,
			total:     8,
			remaining: 0,
		},
		{
			name:      "zero duration",
			candidate: Candidate{at(day, "10:00"), at(day, "10:00")},
			reason:    ReasonNonPositive,
		},
		{
			name:      "single task over eight hours",
			candidate: Candidate{at(day, "08:00"), at(day, "16:01")},
			reason:    ReasonTaskTooLong,
		},
		{
			name:      "cumulative exactly eight",
			candidate: Candidate{at(day, "12:00"), at(day, "15:30")},
			existing: []models.Task{
				task("a", day, "08:00", "10:00"),
				task("b", day, "10:00", "12:30"),
			},
			accepted:  true,
			total:     8,
			remaining: 0,
		},
		{
			name:      "cumulative just over eight",
			candidate: Candidate{at(day, "12:00"), at(day, "12:00").Add(36 * time.Second)},
			existing:  []models.Task{task("a", day, "04:00", "12:00")},
			reason:    ReasonDailyExceeded,
			current:   8,
			remaining: 0,
		},
		{
			name:      "tasks on other days are ignored",
			candidate: Candidate{at(day, "09:00"), at(day, "15:00")},
			existing:  []models.Task{task("a", "2024-01-09", "09:00", "17:00")},
			accepted:  true,
			total:     6,
			remaining: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Validate(tt.candidate, tt.existing, tt.excludeID)
			if d.Accepted != tt.accepted {
				t.Fatalf("Accepted = %v (reason %q), want %v", d.Accepted, d.Reason, tt.accepted)
			}
			if d.Reason != tt.reason {
				t.Fatalf("Reason = %q, want %q", d.Reason, tt.reason)
			}
			if math.Abs(d.TotalHours-tt.total) > 1e-9 {
				t.Errorf("TotalHours = %v, want %v", d.TotalHours, tt.total)
			}
			if math.Abs(d.CurrentHours-tt.current) > 1e-9 {
				t.Errorf("CurrentHours = %v, want %v", d.CurrentHours, tt.current)
			}
			if math.Abs(d.RemainingHours-tt.remaining) > 1e-9 {
				t.Errorf("RemainingHours = %v, want %v", d.RemainingHours, tt.remaining)
			}
		})
	}
}

func TestValidate_BoundaryIsStrict(t *testing.T) {
	day := "2024-01-10"
	existing := []models.Task{task("a", day, "09:00", "11:00")}

	// 2h + 6h = 8.0 is allowed.
	ok := Validate(Candidate{at(day, "11:00"), at(day, "17:00")}, existing, "")
	if !ok.Accepted {
		t.Fatalf("expected 8.0h total to be accepted, got %q", ok.Reason)
	}

	// 2h + 6.01h = 8.01 is not.
	over := Validate(Candidate{at(day, "11:00"), at(day, "17:00").Add(36 * time.Second)}, existing, "")
	if over.Accepted {
		t.Fatalf("expected 8.01h total to be rejected")
	}
	if over.Reason != ReasonDailyExceeded {
		t.Fatalf("Reason = %q", over.Reason)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	day := "2024-01-10"
	existing := []models.Task{task("a", day, "09:00", "12:15")}
	c := Candidate{at(day, "13:00"), at(day, "15:40")}

	first := Validate(c, existing, "")
	second := Validate(c, existing, "")
	if first != second {
		t.Fatalf("decisions differ: %+v vs %+v", first, second)
	}
}

func TestValidate_NoRoundingBeforeComparison(t *testing.T) {
	day := "2024-01-10"
	// 7h59m59s prior; a 2s candidate is 0.0005h over when unrounded.
	existing := []models.Task{{
		ID:   "a",
		From: at(day, "08:00"),
		To:   at(day, "15:59").Add(59 * time.Second),
		Date: day,
	}}
	d := Validate(Candidate{at(day, "16:00"), at(day, "16:00").Add(2 * time.Second)}, existing, "")
	if d.Accepted {
		t.Fatalf("expected rejection without rounding")
	}
}

func TestRemaining(t *testing.T) {
	for _, tt := range []struct{ total, want float64 }{
		{0, 8},
		{4, 4},
		{8, 0},
		{9.5, 0},
	} {
		if got := Remaining(tt.total); got != tt.want {
			t.Errorf("Remaining(%v) = %v, want %v", tt.total, got, tt.want)
		}
	}
}
