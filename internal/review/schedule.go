package review

import (
	"fmt"
	"strings"
	"time"
)

// Schedule holds the spaced repetition state for a single concept.
type Schedule struct {
	ConceptID     string    `json:"concept_id" validate:"required"`
	IntervalIndex int       `json:"interval_index" validate:"gte=0"`
	DueAt         time.Time `json:"due_at"`
}

// IsDue returns true if the concept is due for review (at or past DueAt).
func (s Schedule) IsDue(now time.Time) bool {
	return !now.Before(s.DueAt)
}

// OverdueDays returns how many days past due the concept is. Returns 0 if not yet due.
func (s Schedule) OverdueDays(now time.Time) float64 {
	if now.Before(s.DueAt) {
		return 0
	}
	return now.Sub(s.DueAt).Hours() / 24.0
}

// DaysUntilDue returns the whole days until the next review, rounding up.
// Returns 0 if already due.
func (s Schedule) DaysUntilDue(now time.Time) int {
	if s.IsDue(now) {
		return 0
	}
	return int(s.DueAt.Sub(now).Hours()/24.0) + 1
}

// Outcome is the result of a completed review.
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
)

// ParseOutcome accepts "pass" or "fail".
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(s))); o {
	case OutcomePass, OutcomeFail:
		return o, nil
	default:
		return "", fmt.Errorf("unknown review outcome %q (want pass or fail)", s)
	}
}
