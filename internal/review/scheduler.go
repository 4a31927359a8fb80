// Package review schedules spaced repetition reviews on a fixed interval
// ladder and lists what is due.
package review

import (
	"sort"
	"time"

	"github.com/abhisek/studycore/internal/errs"
	"github.com/abhisek/studycore/internal/weakness"
)

// Scheduler computes schedule transitions on a fixed ladder. It holds no
// per-concept state and is safe for concurrent use.
type Scheduler struct {
	ladder Ladder
}

// NewScheduler creates a scheduler for ladder. The ladder is copied.
func NewScheduler(ladder Ladder) (*Scheduler, error) {
	if err := ladder.Validate(); err != nil {
		return nil, err
	}
	l := make(Ladder, len(ladder))
	copy(l, ladder)
	return &Scheduler{ladder: l}, nil
}

var defaultScheduler = &Scheduler{ladder: DefaultLadder}

// Ladder returns a copy of the scheduler's ladder.
func (s *Scheduler) Ladder() Ladder {
	l := make(Ladder, len(s.ladder))
	copy(l, s.ladder)
	return l
}

// Start returns the first schedule for a concept practiced at now.
func (s *Scheduler) Start(conceptID string, now time.Time) (Schedule, error) {
	if conceptID == "" {
		return Schedule{}, errs.Invalid("concept_id", "is required")
	}
	return Schedule{
		ConceptID:     conceptID,
		IntervalIndex: 0,
		DueAt:         now.AddDate(0, 0, s.ladder[0]),
	}, nil
}

// NextDue returns the schedule after a review with the given outcome.
// A pass climbs one rung (clamped at the top); a fail restarts the ladder.
func (s *Scheduler) NextDue(sched Schedule, outcome Outcome, now time.Time) (Schedule, error) {
	if err := errs.ValidateStruct(sched); err != nil {
		return Schedule{}, err
	}

	next := Schedule{ConceptID: sched.ConceptID}
	switch outcome {
	case OutcomePass:
		next.IntervalIndex = s.ladder.Clamp(sched.IntervalIndex + 1)
	case OutcomeFail:
		next.IntervalIndex = 0
	default:
		return Schedule{}, errs.Invalid("outcome", "must be pass or fail, got %q", outcome)
	}
	next.DueAt = now.AddDate(0, 0, s.ladder[next.IntervalIndex])
	return next, nil
}

// DueToday returns every schedule due at now, overdue ones included.
//
// When concepts is non-empty the result follows the weakness ranking of
// those concepts; schedules for concepts not in the list come after,
// ordered by DueAt. Without concepts the order is DueAt ascending.
// Ties fall back to concept id.
func (s *Scheduler) DueToday(schedules []Schedule, now time.Time, concepts []weakness.Concept) ([]Schedule, error) {
	var due []Schedule
	for _, sc := range schedules {
		if sc.IsDue(now) {
			due = append(due, sc)
		}
	}

	var pos map[string]int
	if len(concepts) > 0 {
		ranked, err := weakness.Rank(concepts, now)
		if err != nil {
			return nil, err
		}
		pos = weakness.Positions(ranked)
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if pos != nil {
			pa, okA := pos[a.ConceptID]
			pb, okB := pos[b.ConceptID]
			switch {
			case okA && okB && pa != pb:
				return pa < pb
			case okA != okB:
				return okA
			}
		}
		if !a.DueAt.Equal(b.DueAt) {
			return a.DueAt.Before(b.DueAt)
		}
		return a.ConceptID < b.ConceptID
	})
	return due, nil
}

// Start uses the default ladder.
func Start(conceptID string, now time.Time) (Schedule, error) {
	return defaultScheduler.Start(conceptID, now)
}

// NextDue uses the default ladder.
func NextDue(sched Schedule, outcome Outcome, now time.Time) (Schedule, error) {
	return defaultScheduler.NextDue(sched, outcome, now)
}

// DueToday lists due schedules; see Scheduler.DueToday.
func DueToday(schedules []Schedule, now time.Time, concepts []weakness.Concept) ([]Schedule, error) {
	return defaultScheduler.DueToday(schedules, now, concepts)
}
