// Package streak tracks consecutive days of study activity.
package streak

import (
	"github.com/abhisek/studycore/internal/errs"
)

// State is a learner's streak counters. Invariants:
// LongestStreak >= CurrentStreak and TotalActiveDays >= CurrentStreak.
type State struct {
	CurrentStreak   int   `json:"current_streak" validate:"gte=0"`
	LongestStreak   int   `json:"longest_streak" validate:"gte=0,gtefield=CurrentStreak"`
	TotalActiveDays int   `json:"total_active_days" validate:"gte=0,gtefield=CurrentStreak"`
	LastActiveDate  *Date `json:"last_active_date,omitempty"`
}

// Transition names what a recorded activity did to the state.
type Transition string

const (
	TransitionFirst    Transition = "first"    // first ever active day
	TransitionSameDay  Transition = "same-day" // already counted, no change
	TransitionExtended Transition = "extended" // consecutive day
	TransitionReset    Transition = "reset"    // gap of more than one day
)

// Validate checks the counter invariants.
func (s State) Validate() error {
	if err := errs.ValidateStruct(s); err != nil {
		return err
	}
	if s.LastActiveDate == nil && s.CurrentStreak > 0 {
		return errs.Invalid("last_active_date", "is required when current_streak is %d", s.CurrentStreak)
	}
	return nil
}

// RecordActivity returns the state after activity on day.
func RecordActivity(s State, day Date) (State, error) {
	next, _, err := Record(s, day)
	return next, err
}

// Record is RecordActivity that also reports the transition taken.
//
// An activity earlier than LastActiveDate is rejected with an
// *errs.OrderingError and the input state is returned unchanged.
func Record(s State, day Date) (State, Transition, error) {
	if err := s.Validate(); err != nil {
		return s, "", err
	}
	if day.IsZero() {
		return s, "", errs.Invalid("activity_date", "is required")
	}

	next := s
	var tr Transition
	if s.LastActiveDate == nil {
		next.CurrentStreak = 1
		tr = TransitionFirst
	} else {
		switch gap := day.DaysSince(*s.LastActiveDate); {
		case gap < 0:
			return s, "", &errs.OrderingError{
				Entity: "streak",
				Last:   s.LastActiveDate.String(),
				Got:    day.String(),
			}
		case gap == 0:
			return s, TransitionSameDay, nil
		case gap == 1:
			next.CurrentStreak = s.CurrentStreak + 1
			tr = TransitionExtended
		default:
			next.CurrentStreak = 1
			tr = TransitionReset
		}
	}

	next.LongestStreak = max(s.LongestStreak, next.CurrentStreak)
	next.TotalActiveDays = s.TotalActiveDays + 1
	d := day
	next.LastActiveDate = &d
	return next, tr, nil
}

// ActiveOn reports whether activity was already recorded for day.
func (s State) ActiveOn(day Date) bool {
	return s.LastActiveDate != nil && *s.LastActiveDate == day
}

// AtRisk reports whether the streak survives only if there is activity
// today: the last active day was yesterday.
func (s State) AtRisk(today Date) bool {
	return s.LastActiveDate != nil && s.CurrentStreak > 0 && today.DaysSince(*s.LastActiveDate) == 1
}

// CurrentAsOf returns the streak length a learner would see on today:
// zero once a whole day has been missed.
func (s State) CurrentAsOf(today Date) int {
	if s.LastActiveDate == nil {
		return 0
	}
	if gap := today.DaysSince(*s.LastActiveDate); gap > 1 {
		return 0
	}
	return s.CurrentStreak
}
