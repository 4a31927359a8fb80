// Package weakness classifies concepts by review urgency and ranks them
// most-urgent first.
package weakness

import (
	"sort"
	"time"

	"github.com/abhisek/studycore/internal/errs"
)

// Classification thresholds. A concept is high if it is failing or stale,
// medium if it is shaky or getting stale, otherwise low.
const (
	HighRateBelow   = 50.0
	MediumRateBelow = 70.0
	HighStaleDays   = 7.0
	MediumStaleDays = 3.0
)

// Assessment is a concept annotated with its query-time urgency.
type Assessment struct {
	Concept           Concept `json:"concept"`
	Urgency           Urgency `json:"urgency"`
	DaysSincePractice float64 `json:"days_since_practice"`
}

// Classify returns the concept's urgency at now. The most urgent matching
// class wins.
func Classify(c Concept, now time.Time) (Urgency, error) {
	if err := errs.ValidateStruct(c); err != nil {
		return 0, err
	}
	return classify(c.SuccessRate, c.DaysSincePractice(now)), nil
}

func classify(rate, days float64) Urgency {
	switch {
	case rate < HighRateBelow || days >= HighStaleDays:
		return UrgencyHigh
	case rate < MediumRateBelow || days >= MediumStaleDays:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// Assess classifies every concept and returns them in priority order:
// urgency descending, days since practice descending, success rate
// ascending. Remaining ties keep input order. The input is not modified.
func Assess(concepts []Concept, now time.Time) ([]Assessment, error) {
	out := make([]Assessment, len(concepts))
	for i, c := range concepts {
		if err := errs.ValidateStruct(c); err != nil {
			return nil, err
		}
		days := c.DaysSincePractice(now)
		out[i] = Assessment{
			Concept:           c,
			Urgency:           classify(c.SuccessRate, days),
			DaysSincePractice: days,
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Urgency != b.Urgency {
			return a.Urgency > b.Urgency
		}
		if a.DaysSincePractice != b.DaysSincePractice {
			return a.DaysSincePractice > b.DaysSincePractice
		}
		return a.Concept.SuccessRate < b.Concept.SuccessRate
	})
	return out, nil
}

// Rank returns a new slice of the concepts ordered most urgent first.
func Rank(concepts []Concept, now time.Time) ([]Concept, error) {
	assessed, err := Assess(concepts, now)
	if err != nil {
		return nil, err
	}
	ranked := make([]Concept, len(assessed))
	for i, a := range assessed {
		ranked[i] = a.Concept
	}
	return ranked, nil
}

// Positions maps each concept id in a ranking to its index. The first
// occurrence wins if an id repeats.
func Positions(ranking []Concept) map[string]int {
	pos := make(map[string]int, len(ranking))
	for i, c := range ranking {
		if _, ok := pos[c.ID]; !ok {
			pos[c.ID] = i
		}
	}
	return pos
}
