// Package mission orders the practice mission catalog into a work queue for
// a learner's tier and current weak spots.
package mission

import (
	"sort"

	"github.com/abhisek/studycore/internal/errs"
	"github.com/abhisek/studycore/internal/proficiency"
	"github.com/abhisek/studycore/internal/weakness"
)

// Mission is a static catalog entry.
type Mission struct {
	ID               string           `json:"id" yaml:"id" validate:"required"`
	ConceptID        string           `json:"concept_id" yaml:"concept_id" validate:"required"`
	Tier             proficiency.Tier `json:"tier" yaml:"tier"`
	Title            string           `json:"title,omitempty" yaml:"title,omitempty"`
	EstimatedMinutes int              `json:"estimated_minutes" yaml:"estimated_minutes" validate:"gte=0"`
	Steps            []string         `json:"steps" yaml:"steps"`
}

type options struct {
	limit int
}

// Option configures Rank.
type Option func(*options)

// WithLimit keeps at most n missions. Zero or less means no limit.
func WithLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// Queue is a ranked mission list.
type Queue struct {
	Missions []Mission `json:"missions"`

	// Unranked counts missions kept in the queue whose concept was not in
	// the weakness ranking. They sit at the tail.
	Unranked int `json:"unranked"`
}

// Rank keeps the missions at exactly tier and orders them by the position of
// their concept in weakRanking, most urgent first. Missions whose concept is
// not ranked come last in catalog order.
func Rank(missions []Mission, weakRanking []weakness.Concept, tier proficiency.Tier, opts ...Option) ([]Mission, error) {
	q, err := RankQueue(missions, weakRanking, tier, opts...)
	if err != nil {
		return nil, err
	}
	return q.Missions, nil
}

// RankQueue is Rank plus the count of unranked missions.
func RankQueue(missions []Mission, weakRanking []weakness.Concept, tier proficiency.Tier, opts ...Option) (Queue, error) {
	if !tier.Valid() {
		return Queue{}, errs.Invalid("tier", "unknown tier %d", int(tier))
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	pos := weakness.Positions(weakRanking)
	unrankedPos := len(weakRanking)

	type candidate struct {
		m    Mission
		rank int
	}
	var candidates []candidate
	for _, m := range missions {
		if err := errs.ValidateStruct(m); err != nil {
			return Queue{}, err
		}
		if m.Tier != tier {
			continue
		}
		rank, ok := pos[m.ConceptID]
		if !ok {
			rank = unrankedPos
		}
		candidates = append(candidates, candidate{m: m, rank: rank})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rank < candidates[j].rank
	})

	if o.limit > 0 && len(candidates) > o.limit {
		candidates = candidates[:o.limit]
	}

	q := Queue{Missions: make([]Mission, len(candidates))}
	for i, c := range candidates {
		q.Missions[i] = c.m
		if c.rank == unrankedPos {
			q.Unranked++
		}
	}
	return q, nil
}

// TotalMinutes sums the estimated minutes of a queue.
func TotalMinutes(missions []Mission) int {
	total := 0
	for _, m := range missions {
		total += m.EstimatedMinutes
	}
	return total
}
