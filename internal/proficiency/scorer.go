// Package proficiency scores level assessments into a percentage and a tier.
package proficiency

import (
	"sort"

	"github.com/abhisek/studycore/internal/errs"
)

// Question is an immutable assessment catalog entry.
type Question struct {
	ID                 string `json:"id" yaml:"id" validate:"required"`
	Tier               Tier   `json:"tier" yaml:"tier"`
	Points             int    `json:"points" yaml:"points" validate:"gt=0"`
	CorrectOptionIndex int    `json:"correct_option_index" yaml:"correct_option_index" validate:"gte=0"`
}

// Response is the learner's answer to a single question.
type Response struct {
	QuestionID          string `json:"question_id" yaml:"question_id" validate:"required"`
	SelectedOptionIndex int    `json:"selected_option_index" yaml:"selected_option_index"`
}

// Result is the derived outcome of an attempt.
type Result struct {
	Percentage float64 `json:"percentage"`
	Tier       Tier    `json:"tier"`

	// Ignored lists, sorted, the question ids that had no catalog entry.
	Ignored []string `json:"ignored,omitempty"`
}

// Score computes the weighted percentage of catalog points earned by the
// responses and maps it to a tier.
//
// Responses whose question is missing from the catalog are skipped and
// reported in Result.Ignored. An empty catalog scores 0.
func Score(responses []Response, catalog []Question) (Result, error) {
	byID := make(map[string]Question, len(catalog))
	total := 0
	for i, q := range catalog {
		if err := errs.ValidateStruct(q); err != nil {
			return Result{}, err
		}
		if _, dup := byID[q.ID]; dup {
			return Result{}, errs.Invalid("catalog", "duplicate question id %q at index %d", q.ID, i)
		}
		byID[q.ID] = q
		total += q.Points
	}

	seen := make(map[string]bool, len(responses))
	earned := 0
	var ignored []string
	for _, r := range responses {
		if r.QuestionID == "" {
			return Result{}, errs.Invalid("question_id", "is required")
		}
		if seen[r.QuestionID] {
			return Result{}, errs.Invalid("responses", "duplicate response for question %q", r.QuestionID)
		}
		seen[r.QuestionID] = true

		q, ok := byID[r.QuestionID]
		if !ok {
			ignored = append(ignored, r.QuestionID)
			continue
		}
		if r.SelectedOptionIndex == q.CorrectOptionIndex {
			earned += q.Points
		}
	}
	sort.Strings(ignored)

	pct := 0.0
	if total > 0 {
		pct = 100 * float64(earned) / float64(total)
	}
	return Result{Percentage: pct, Tier: TierOf(pct), Ignored: ignored}, nil
}

// UnknownReferences converts Result.Ignored into typed errors for callers
// that surface them individually.
func (r Result) UnknownReferences() []error {
	if len(r.Ignored) == 0 {
		return nil
	}
	out := make([]error, len(r.Ignored))
	for i, id := range r.Ignored {
		out[i] = &errs.UnknownReferenceError{Kind: "question", ID: id}
	}
	return out
}
