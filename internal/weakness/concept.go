package weakness

import (
	"math"
	"time"

	"github.com/abhisek/studycore/internal/proficiency"
)

// Concept is one learnable topic with its practice snapshot.
type Concept struct {
	ID       string           `json:"id" yaml:"id" validate:"required"`
	Name     string           `json:"name" yaml:"name"`
	Category string           `json:"category" yaml:"category"`
	Tier     proficiency.Tier `json:"tier" yaml:"tier"`

	// LastPracticedAt is nil when the concept has never been practiced.
	LastPracticedAt *time.Time `json:"last_practiced_at,omitempty" yaml:"last_practiced_at,omitempty"`

	// SuccessRate is a 0-100 long-run accuracy.
	SuccessRate float64 `json:"success_rate" yaml:"success_rate" validate:"gte=0,lte=100"`
}

// DaysSincePractice returns the fractional days elapsed since the concept
// was last practiced, or +Inf if it never was. A practice time after now
// counts as zero days.
func (c Concept) DaysSincePractice(now time.Time) float64 {
	if c.LastPracticedAt == nil {
		return math.Inf(1)
	}
	d := now.Sub(*c.LastPracticedAt)
	if d < 0 {
		return 0
	}
	return d.Hours() / 24.0
}
