package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/studycore/internal/proficiency"
	"github.com/abhisek/studycore/internal/reminder"
	"github.com/abhisek/studycore/internal/review"
	"github.com/abhisek/studycore/internal/streak"
	"github.com/abhisek/studycore/internal/weakness"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	ConceptID string    // exact match ("" = any)
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
}

// ConceptRepo stores the concept catalog with its practice snapshot.
type ConceptRepo interface {
	// Upsert inserts c or replaces the stored concept with the same ID.
	Upsert(ctx context.Context, c weakness.Concept) error

	// Get returns the concept, or nil if it does not exist.
	Get(ctx context.Context, id string) (*weakness.Concept, error)

	// List returns every concept ordered by ID.
	List(ctx context.Context) ([]weakness.Concept, error)
}

// ScheduleRepo stores one review schedule per concept.
type ScheduleRepo interface {
	Save(ctx context.Context, s review.Schedule) error

	// Get returns the schedule, or nil if the concept has none.
	Get(ctx context.Context, conceptID string) (*review.Schedule, error)

	// List returns every schedule ordered by DueAt.
	List(ctx context.Context) ([]review.Schedule, error)

	// Due returns the schedules with DueAt at or before now.
	Due(ctx context.Context, now time.Time) ([]review.Schedule, error)
}

// StreakRepo stores the learner's streak counters.
type StreakRepo interface {
	// Load returns the stored state, or the zero State for a new learner.
	Load(ctx context.Context) (streak.State, error)
	Save(ctx context.Context, s streak.State) error
}

// RoutineRepo stores the learner's study routine.
type RoutineRepo interface {
	// Load returns the stored settings, or reminder.DefaultSettings.
	Load(ctx context.Context) (reminder.Settings, error)
	Save(ctx context.Context, s reminder.Settings) error
}

// PracticeEvent is one completed practice or review of a concept.
type PracticeEvent struct {
	ID         string
	Sequence   int64
	ConceptID  string
	Outcome    review.Outcome
	OccurredAt time.Time
}

// EventRepo provides append and query access to the practice log.
type EventRepo interface {
	// AppendPractice assigns ev an ID and sequence number and stores it.
	AppendPractice(ctx context.Context, ev *PracticeEvent) error

	// RecentPractice returns up to limit events for conceptID, newest first.
	RecentPractice(ctx context.Context, conceptID string, limit int) ([]PracticeEvent, error)

	// QueryPractice returns events matching opts in sequence order.
	QueryPractice(ctx context.Context, opts QueryOpts) ([]PracticeEvent, error)

	// CountPractice returns how many events occurred in [from, to).
	CountPractice(ctx context.Context, from, to time.Time) (int, error)
}

// Attempt is one scored assessment. Responses are kept so the result can
// be recomputed against a revised catalog.
type Attempt struct {
	ID         string
	Sequence   int64
	Responses  []proficiency.Response
	Percentage float64
	Tier       proficiency.Tier
	Ignored    []string
	TakenAt    time.Time
}

// AttemptRepo stores assessment attempts.
type AttemptRepo interface {
	// Save assigns a an ID and sequence number and stores it.
	Save(ctx context.Context, a *Attempt) error

	// Latest returns the most recent attempt, or nil if none exist.
	Latest(ctx context.Context) (*Attempt, error)

	// List returns up to limit attempts, newest first (0 = all).
	List(ctx context.Context, limit int) ([]Attempt, error)
}

// timeLayout is fixed-width so stored instants sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode time %q: %w", s, err)
	}
	return t, nil
}
