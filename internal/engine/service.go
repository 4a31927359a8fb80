// Package engine ties the scoring, prioritization, scheduling and streak
// rules to persistent learner state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/studycore/internal/config"
	"github.com/abhisek/studycore/internal/errs"
	"github.com/abhisek/studycore/internal/logger"
	"github.com/abhisek/studycore/internal/proficiency"
	"github.com/abhisek/studycore/internal/reminder"
	"github.com/abhisek/studycore/internal/review"
	"github.com/abhisek/studycore/internal/store"
	"github.com/abhisek/studycore/internal/streak"
	"github.com/abhisek/studycore/internal/weakness"
)

// Store is the persistence the service needs. *store.Store satisfies it.
type Store interface {
	Repos() store.Repos
	InTx(ctx context.Context, fn func(store.Repos) error) error
}

// Service is the learner-facing API of the engine.
type Service struct {
	store     Store
	scheduler *review.Scheduler
	loc       *time.Location
	cfg       config.Config
	log       *logger.Logger
}

// NewService creates a service from a validated config. A nil logger
// discards logs.
func NewService(st Store, cfg config.Config, log *logger.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	sched, err := review.NewScheduler(cfg.Ladder)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:     st,
		scheduler: sched,
		loc:       loc,
		cfg:       cfg,
		log:       log,
	}, nil
}

// Location is the zone used for calendar days.
func (s *Service) Location() *time.Location {
	return s.loc
}

// ImportConcepts adds or updates catalog concepts. For a concept that is
// already stored only Name, Category and Tier change; its practice history
// stays. New concepts take SuccessRate and LastPracticedAt from the input.
func (s *Service) ImportConcepts(ctx context.Context, concepts []weakness.Concept) (int, error) {
	seen := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		if err := errs.ValidateStruct(c); err != nil {
			return 0, fmt.Errorf("concept %q: %w", c.ID, err)
		}
		if !c.Tier.Valid() {
			return 0, errs.Invalid("tier", "concept %q has invalid tier %d", c.ID, int(c.Tier))
		}
		if seen[c.ID] {
			return 0, errs.Invalid("id", "duplicate concept %q", c.ID)
		}
		seen[c.ID] = true
	}

	created := 0
	err := s.store.InTx(ctx, func(r store.Repos) error {
		for _, c := range concepts {
			existing, err := r.Concepts.Get(ctx, c.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				c.SuccessRate = existing.SuccessRate
				c.LastPracticedAt = existing.LastPracticedAt
			} else {
				created++
			}
			if err := r.Concepts.Upsert(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("concepts imported", "total", len(concepts), "created", created)
	return created, nil
}

// Concepts returns every stored concept ordered by ID.
func (s *Service) Concepts(ctx context.Context) ([]weakness.Concept, error) {
	return s.store.Repos().Concepts.List(ctx)
}

// SubmitAssessment scores responses against catalog and stores the attempt.
func (s *Service) SubmitAssessment(ctx context.Context, responses []proficiency.Response, catalog []proficiency.Question, at time.Time) (*store.Attempt, error) {
	res, err := proficiency.Score(responses, catalog)
	if err != nil {
		return nil, err
	}
	if len(res.Ignored) > 0 {
		s.log.Warn("responses reference unknown questions", "ids", res.Ignored)
	}

	a := &store.Attempt{
		Responses:  responses,
		Percentage: res.Percentage,
		Tier:       res.Tier,
		Ignored:    res.Ignored,
		TakenAt:    at,
	}
	if err := s.store.Repos().Attempts.Save(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("assessment scored", "attempt", a.ID, "percentage", res.Percentage, "tier", res.Tier.String())
	return a, nil
}

// CurrentTier rescores the latest attempt against catalog, so a revised
// catalog is reflected without re-testing. With an empty catalog the stored
// tier is used. ok is false when the learner has never been assessed.
func (s *Service) CurrentTier(ctx context.Context, catalog []proficiency.Question) (tier proficiency.Tier, ok bool, err error) {
	a, err := s.store.Repos().Attempts.Latest(ctx)
	if err != nil || a == nil {
		return proficiency.TierNovice, false, err
	}
	return s.tierOf(a, catalog)
}

func (s *Service) tierOf(a *store.Attempt, catalog []proficiency.Question) (proficiency.Tier, bool, error) {
	if len(catalog) == 0 {
		return a.Tier, true, nil
	}
	res, err := proficiency.Score(a.Responses, catalog)
	if err != nil {
		return proficiency.TierNovice, false, fmt.Errorf("rescore attempt %s: %w", a.ID, err)
	}
	return res.Tier, true, nil
}

// PracticeResult is everything a practice record changed.
type PracticeResult struct {
	Event      store.PracticeEvent
	Concept    weakness.Concept
	Schedule   review.Schedule
	Streak     streak.State
	Transition streak.Transition
}

// RecordPractice logs a practice of conceptID and updates the derived
// state in one transaction:
//   - SuccessRate becomes the pass percentage of the concept's most recent
//     SuccessWindow events
//   - LastPracticedAt moves forward to at
//   - the review schedule starts on first practice, otherwise advances
//     by outcome
//   - the day of at counts as streak activity
//
// A practice dated before the last active day still counts for the
// concept; only the streak update is skipped.
func (s *Service) RecordPractice(ctx context.Context, conceptID string, outcome review.Outcome, at time.Time) (*PracticeResult, error) {
	if conceptID == "" {
		return nil, errs.Invalid("concept_id", "is required")
	}
	if outcome != review.OutcomePass && outcome != review.OutcomeFail {
		return nil, errs.Invalid("outcome", "must be pass or fail, got %q", outcome)
	}
	if at.IsZero() {
		return nil, errs.Invalid("at", "is required")
	}

	var res PracticeResult
	err := s.store.InTx(ctx, func(r store.Repos) error {
		c, err := r.Concepts.Get(ctx, conceptID)
		if err != nil {
			return err
		}
		if c == nil {
			return &errs.UnknownReferenceError{Kind: "concept", ID: conceptID}
		}

		res.Event = store.PracticeEvent{ConceptID: conceptID, Outcome: outcome, OccurredAt: at}
		if err := r.Events.AppendPractice(ctx, &res.Event); err != nil {
			return err
		}

		recent, err := r.Events.RecentPractice(ctx, conceptID, s.cfg.SuccessWindow)
		if err != nil {
			return err
		}
		c.SuccessRate = successRate(recent)
		if c.LastPracticedAt == nil || at.After(*c.LastPracticedAt) {
			t := at
			c.LastPracticedAt = &t
		}
		if err := r.Concepts.Upsert(ctx, *c); err != nil {
			return err
		}
		res.Concept = *c

		sched, err := r.Schedules.Get(ctx, conceptID)
		if err != nil {
			return err
		}
		if sched == nil {
			res.Schedule, err = s.scheduler.Start(conceptID, at)
		} else {
			res.Schedule, err = s.scheduler.NextDue(*sched, outcome, at)
		}
		if err != nil {
			return err
		}
		if err := r.Schedules.Save(ctx, res.Schedule); err != nil {
			return err
		}

		res.Streak, res.Transition, err = s.recordDay(ctx, r, at)
		var ordering *errs.OrderingError
		if errors.As(err, &ordering) {
			s.log.Warn("backdated practice left streak unchanged", "concept", conceptID, "last", ordering.Last, "got", ordering.Got)
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("practice recorded",
		"concept", conceptID,
		"outcome", string(outcome),
		"sequence", res.Event.Sequence,
		"success_rate", res.Concept.SuccessRate,
		"interval_index", res.Schedule.IntervalIndex,
		"due_at", res.Schedule.DueAt,
		"streak", res.Streak.CurrentStreak,
	)
	return &res, nil
}

// successRate is the pass percentage of events, 0 for none.
func successRate(events []store.PracticeEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	passed := 0
	for _, ev := range events {
		if ev.Outcome == review.OutcomePass {
			passed++
		}
	}
	return float64(passed) / float64(len(events)) * 100
}

// RecordActivity records study activity at the instant at, taken as a
// calendar day in the configured zone. An activity before the last active
// day returns an *errs.OrderingError and changes nothing.
func (s *Service) RecordActivity(ctx context.Context, at time.Time) (streak.State, streak.Transition, error) {
	var (
		st streak.State
		tr streak.Transition
	)
	err := s.store.InTx(ctx, func(r store.Repos) error {
		var err error
		st, tr, err = s.recordDay(ctx, r, at)
		return err
	})
	if err != nil {
		var ordering *errs.OrderingError
		if errors.As(err, &ordering) {
			s.log.Warn("activity out of order", "last", ordering.Last, "got", ordering.Got)
		}
		return st, "", err
	}
	s.log.Debug("activity recorded", "transition", string(tr), "streak", st.CurrentStreak)
	return st, tr, nil
}

func (s *Service) recordDay(ctx context.Context, r store.Repos, at time.Time) (streak.State, streak.Transition, error) {
	cur, err := r.Streak.Load(ctx)
	if err != nil {
		return streak.State{}, "", err
	}
	next, tr, err := streak.Record(cur, streak.DateOf(at, s.loc))
	if err != nil {
		return cur, "", err
	}
	if tr == streak.TransitionSameDay {
		return next, tr, nil
	}
	if err := r.Streak.Save(ctx, next); err != nil {
		return cur, "", err
	}
	return next, tr, nil
}

// StreakView is the streak as of a given day.
type StreakView struct {
	State   streak.State
	Today   streak.Date
	Current int
	AtRisk  bool
}

// Streak returns the stored streak as seen on now's calendar day.
func (s *Service) Streak(ctx context.Context, now time.Time) (StreakView, error) {
	st, err := s.store.Repos().Streak.Load(ctx)
	if err != nil {
		return StreakView{}, err
	}
	return s.streakView(st, now), nil
}

func (s *Service) streakView(st streak.State, now time.Time) StreakView {
	today := streak.DateOf(now, s.loc)
	return StreakView{
		State:   st,
		Today:   today,
		Current: st.CurrentAsOf(today),
		AtRisk:  st.AtRisk(today),
	}
}

// Routine returns the stored study routine.
func (s *Service) Routine(ctx context.Context) (reminder.Settings, error) {
	return s.store.Repos().Routine.Load(ctx)
}

// UpdateRoutine validates and stores a new routine.
func (s *Service) UpdateRoutine(ctx context.Context, settings reminder.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.store.Repos().Routine.Save(ctx, settings); err != nil {
		return err
	}
	s.log.Info("routine updated",
		"daily_goal", settings.DailyGoal,
		"reminder_time", settings.ReminderTime.String(),
		"enabled", settings.Enabled,
	)
	return nil
}

// NextReminder returns the next reminder after now with its content, or
// nil when reminders are disabled.
func (s *Service) NextReminder(ctx context.Context, now time.Time) (*reminder.Notice, error) {
	repos := s.store.Repos()
	settings, err := repos.Routine.Load(ctx)
	if err != nil {
		return nil, err
	}
	st, err := repos.Streak.Load(ctx)
	if err != nil {
		return nil, err
	}
	done, err := s.completedToday(ctx, repos.Events, now)
	if err != nil {
		return nil, err
	}
	return s.compose(settings, st, done, now)
}

func (s *Service) compose(settings reminder.Settings, st streak.State, done int, now time.Time) (*reminder.Notice, error) {
	view := s.streakView(st, now)
	p := reminder.Progress{
		CompletedToday: done,
		CurrentStreak:  view.Current,
		ActiveToday:    st.ActiveOn(view.Today),
		StreakAtRisk:   view.AtRisk,
	}
	return reminder.Compose(settings, p, now.In(s.loc))
}

func (s *Service) completedToday(ctx context.Context, events store.EventRepo, now time.Time) (int, error) {
	start := streak.DateOf(now, s.loc).In(s.loc)
	return events.CountPractice(ctx, start, start.AddDate(0, 0, 1))
}
