package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/studycore/internal/mission"
	"github.com/abhisek/studycore/internal/proficiency"
	"github.com/abhisek/studycore/internal/reminder"
	"github.com/abhisek/studycore/internal/review"
	"github.com/abhisek/studycore/internal/store"
	"github.com/abhisek/studycore/internal/streak"
	"github.com/abhisek/studycore/internal/weakness"
)

// Dashboard is a learner's full picture at one instant.
type Dashboard struct {
	At       time.Time
	Tier     proficiency.Tier
	Assessed bool
	Weak     []weakness.Assessment
	Due      []review.Schedule
	Missions mission.Queue
	Streak   StreakView
	Progress int // practice events today
	Routine  reminder.Settings
	Reminder *reminder.Notice
}

// snapshot is the stored state a dashboard is computed from.
type snapshot struct {
	concepts  []weakness.Concept
	schedules []review.Schedule
	streak    streak.State
	routine   reminder.Settings
	attempt   *store.Attempt
	doneToday int
}

func (s *Service) load(ctx context.Context, now time.Time) (*snapshot, error) {
	repos := s.store.Repos()
	var snap snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.concepts, err = repos.Concepts.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.schedules, err = repos.Schedules.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.streak, err = repos.Streak.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.routine, err = repos.Routine.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.attempt, err = repos.Attempts.Latest(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.doneToday, err = s.completedToday(gctx, repos.Events, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load learner state: %w", err)
	}
	return &snap, nil
}

// Dashboard loads all learner state concurrently and derives the weak
// ranking, due reviews, mission queue, streak and next reminder. questions
// is the assessment catalog used to rescore the latest attempt and may be
// empty; missions is the mission catalog.
func (s *Service) Dashboard(ctx context.Context, now time.Time, missions []mission.Mission, questions []proficiency.Question) (*Dashboard, error) {
	snap, err := s.load(ctx, now)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		At:       now,
		Streak:   s.streakView(snap.streak, now),
		Progress: snap.doneToday,
		Routine:  snap.routine,
	}

	if snap.attempt != nil {
		if d.Tier, d.Assessed, err = s.tierOf(snap.attempt, questions); err != nil {
			return nil, err
		}
	}

	if d.Weak, err = weakness.Assess(snap.concepts, now); err != nil {
		return nil, err
	}
	ranking := make([]weakness.Concept, len(d.Weak))
	for i, a := range d.Weak {
		ranking[i] = a.Concept
	}

	if d.Due, err = s.scheduler.DueToday(snap.schedules, now, snap.concepts); err != nil {
		return nil, err
	}
	if d.Missions, err = mission.RankQueue(missions, ranking, d.Tier, mission.WithLimit(s.cfg.MissionLimit)); err != nil {
		return nil, err
	}
	if d.Reminder, err = s.compose(snap.routine, snap.streak, snap.doneToday, now); err != nil {
		return nil, err
	}
	return d, nil
}

// Weak returns the stored concepts ranked weakest first.
func (s *Service) Weak(ctx context.Context, now time.Time) ([]weakness.Assessment, error) {
	concepts, err := s.store.Repos().Concepts.List(ctx)
	if err != nil {
		return nil, err
	}
	return weakness.Assess(concepts, now)
}

// DueReviews returns the schedules due at now in weakness order.
func (s *Service) DueReviews(ctx context.Context, now time.Time) ([]review.Schedule, error) {
	repos := s.store.Repos()
	var (
		due      []review.Schedule
		concepts []weakness.Concept
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		due, err = repos.Schedules.Due(gctx, now)
		return err
	})
	g.Go(func() error {
		var err error
		concepts, err = repos.Concepts.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s.scheduler.DueToday(due, now, concepts)
}

// Missions ranks the mission catalog for the learner's current tier and
// weak spots.
func (s *Service) Missions(ctx context.Context, now time.Time, missions []mission.Mission, questions []proficiency.Question) (mission.Queue, error) {
	tier, _, err := s.CurrentTier(ctx, questions)
	if err != nil {
		return mission.Queue{}, err
	}
	concepts, err := s.store.Repos().Concepts.List(ctx)
	if err != nil {
		return mission.Queue{}, err
	}
	ranking, err := weakness.Rank(concepts, now)
	if err != nil {
		return mission.Queue{}, err
	}
	return mission.RankQueue(missions, ranking, tier, mission.WithLimit(s.cfg.MissionLimit))
}
