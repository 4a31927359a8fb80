package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studycore/internal/reminder"
	"github.com/abhisek/studycore/internal/streak"
)

// learnerRow is the key of the single-row learner tables.
const learnerRow = 1

type streakRepo struct {
	q querier
}

func (r *streakRepo) Load(ctx context.Context) (streak.State, error) {
	query, args := qb.Select("current_streak", "longest_streak", "total_active_days", "last_active_date").
		From(qb.Table(tableStreak)).
		Where(entsql.EQ("id", learnerRow)).
		Query()

	var (
		s    streak.State
		last sql.NullString
	)
	err := r.q.QueryRowContext(ctx, query, args...).
		Scan(&s.CurrentStreak, &s.LongestStreak, &s.TotalActiveDays, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return streak.State{}, nil
	}
	if err != nil {
		return streak.State{}, fmt.Errorf("load streak: %w", err)
	}
	if last.Valid {
		d, err := streak.ParseDate(last.String)
		if err != nil {
			return streak.State{}, err
		}
		s.LastActiveDate = &d
	}
	return s, nil
}

func (r *streakRepo) Save(ctx context.Context, s streak.State) error {
	var last sql.NullString
	if s.LastActiveDate != nil {
		last = sql.NullString{String: s.LastActiveDate.String(), Valid: true}
	}
	query, args := qb.Insert(tableStreak).
		Columns("id", "current_streak", "longest_streak", "total_active_days", "last_active_date").
		Values(learnerRow, s.CurrentStreak, s.LongestStreak, s.TotalActiveDays, last).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

type routineRepo struct {
	q querier
}

func (r *routineRepo) Load(ctx context.Context) (reminder.Settings, error) {
	query, args := qb.Select("daily_goal", "reminder_time", "enabled", "study_duration_minutes").
		From(qb.Table(tableRoutine)).
		Where(entsql.EQ("id", learnerRow)).
		Query()

	var (
		s     reminder.Settings
		clock string
	)
	err := r.q.QueryRowContext(ctx, query, args...).
		Scan(&s.DailyGoal, &clock, &s.Enabled, &s.StudyDurationMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return reminder.DefaultSettings(), nil
	}
	if err != nil {
		return reminder.Settings{}, fmt.Errorf("load routine: %w", err)
	}
	if s.ReminderTime, err = reminder.ParseClock(clock); err != nil {
		return reminder.Settings{}, err
	}
	return s, nil
}

func (r *routineRepo) Save(ctx context.Context, s reminder.Settings) error {
	query, args := qb.Insert(tableRoutine).
		Columns("id", "daily_goal", "reminder_time", "enabled", "study_duration_minutes").
		Values(learnerRow, s.DailyGoal, s.ReminderTime.String(), s.Enabled, s.StudyDurationMinutes).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save routine: %w", err)
	}
	return nil
}
