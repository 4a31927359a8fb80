package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studycore/internal/review"
)

var scheduleFields = []string{"concept_id", "interval_index", "due_at"}

type scheduleRepo struct {
	q querier
}

func (r *scheduleRepo) Save(ctx context.Context, s review.Schedule) error {
	query, args := qb.Insert(tableSchedules).
		Columns(scheduleFields...).
		Values(s.ConceptID, s.IntervalIndex, encodeTime(s.DueAt)).
		OnConflict(entsql.ConflictColumns("concept_id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save schedule %s: %w", s.ConceptID, err)
	}
	return nil
}

func (r *scheduleRepo) Get(ctx context.Context, conceptID string) (*review.Schedule, error) {
	query, args := qb.Select(scheduleFields...).
		From(qb.Table(tableSchedules)).
		Where(entsql.EQ("concept_id", conceptID)).
		Query()
	scheds, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(scheds) == 0 {
		return nil, nil
	}
	return &scheds[0], nil
}

func (r *scheduleRepo) List(ctx context.Context) ([]review.Schedule, error) {
	query, args := qb.Select(scheduleFields...).
		From(qb.Table(tableSchedules)).
		OrderBy("due_at", "concept_id").
		Query()
	return r.query(ctx, query, args)
}

func (r *scheduleRepo) Due(ctx context.Context, now time.Time) ([]review.Schedule, error) {
	query, args := qb.Select(scheduleFields...).
		From(qb.Table(tableSchedules)).
		Where(entsql.LTE("due_at", encodeTime(now))).
		OrderBy("due_at", "concept_id").
		Query()
	return r.query(ctx, query, args)
}

func (r *scheduleRepo) query(ctx context.Context, query string, args []any) ([]review.Schedule, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query schedules: %w", err)
	}
	return scanSchedules(rows)
}

func scanSchedules(rows *sql.Rows) ([]review.Schedule, error) {
	defer rows.Close()

	var out []review.Schedule
	for rows.Next() {
		var (
			s   review.Schedule
			due string
		)
		if err := rows.Scan(&s.ConceptID, &s.IntervalIndex, &due); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		t, err := decodeTime(due)
		if err != nil {
			return nil, err
		}
		s.DueAt = t
		out = append(out, s)
	}
	return out, rows.Err()
}
