package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/studycore/internal/review"
)

var eventFields = []string{"id", "sequence", "concept_id", "outcome", "occurred_at"}

type eventRepo struct {
	q   querier
	seq *sequenceCounter
}

func (r *eventRepo) AppendPractice(ctx context.Context, ev *PracticeEvent) error {
	seqNum, err := r.seq.Next(ctx, r.q)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	id := uuid.NewString()

	query, args := qb.Insert(tableEvents).
		Columns(eventFields...).
		Values(id, seqNum, ev.ConceptID, string(ev.Outcome), encodeTime(ev.OccurredAt)).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save practice event: %w", err)
	}

	ev.ID = id
	ev.Sequence = seqNum
	return nil
}

func (r *eventRepo) RecentPractice(ctx context.Context, conceptID string, limit int) ([]PracticeEvent, error) {
	sel := qb.Select(eventFields...).
		From(qb.Table(tableEvents)).
		Where(entsql.EQ("concept_id", conceptID)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *eventRepo) QueryPractice(ctx context.Context, opts QueryOpts) ([]PracticeEvent, error) {
	var preds []*entsql.Predicate
	if opts.ConceptID != "" {
		preds = append(preds, entsql.EQ("concept_id", opts.ConceptID))
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("occurred_at", encodeTime(opts.From)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("occurred_at", encodeTime(opts.To)))
	}

	sel := qb.Select(eventFields...).
		From(qb.Table(tableEvents)).
		OrderBy("sequence")
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *eventRepo) CountPractice(ctx context.Context, from, to time.Time) (int, error) {
	query, args := qb.Select(entsql.Count("*")).
		From(qb.Table(tableEvents)).
		Where(entsql.And(
			entsql.GTE("occurred_at", encodeTime(from)),
			entsql.LT("occurred_at", encodeTime(to)),
		)).
		Query()
	var n int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count practice events: %w", err)
	}
	return n, nil
}

func (r *eventRepo) query(ctx context.Context, query string, args []any) ([]PracticeEvent, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query practice events: %w", err)
	}
	defer rows.Close()

	var out []PracticeEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func scanEvent(rows *sql.Rows) (PracticeEvent, error) {
	var (
		ev      PracticeEvent
		outcome string
		at      string
	)
	if err := rows.Scan(&ev.ID, &ev.Sequence, &ev.ConceptID, &outcome, &at); err != nil {
		return PracticeEvent{}, fmt.Errorf("scan practice event: %w", err)
	}
	t, err := decodeTime(at)
	if err != nil {
		return PracticeEvent{}, err
	}
	ev.Outcome = review.Outcome(outcome)
	ev.OccurredAt = t
	return ev, nil
}
