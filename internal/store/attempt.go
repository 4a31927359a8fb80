package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/studycore/internal/proficiency"
)

var attemptFields = []string{"id", "sequence", "percentage", "tier", "responses", "ignored", "taken_at"}

type attemptRepo struct {
	q   querier
	seq *sequenceCounter
}

func (r *attemptRepo) Save(ctx context.Context, a *Attempt) error {
	responses, err := json.Marshal(a.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}
	var ignored sql.NullString
	if len(a.Ignored) > 0 {
		b, err := json.Marshal(a.Ignored)
		if err != nil {
			return fmt.Errorf("marshal ignored ids: %w", err)
		}
		ignored = sql.NullString{String: string(b), Valid: true}
	}

	seqNum, err := r.seq.Next(ctx, r.q)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	id := uuid.NewString()

	query, args := qb.Insert(tableAttempts).
		Columns(attemptFields...).
		Values(id, seqNum, a.Percentage, int(a.Tier), string(responses), ignored, encodeTime(a.TakenAt)).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}

	a.ID = id
	a.Sequence = seqNum
	return nil
}

func (r *attemptRepo) Latest(ctx context.Context) (*Attempt, error) {
	attempts, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, nil
	}
	return &attempts[0], nil
}

func (r *attemptRepo) List(ctx context.Context, limit int) ([]Attempt, error) {
	sel := qb.Select(attemptFields...).
		From(qb.Table(tableAttempts)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a         Attempt
			tier      int
			responses string
			ignored   sql.NullString
			takenAt   string
		)
		if err := rows.Scan(&a.ID, &a.Sequence, &a.Percentage, &tier, &responses, &ignored, &takenAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal([]byte(responses), &a.Responses); err != nil {
			return nil, fmt.Errorf("unmarshal responses: %w", err)
		}
		if ignored.Valid {
			if err := json.Unmarshal([]byte(ignored.String), &a.Ignored); err != nil {
				return nil, fmt.Errorf("unmarshal ignored ids: %w", err)
			}
		}
		if a.TakenAt, err = decodeTime(takenAt); err != nil {
			return nil, err
		}
		a.Tier = proficiency.Tier(tier)
		out = append(out, a)
	}
	return out, rows.Err()
}
