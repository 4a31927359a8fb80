package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studycore/internal/proficiency"
	"github.com/abhisek/studycore/internal/weakness"
)

var conceptFields = []string{"id", "name", "category", "tier", "success_rate", "last_practiced_at"}

type conceptRepo struct {
	q querier
}

func (r *conceptRepo) Upsert(ctx context.Context, c weakness.Concept) error {
	var last sql.NullString
	if c.LastPracticedAt != nil {
		last = sql.NullString{String: encodeTime(*c.LastPracticedAt), Valid: true}
	}

	query, args := qb.Insert(tableConcepts).
		Columns(conceptFields...).
		Values(c.ID, c.Name, c.Category, int(c.Tier), c.SuccessRate, last).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert concept %s: %w", c.ID, err)
	}
	return nil
}

func (r *conceptRepo) Get(ctx context.Context, id string) (*weakness.Concept, error) {
	query, args := qb.Select(conceptFields...).
		From(qb.Table(tableConcepts)).
		Where(entsql.EQ("id", id)).
		Query()
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query concept %s: %w", id, err)
	}
	concepts, err := scanConcepts(rows)
	if err != nil {
		return nil, err
	}
	if len(concepts) == 0 {
		return nil, nil
	}
	return &concepts[0], nil
}

func (r *conceptRepo) List(ctx context.Context) ([]weakness.Concept, error) {
	query, args := qb.Select(conceptFields...).
		From(qb.Table(tableConcepts)).
		OrderBy("id").
		Query()
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query concepts: %w", err)
	}
	return scanConcepts(rows)
}

func scanConcepts(rows *sql.Rows) ([]weakness.Concept, error) {
	defer rows.Close()

	var out []weakness.Concept
	for rows.Next() {
		var (
			c    weakness.Concept
			tier int
			last sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &tier, &c.SuccessRate, &last); err != nil {
			return nil, fmt.Errorf("scan concept: %w", err)
		}
		c.Tier = proficiency.Tier(tier)
		if last.Valid {
			t, err := decodeTime(last.String)
			if err != nil {
				return nil, err
			}
			c.LastPracticedAt = &t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
