package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableConcepts  = "concepts"
	tableSchedules = "review_schedules"
	tableStreak    = "streak_states"
	tableRoutine   = "routine_settings"
	tableEvents    = "practice_events"
	tableAttempts  = "assessment_attempts"
)

var (
	conceptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "tier", Type: field.TypeInt},
		{Name: "success_rate", Type: field.TypeFloat64},
		{Name: "last_practiced_at", Type: field.TypeString, Nullable: true},
	}
	conceptsTable = &schema.Table{
		Name:       tableConcepts,
		Columns:    conceptsColumns,
		PrimaryKey: []*schema.Column{conceptsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "concept_category", Columns: []*schema.Column{conceptsColumns[2]}},
		},
	}

	schedulesColumns = []*schema.Column{
		{Name: "concept_id", Type: field.TypeString, Unique: true},
		{Name: "interval_index", Type: field.TypeInt},
		{Name: "due_at", Type: field.TypeString},
	}
	schedulesTable = &schema.Table{
		Name:       tableSchedules,
		Columns:    schedulesColumns,
		PrimaryKey: []*schema.Column{schedulesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "schedule_due_at", Columns: []*schema.Column{schedulesColumns[2]}},
		},
	}

	// Single-row tables: the engine tracks one learner, keyed by id 1.
	streakColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Unique: true},
		{Name: "current_streak", Type: field.TypeInt},
		{Name: "longest_streak", Type: field.TypeInt},
		{Name: "total_active_days", Type: field.TypeInt},
		{Name: "last_active_date", Type: field.TypeString, Nullable: true},
	}
	streakTable = &schema.Table{
		Name:       tableStreak,
		Columns:    streakColumns,
		PrimaryKey: []*schema.Column{streakColumns[0]},
	}

	routineColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Unique: true},
		{Name: "daily_goal", Type: field.TypeInt},
		{Name: "reminder_time", Type: field.TypeString},
		{Name: "enabled", Type: field.TypeBool},
		{Name: "study_duration_minutes", Type: field.TypeInt},
	}
	routineTable = &schema.Table{
		Name:       tableRoutine,
		Columns:    routineColumns,
		PrimaryKey: []*schema.Column{routineColumns[0]},
	}

	eventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "concept_id", Type: field.TypeString},
		{Name: "outcome", Type: field.TypeString},
		{Name: "occurred_at", Type: field.TypeString},
	}
	eventsTable = &schema.Table{
		Name:       tableEvents,
		Columns:    eventsColumns,
		PrimaryKey: []*schema.Column{eventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "practiceevent_concept_id_sequence", Columns: []*schema.Column{eventsColumns[2], eventsColumns[1]}},
		},
	}

	attemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "percentage", Type: field.TypeFloat64},
		{Name: "tier", Type: field.TypeInt},
		{Name: "responses", Type: field.TypeJSON},
		{Name: "ignored", Type: field.TypeJSON, Nullable: true},
		{Name: "taken_at", Type: field.TypeString},
	}
	attemptsTable = &schema.Table{
		Name:       tableAttempts,
		Columns:    attemptsColumns,
		PrimaryKey: []*schema.Column{attemptsColumns[0]},
	}

	tables = []*schema.Table{
		conceptsTable,
		schedulesTable,
		streakTable,
		routineTable,
		eventsTable,
		attemptsTable,
	}
)

// migrate creates or updates every table through ent's migration engine.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// qb builds queries in the SQLite dialect.
var qb = entsql.Dialect(dialect.SQLite)
