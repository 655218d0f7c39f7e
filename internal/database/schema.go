package database

import (
	"context"
	"fmt"
)

// schemaStatements create the tables the service needs. Statements are
// idempotent so startup can always run them.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		schedule JSONB NOT NULL,
		target_per_day INTEGER NOT NULL DEFAULT 1,
		focus BOOLEAN NOT NULL DEFAULT FALSE,
		archived BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS completion_logs (
		id UUID PRIMARY KEY,
		task_id UUID NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		count_completed INTEGER NOT NULL,
		timestamps JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (task_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_completion_logs_date ON completion_logs (date)`,
	`CREATE TABLE IF NOT EXISTS streak_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		consistency_streak INTEGER NOT NULL DEFAULT 0,
		last_consistency_date TEXT NOT NULL DEFAULT '',
		perfect_streak INTEGER NOT NULL DEFAULT 0,
		last_perfect_date TEXT NOT NULL DEFAULT '',
		grace_days_used_this_week INTEGER NOT NULL DEFAULT 0,
		grace_day_week_start TEXT NOT NULL DEFAULT '',
		best_consistency_streak INTEGER NOT NULL DEFAULT 0,
		best_perfect_streak INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// InitSchema creates tables and indexes if they do not already exist
func (db *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
