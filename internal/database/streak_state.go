package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/momentum-app/momentum/internal/models"
)

// StreakStateRepository persists the single streak record. The streak
// engine computes transitions; this repository only loads and stores
// them, one writer at a time.
type StreakStateRepository struct {
	db *DB
}

// NewStreakStateRepository creates a new streak state repository
func NewStreakStateRepository(db *DB) *StreakStateRepository {
	return &StreakStateRepository{db: db}
}

// Get loads the streak state, returning the zero state before the first
// save
func (r *StreakStateRepository) Get(ctx context.Context) (models.StreakState, error) {
	var state models.StreakState
	err := r.db.QueryRowContext(ctx, `
		SELECT consistency_streak, last_consistency_date, perfect_streak, last_perfect_date,
		       grace_days_used_this_week, grace_day_week_start,
		       best_consistency_streak, best_perfect_streak
		FROM streak_state
		WHERE id = 1
	`).Scan(
		&state.ConsistencyStreak,
		&state.LastConsistencyDate,
		&state.PerfectStreak,
		&state.LastPerfectDate,
		&state.GraceDaysUsedThisWeek,
		&state.GraceDayWeekStart,
		&state.BestConsistencyStreak,
		&state.BestPerfectStreak,
	)
	if err == sql.ErrNoRows {
		return models.StreakState{}, nil
	}
	if err != nil {
		return models.StreakState{}, fmt.Errorf("failed to get streak state: %w", err)
	}
	return state, nil
}

// Save upserts the streak state
func (r *StreakStateRepository) Save(ctx context.Context, state models.StreakState) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO streak_state (
			id, consistency_streak, last_consistency_date, perfect_streak, last_perfect_date,
			grace_days_used_this_week, grace_day_week_start,
			best_consistency_streak, best_perfect_streak, updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			consistency_streak = EXCLUDED.consistency_streak,
			last_consistency_date = EXCLUDED.last_consistency_date,
			perfect_streak = EXCLUDED.perfect_streak,
			last_perfect_date = EXCLUDED.last_perfect_date,
			grace_days_used_this_week = EXCLUDED.grace_days_used_this_week,
			grace_day_week_start = EXCLUDED.grace_day_week_start,
			best_consistency_streak = EXCLUDED.best_consistency_streak,
			best_perfect_streak = EXCLUDED.best_perfect_streak,
			updated_at = EXCLUDED.updated_at
	`,
		state.ConsistencyStreak,
		state.LastConsistencyDate,
		state.PerfectStreak,
		state.LastPerfectDate,
		state.GraceDaysUsedThisWeek,
		state.GraceDayWeekStart,
		state.BestConsistencyStreak,
		state.BestPerfectStreak,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save streak state: %w", err)
	}
	return nil
}
