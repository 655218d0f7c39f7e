package models

// StreakType identifies one of the two independent streak counters.
type StreakType string

const (
	// StreakConsistency counts consecutive days the user showed up:
	// focus-task completion when focus tasks exist, any completion
	// otherwise.
	StreakConsistency StreakType = "consistency"
	// StreakPerfect counts consecutive days at a 100% momentum score
	// with at least one task scheduled.
	StreakPerfect StreakType = "perfect"
)

// IsValid reports whether the streak type is one of the known values.
func (s StreakType) IsValid() bool {
	return s == StreakConsistency || s == StreakPerfect
}

// StreakState is the single persisted streak record for the user. Date
// fields hold YYYY-MM-DD local days; the empty string means "never".
// Only the streak engine mutates this state.
type StreakState struct {
	ConsistencyStreak     int    `json:"consistency_streak"`
	LastConsistencyDate   string `json:"last_consistency_date,omitempty"`
	PerfectStreak         int    `json:"perfect_streak"`
	LastPerfectDate       string `json:"last_perfect_date,omitempty"`
	GraceDaysUsedThisWeek int    `json:"grace_days_used_this_week"`
	GraceDayWeekStart     string `json:"grace_day_week_start,omitempty"`
	BestConsistencyStreak int    `json:"best_consistency_streak"`
	BestPerfectStreak     int    `json:"best_perfect_streak"`
}
