// Package streaks maintains the two independent streak counters
// (consistency and perfect-day) with the once-per-week grace-day repair
// protocol. All operations are pure transforms of StreakState; the
// engine never reads a wall clock and never auto-applies a grace day.
package streaks

import (
	"github.com/momentum-app/momentum/internal/dates"
	"github.com/momentum-app/momentum/internal/models"
	"github.com/momentum-app/momentum/internal/scoring"
)

// GraceSignal tells the caller a grace day could bridge a gap in the
// given streak. The caller decides whether to spend it via ApplyGraceDay.
type GraceSignal struct {
	StreakType models.StreakType `json:"streak_type"`
	Date       string            `json:"date"`
}

// Result is the outcome of evaluating one day.
type Result struct {
	State          models.StreakState `json:"state"`
	GraceAvailable []GraceSignal      `json:"grace_available,omitempty"`
}

// gapSince reports whether date is neither last itself nor the day
// immediately after it. An empty last means no prior pass, which is not
// a gap.
func gapSince(last, date string) bool {
	if last == "" {
		return false
	}
	return date != last && date != dates.NextDay(last)
}

// Evaluate runs both streak state machines for one day and returns the
// updated state plus any grace-day opportunities. When a grace signal is
// raised for a streak, that streak's fields are left untouched pending
// the caller's decision.
func Evaluate(state models.StreakState, tasks []models.Task, completions []models.CompletionLog, date string) Result {
	day := scoring.ComputeDayStats(tasks, completions, date)

	// The first evaluation of a new week replenishes the single grace
	// day.
	if ws := dates.WeekStart(date); state.GraceDayWeekStart != ws {
		state.GraceDayWeekStart = ws
		state.GraceDaysUsedThisWeek = 0
	}

	res := Result{}

	// Consistency streak. A failing day leaves consistency state
	// untouched; only passing days move it.
	if day.IsConsistentDay() {
		if !gapSince(state.LastConsistencyDate, date) {
			if state.LastConsistencyDate != date {
				state.ConsistencyStreak++
			}
			state.LastConsistencyDate = date
		} else if state.GraceDaysUsedThisWeek < 1 && state.ConsistencyStreak > 0 {
			res.GraceAvailable = append(res.GraceAvailable, GraceSignal{
				StreakType: models.StreakConsistency,
				Date:       date,
			})
		} else {
			state.ConsistencyStreak = 1
			state.LastConsistencyDate = date
		}
	}

	// Perfect streak. Unlike consistency, a failing day with a gap is
	// acted on: offered a grace day when one remains, reset otherwise.
	if day.IsPerfectDay() {
		if !gapSince(state.LastPerfectDate, date) {
			if state.LastPerfectDate != date {
				state.PerfectStreak++
			}
			state.LastPerfectDate = date
		} else if state.GraceDaysUsedThisWeek < 1 && state.PerfectStreak > 0 {
			res.GraceAvailable = append(res.GraceAvailable, GraceSignal{
				StreakType: models.StreakPerfect,
				Date:       date,
			})
		} else {
			state.PerfectStreak = 1
			state.LastPerfectDate = date
		}
	} else if gapSince(state.LastPerfectDate, date) {
		if state.GraceDaysUsedThisWeek < 1 && state.PerfectStreak > 0 {
			res.GraceAvailable = append(res.GraceAvailable, GraceSignal{
				StreakType: models.StreakPerfect,
				Date:       date,
			})
		} else {
			state.PerfectStreak = 0
		}
	}

	if state.ConsistencyStreak > state.BestConsistencyStreak {
		state.BestConsistencyStreak = state.ConsistencyStreak
	}
	if state.PerfectStreak > state.BestPerfectStreak {
		state.BestPerfectStreak = state.PerfectStreak
	}

	res.State = state
	return res
}

// ApplyGraceDay spends the weekly grace day to bridge a gap in the given
// streak: the last-pass date moves to date while the streak count is
// preserved, not grown. Callers must invoke this only in response to a
// grace signal from Evaluate; CanApplyGraceDay reports whether the
// budget allows it.
func ApplyGraceDay(state models.StreakState, streakType models.StreakType, date string) models.StreakState {
	if ws := dates.WeekStart(date); state.GraceDayWeekStart != ws {
		state.GraceDayWeekStart = ws
		state.GraceDaysUsedThisWeek = 0
	}
	state.GraceDaysUsedThisWeek++
	switch streakType {
	case models.StreakPerfect:
		state.LastPerfectDate = date
	default:
		state.LastConsistencyDate = date
	}
	return state
}

// CanApplyGraceDay reports whether the weekly grace budget still allows
// a repair on the week containing date.
func CanApplyGraceDay(state models.StreakState, date string) bool {
	if dates.WeekStart(date) != state.GraceDayWeekStart {
		return true
	}
	return state.GraceDaysUsedThisWeek < 1
}

// ConsistencyStreakAsOf recomputes the consistency streak ending at the
// given day from the raw logs, ignoring persisted state and grace days.
// It walks backward while consecutive days satisfy the consistency rule.
func ConsistencyStreakAsOf(tasks []models.Task, completions []models.CompletionLog, from string) int {
	return streakAsOf(tasks, completions, from, func(d models.DayStats) bool {
		return d.IsConsistentDay()
	})
}

// PerfectStreakAsOf recomputes the perfect-day streak ending at the
// given day from the raw logs.
func PerfectStreakAsOf(tasks []models.Task, completions []models.CompletionLog, from string) int {
	return streakAsOf(tasks, completions, from, func(d models.DayStats) bool {
		return d.IsPerfectDay()
	})
}

func streakAsOf(tasks []models.Task, completions []models.CompletionLog, from string, pass func(models.DayStats) bool) int {
	count := 0
	day := from
	for {
		if !pass(scoring.ComputeDayStats(tasks, completions, day)) {
			return count
		}
		count++
		day = dates.AddDays(day, -1)
	}
}
