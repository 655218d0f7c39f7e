// Package scoring computes per-day and per-week completion statistics:
// the 0-100 momentum score, the legacy letter grade, focus-task
// sub-stats, and week-over-week trend. All functions are pure and take
// immutable snapshots of tasks and completion logs.
package scoring

import (
	"math"

	"github.com/momentum-app/momentum/internal/dates"
	"github.com/momentum-app/momentum/internal/models"
	"github.com/momentum-app/momentum/internal/schedule"
)

// GradeFor maps a percentage to the legacy letter grade. The thresholds
// are fixed: A>=90, B>=80, C>=70, D>=60, F below.
func GradeFor(percentage int) models.Grade {
	switch {
	case percentage >= 90:
		return models.GradeA
	case percentage >= 80:
		return models.GradeB
	case percentage >= 70:
		return models.GradeC
	case percentage >= 60:
		return models.GradeD
	default:
		return models.GradeF
	}
}

func percent(completed, target int) int {
	if target <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(completed) / float64(target)))
}

// MomentumScore returns the 0-100 completion score for one day. A day
// with nothing scheduled scores 100: users are never penalized for
// having no obligations. Completions beyond a task's target do not
// over-count.
func MomentumScore(tasks []models.Task, completions []models.CompletionLog, date string) int {
	return ComputeDayStats(tasks, completions, date).Percentage
}

// DayCompletionPercent is an alias for MomentumScore kept for callers of
// the older name.
func DayCompletionPercent(tasks []models.Task, completions []models.CompletionLog, date string) int {
	return MomentumScore(tasks, completions, date)
}

// ComputeDayStats builds the full derived summary for one day in a
// single pass over the scheduled tasks.
func ComputeDayStats(tasks []models.Task, completions []models.CompletionLog, date string) models.DayStats {
	due := schedule.ForDate(tasks, date)
	counts := models.IndexCompletions(completions, date)

	stats := models.DayStats{Date: date, TotalTasks: len(due)}
	for i := range due {
		t := &due[i]
		target := t.Target()
		count := counts[t.ID]
		if count > target {
			count = target
		}
		stats.TotalTarget += target
		stats.TotalCompleted += count
		if t.Focus {
			stats.FocusTasksTotal++
		}
		if count >= target {
			stats.CompletedTasks++
			stats.Wins = append(stats.Wins, t.Name)
			if t.Focus {
				stats.FocusTasksCompleted++
			}
		}
	}

	stats.Percentage = percent(stats.TotalCompleted, stats.TotalTarget)
	stats.Grade = GradeFor(stats.Percentage)
	return stats
}

// ComputeWeekStats builds the summary for the Sunday-start week beginning
// at weekStart. previous, when non-nil, supplies the baseline for the
// week-over-week trend; otherwise the trend is zero.
func ComputeWeekStats(tasks []models.Task, completions []models.CompletionLog, weekStart string, previous *models.WeekStats) models.WeekStats {
	week := models.WeekStats{
		WeekStartDate: weekStart,
		Days:          make([]models.DayStats, 0, 7),
	}

	day := weekStart
	for i := 0; i < 7; i++ {
		ds := ComputeDayStats(tasks, completions, day)
		week.Days = append(week.Days, ds)
		week.TotalTasks += ds.TotalTasks
		week.CompletedTasks += ds.CompletedTasks
		week.TotalTarget += ds.TotalTarget
		week.TotalCompleted += ds.TotalCompleted
		if ds.IsConsistentDay() {
			week.ConsistencyDays++
		}
		if ds.IsPerfectDay() {
			week.PerfectDays++
		}
		day = dates.NextDay(day)
	}

	week.Percentage = percent(week.TotalCompleted, week.TotalTarget)
	week.Grade = GradeFor(week.Percentage)
	if previous != nil {
		week.TrendVsLastWeek = week.Percentage - previous.Percentage
	}
	return week
}

// LastNDaysStats returns day summaries for the n days ending at from,
// ascending.
func LastNDaysStats(tasks []models.Task, completions []models.CompletionLog, n int, from string) []models.DayStats {
	days := dates.LastNDays(n, from)
	out := make([]models.DayStats, 0, len(days))
	for _, d := range days {
		out = append(out, ComputeDayStats(tasks, completions, d))
	}
	return out
}

// LastNWeeksStats returns week summaries for the n weeks ending at the
// week containing from, ascending. Each week's trend is computed against
// the immediately preceding computed week, folded through the sequence.
func LastNWeeksStats(tasks []models.Task, completions []models.CompletionLog, n int, from string) []models.WeekStats {
	starts := dates.LastNWeekStarts(n, from)
	out := make([]models.WeekStats, 0, len(starts))
	var prev *models.WeekStats
	for _, start := range starts {
		week := ComputeWeekStats(tasks, completions, start, prev)
		out = append(out, week)
		prev = &out[len(out)-1]
	}
	return out
}
