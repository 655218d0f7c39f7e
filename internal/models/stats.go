package models

// Grade is the legacy letter grade derived from a percentage. It is
// secondary to the momentum score and only surfaced when the caller
// asks for it.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// IsPassing reports whether the grade is A, B, or C.
func (g Grade) IsPassing() bool {
	return g == GradeA || g == GradeB || g == GradeC
}

// DayStats is the derived completion summary for one calendar day.
type DayStats struct {
	Date                string   `json:"date"`
	TotalTasks          int      `json:"total_tasks"`
	CompletedTasks      int      `json:"completed_tasks"`
	Percentage          int      `json:"percentage"` // momentum score, 0..100
	Grade               Grade    `json:"grade"`
	TotalTarget         int      `json:"total_target"`
	TotalCompleted      int      `json:"total_completed"`
	FocusTasksTotal     int      `json:"focus_tasks_total"`
	FocusTasksCompleted int      `json:"focus_tasks_completed"`
	Wins                []string `json:"wins"`
}

// IsPerfectDay reports whether the day scored 100% with at least one
// task scheduled. A day with nothing due scores 100 but is not a
// perfect day for aggregate purposes.
func (d DayStats) IsPerfectDay() bool {
	return d.Percentage == 100 && d.TotalTasks > 0
}

// IsConsistentDay reports whether the day counts toward the consistency
// streak: when focus tasks exist only focus completions count, otherwise
// any completion counts.
func (d DayStats) IsConsistentDay() bool {
	if d.FocusTasksTotal > 0 {
		return d.FocusTasksCompleted > 0
	}
	return d.CompletedTasks > 0
}

// WeekStats is the derived completion summary for one Sunday-start week.
type WeekStats struct {
	WeekStartDate   string     `json:"week_start_date"`
	TotalTasks      int        `json:"total_tasks"`
	CompletedTasks  int        `json:"completed_tasks"`
	TotalTarget     int        `json:"total_target"`
	TotalCompleted  int        `json:"total_completed"`
	Percentage      int        `json:"percentage"`
	Grade           Grade      `json:"grade"`
	TrendVsLastWeek int        `json:"trend_vs_last_week"` // percentage-point delta
	ConsistencyDays int        `json:"consistency_days"`
	PerfectDays     int        `json:"perfect_days"`
	Days            []DayStats `json:"days"`
}
