package scoring

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momentum-app/momentum/internal/models"
)

var taskEpoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)

func dailyTask(name string, target int, focus bool) models.Task {
	return models.Task{
		ID:           uuid.New(),
		Name:         name,
		Kind:         models.TaskKindHabit,
		Schedule:     models.Daily(),
		TargetPerDay: target,
		Focus:        focus,
		CreatedAt:    taskEpoch,
	}
}

func logFor(task models.Task, date string, count int) models.CompletionLog {
	return models.CompletionLog{
		ID:             uuid.New(),
		TaskID:         task.ID,
		Date:           date,
		CountCompleted: count,
	}
}

func TestGradeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		percentage int
		want       models.Grade
	}{
		{100, models.GradeA},
		{90, models.GradeA},
		{89, models.GradeB},
		{80, models.GradeB},
		{79, models.GradeC},
		{70, models.GradeC},
		{69, models.GradeD},
		{60, models.GradeD},
		{59, models.GradeF},
		{0, models.GradeF},
	}
	for _, tt := range tests {
		if got := GradeFor(tt.percentage); got != tt.want {
			t.Errorf("GradeFor(%d) = %s, want %s", tt.percentage, got, tt.want)
		}
	}
}

func TestMomentumScore_NothingScheduled(t *testing.T) {
	t.Parallel()

	// A day with nothing due is a perfect day by definition.
	if got := MomentumScore(nil, nil, "2025-01-15"); got != 100 {
		t.Errorf("MomentumScore with no tasks = %d, want 100", got)
	}

	sunday := dailyTask("sunday only", 1, false)
	sunday.Schedule = models.OnWeekdays(0)
	if got := MomentumScore([]models.Task{sunday}, nil, "2025-01-15"); got != 100 {
		t.Errorf("MomentumScore with nothing due = %d, want 100", got)
	}
}

func TestMomentumScore_PartialCompletion(t *testing.T) {
	t.Parallel()

	// Two tasks at target 2, completions {2, 1}: 3 of 4 sub-completions.
	a := dailyTask("a", 2, false)
	b := dailyTask("b", 2, false)
	tasks := []models.Task{a, b}
	completions := []models.CompletionLog{
		logFor(a, "2025-01-15", 2),
		logFor(b, "2025-01-15", 1),
	}

	if got := MomentumScore(tasks, completions, "2025-01-15"); got != 75 {
		t.Errorf("MomentumScore = %d, want 75", got)
	}
}

func TestMomentumScore_ClampsOvercompletion(t *testing.T) {
	t.Parallel()

	a := dailyTask("a", 1, false)
	b := dailyTask("b", 1, false)
	completions := []models.CompletionLog{
		logFor(a, "2025-01-15", 5), // beyond target, must not over-count
	}

	if got := MomentumScore([]models.Task{a, b}, completions, "2025-01-15"); got != 50 {
		t.Errorf("MomentumScore = %d, want 50", got)
	}
}

func TestDayCompletionPercent_AliasesMomentumScore(t *testing.T) {
	t.Parallel()

	a := dailyTask("a", 3, false)
	completions := []models.CompletionLog{logFor(a, "2025-01-15", 2)}
	tasks := []models.Task{a}

	if DayCompletionPercent(tasks, completions, "2025-01-15") != MomentumScore(tasks, completions, "2025-01-15") {
		t.Error("DayCompletionPercent and MomentumScore disagree on identical inputs")
	}
}

func TestComputeDayStats(t *testing.T) {
	t.Parallel()

	focus := dailyTask("meditate", 1, true)
	habit := dailyTask("shower", 1, false)
	chore := dailyTask("dishes", 2, false)
	tasks := []models.Task{focus, habit, chore}
	completions := []models.CompletionLog{
		logFor(focus, "2025-01-15", 1),
		logFor(chore, "2025-01-15", 1),
	}

	got := ComputeDayStats(tasks, completions, "2025-01-15")

	if got.TotalTasks != 3 {
		t.Errorf("TotalTasks = %d, want 3", got.TotalTasks)
	}
	if got.CompletedTasks != 1 {
		t.Errorf("CompletedTasks = %d, want 1", got.CompletedTasks)
	}
	if got.TotalTarget != 4 || got.TotalCompleted != 2 {
		t.Errorf("totals = %d/%d, want 2/4", got.TotalCompleted, got.TotalTarget)
	}
	if got.Percentage != 50 || got.Grade != models.GradeF {
		t.Errorf("percentage/grade = %d/%s, want 50/F", got.Percentage, got.Grade)
	}
	if got.FocusTasksTotal != 1 || got.FocusTasksCompleted != 1 {
		t.Errorf("focus = %d/%d, want 1/1", got.FocusTasksCompleted, got.FocusTasksTotal)
	}
	if !reflect.DeepEqual(got.Wins, []string{"meditate"}) {
		t.Errorf("Wins = %v, want [meditate]", got.Wins)
	}
}

func TestComputeDayStats_Idempotent(t *testing.T) {
	t.Parallel()

	a := dailyTask("a", 2, true)
	tasks := []models.Task{a}
	completions := []models.CompletionLog{logFor(a, "2025-01-15", 1)}

	first := ComputeDayStats(tasks, completions, "2025-01-15")
	second := ComputeDayStats(tasks, completions, "2025-01-15")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated ComputeDayStats differ: %+v vs %+v", first, second)
	}
}

func TestComputeWeekStats_NoCompletions(t *testing.T) {
	t.Parallel()

	// With tasks scheduled but nothing done, the week scores 0, not 100.
	tasks := []models.Task{dailyTask("a", 1, false)}
	week := ComputeWeekStats(tasks, nil, "2025-01-12", nil)

	if week.Percentage != 0 {
		t.Errorf("week percentage = %d, want 0", week.Percentage)
	}
	if week.TotalTasks != 7 || week.TotalTarget != 7 {
		t.Errorf("week totals = %d tasks / %d target, want 7/7", week.TotalTasks, week.TotalTarget)
	}
	if week.TrendVsLastWeek != 0 {
		t.Errorf("trend without previous week = %d, want 0", week.TrendVsLastWeek)
	}
}

func TestComputeWeekStats_PerfectDayExcludesZeroTaskDays(t *testing.T) {
	t.Parallel()

	// Task due Monday only, completed: one perfect day. The six empty
	// days score 100 individually but do not count as perfect days.
	monday := dailyTask("monday", 1, false)
	monday.Schedule = models.OnWeekdays(1)
	tasks := []models.Task{monday}
	completions := []models.CompletionLog{logFor(monday, "2025-01-13", 1)}

	week := ComputeWeekStats(tasks, completions, "2025-01-12", nil)
	if week.PerfectDays != 1 {
		t.Errorf("PerfectDays = %d, want 1", week.PerfectDays)
	}
	if week.Percentage != 100 {
		t.Errorf("week percentage = %d, want 100", week.Percentage)
	}
}

func TestComputeWeekStats_Trend(t *testing.T) {
	t.Parallel()

	a := dailyTask("a", 1, false)
	tasks := []models.Task{a}

	prev := ComputeWeekStats(tasks, nil, "2025-01-05", nil)
	var completions []models.CompletionLog
	for day := 12; day <= 18; day++ {
		completions = append(completions, logFor(a, time.Date(2025, 1, day, 0, 0, 0, 0, time.Local).Format("2006-01-02"), 1))
	}
	week := ComputeWeekStats(tasks, completions, "2025-01-12", &prev)

	if week.Percentage != 100 {
		t.Errorf("week percentage = %d, want 100", week.Percentage)
	}
	if week.TrendVsLastWeek != 100 {
		t.Errorf("trend = %d, want 100", week.TrendVsLastWeek)
	}
}

func TestLastNDaysStats(t *testing.T) {
	t.Parallel()

	a := dailyTask("a", 1, false)
	tasks := []models.Task{a}
	completions := []models.CompletionLog{logFor(a, "2025-01-15", 1)}

	stats := LastNDaysStats(tasks, completions, 3, "2025-01-15")
	if len(stats) != 3 {
		t.Fatalf("got %d day stats, want 3", len(stats))
	}
	if stats[0].Date != "2025-01-13" || stats[2].Date != "2025-01-15" {
		t.Errorf("unexpected date range: %s .. %s", stats[0].Date, stats[2].Date)
	}
	if stats[2].Percentage != 100 || stats[1].Percentage != 0 {
		t.Errorf("percentages = %d, %d; want 0, 100", stats[1].Percentage, stats[2].Percentage)
	}
}

func TestLastNWeeksStats_ChainsTrend(t *testing.T) {
	t.Parallel()

	a := dailyTask("a", 1, false)
	tasks := []models.Task{a}
	// Complete every day of the middle week only.
	var completions []models.CompletionLog
	for day := 5; day <= 11; day++ {
		completions = append(completions, logFor(a, time.Date(2025, 1, day, 0, 0, 0, 0, time.Local).Format("2006-01-02"), 1))
	}

	weeks := LastNWeeksStats(tasks, completions, 3, "2025-01-15")
	if len(weeks) != 3 {
		t.Fatalf("got %d weeks, want 3", len(weeks))
	}
	// First computed week has no predecessor: trend 0. The middle week
	// jumps to 100, the final week falls back to 0.
	if weeks[0].TrendVsLastWeek != 0 {
		t.Errorf("weeks[0] trend = %d, want 0", weeks[0].TrendVsLastWeek)
	}
	if weeks[1].Percentage != 100 || weeks[1].TrendVsLastWeek != 100 {
		t.Errorf("weeks[1] = %d%% trend %d, want 100%% trend 100", weeks[1].Percentage, weeks[1].TrendVsLastWeek)
	}
	if weeks[2].TrendVsLastWeek != -100 {
		t.Errorf("weeks[2] trend = %d, want -100", weeks[2].TrendVsLastWeek)
	}
}
