package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momentum-app/momentum/internal/models"
)

func newTask(s models.Schedule) *models.Task {
	return &models.Task{
		ID:           uuid.New(),
		Name:         "task",
		Kind:         models.TaskKindHabit,
		Schedule:     s,
		TargetPerDay: 1,
		CreatedAt:    time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local),
	}
}

func TestIsDue_Daily(t *testing.T) {
	t.Parallel()

	task := newTask(models.Daily())
	for _, day := range []string{"2025-01-12", "2025-01-15", "2025-06-30"} {
		if !IsDue(task, day) {
			t.Errorf("daily task not due on %s", day)
		}
	}
}

func TestIsDue_Archived(t *testing.T) {
	t.Parallel()

	task := newTask(models.Daily())
	task.Archived = true
	if IsDue(task, "2025-01-15") {
		t.Error("archived task reported due")
	}
}

func TestIsDue_Weekdays(t *testing.T) {
	t.Parallel()

	// Monday/Wednesday/Friday schedule.
	task := newTask(models.OnWeekdays(1, 3, 5))

	tests := []struct {
		day  string
		want bool
	}{
		{"2025-01-13", true},  // Monday
		{"2025-01-14", false}, // Tuesday
		{"2025-01-15", true},  // Wednesday
		{"2025-01-17", true},  // Friday
		{"2025-01-12", false}, // Sunday
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.day, func(t *testing.T) {
			t.Parallel()
			if got := IsDue(task, tt.day); got != tt.want {
				t.Errorf("IsDue(%s) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestIsDue_EmptyWeekdaySet(t *testing.T) {
	t.Parallel()

	task := newTask(models.OnWeekdays())
	for _, day := range []string{"2025-01-12", "2025-01-13", "2025-01-14"} {
		if IsDue(task, day) {
			t.Errorf("task with empty weekday set due on %s", day)
		}
	}
}

func TestIsDue_TimesPerWeek_TreatedAsDaily(t *testing.T) {
	t.Parallel()

	// The weekly quota is advisory; the task is due every day.
	task := newTask(models.TimesPerWeek(3))
	for _, day := range []string{"2025-01-12", "2025-01-13", "2025-01-14", "2025-01-15"} {
		if !IsDue(task, day) {
			t.Errorf("times-per-week task not due on %s", day)
		}
	}
}

func TestIsDue_EveryNDays(t *testing.T) {
	t.Parallel()

	// Anchored at creation day 2025-01-01.
	task := newTask(models.EveryNDays(3))

	tests := []struct {
		day  string
		want bool
	}{
		{"2025-01-01", true},
		{"2025-01-02", false},
		{"2025-01-03", false},
		{"2025-01-04", true},
		{"2025-01-07", true},
		{"2025-01-08", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.day, func(t *testing.T) {
			t.Parallel()
			if got := IsDue(task, tt.day); got != tt.want {
				t.Errorf("IsDue(%s) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestIsDue_EveryNDays_NonPositiveCadence(t *testing.T) {
	t.Parallel()

	// n <= 0 falls back to every day rather than dividing by zero.
	for _, n := range []int{0, -2} {
		task := newTask(models.EveryNDays(n))
		for _, day := range []string{"2025-01-01", "2025-01-02", "2025-01-05"} {
			if !IsDue(task, day) {
				t.Errorf("every-%d-days task not due on %s", n, day)
			}
		}
	}
}

func TestForDate_PreservesOrder(t *testing.T) {
	t.Parallel()

	a := newTask(models.Daily())
	a.Name = "a"
	b := newTask(models.OnWeekdays(0)) // Sunday only
	b.Name = "b"
	c := newTask(models.Daily())
	c.Name = "c"

	due := ForDate([]models.Task{*a, *b, *c}, "2025-01-15") // Wednesday
	if len(due) != 2 || due[0].Name != "a" || due[1].Name != "c" {
		t.Errorf("ForDate returned %d tasks in wrong order: %+v", len(due), due)
	}
}
