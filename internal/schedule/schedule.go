// Package schedule decides which tasks are due on a given calendar day.
package schedule

import (
	"github.com/momentum-app/momentum/internal/dates"
	"github.com/momentum-app/momentum/internal/models"
)

// IsDue reports whether a task is due on the given day. Archived tasks
// are never due.
func IsDue(task *models.Task, date string) bool {
	if task.Archived {
		return false
	}
	switch task.Schedule.Kind {
	case models.ScheduleDaily:
		return true
	case models.ScheduleWeekdays:
		// An empty weekday set means never due.
		return task.Schedule.HasWeekday(dates.DayOfWeek(date))
	case models.ScheduleTimesPerWeek:
		// The weekly quota is advisory only and is not enforced
		// anywhere; the task shows up as due every day.
		return true
	case models.ScheduleEveryNDays:
		n := task.Schedule.EveryNDays
		if n <= 0 {
			n = 1
		}
		anchor := dates.Format(task.CreatedAt)
		return dates.DaysBetween(anchor, date)%n == 0
	default:
		return false
	}
}

// ForDate filters tasks to those due on the given day, preserving input
// order.
func ForDate(tasks []models.Task, date string) []models.Task {
	var due []models.Task
	for i := range tasks {
		if IsDue(&tasks[i], date) {
			due = append(due, tasks[i])
		}
	}
	return due
}
