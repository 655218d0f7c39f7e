// Package recommend ranks the remaining incomplete tasks on a day and
// suggests the single easiest next step.
package recommend

import (
	"sort"

	"github.com/momentum-app/momentum/internal/models"
	"github.com/momentum-app/momentum/internal/schedule"
)

// NextBestAction returns the best incomplete task for the day, or nil
// when everything due has met its target. Ranking, ascending: focus
// tasks first, then fewer remaining completions, then chores as quick
// wins. Remaining ties keep original collection order.
func NextBestAction(tasks []models.Task, completions []models.CompletionLog, date string) *models.Task {
	due := schedule.ForDate(tasks, date)
	counts := models.IndexCompletions(completions, date)

	type candidate struct {
		task      models.Task
		remaining int
	}
	var remaining []candidate
	for i := range due {
		t := due[i]
		if count := counts[t.ID]; !t.IsComplete(count) {
			remaining = append(remaining, candidate{task: t, remaining: t.Target() - count})
		}
	}
	if len(remaining) == 0 {
		return nil
	}

	sort.SliceStable(remaining, func(i, j int) bool {
		a, b := remaining[i], remaining[j]
		if a.task.Focus != b.task.Focus {
			return a.task.Focus
		}
		if a.remaining != b.remaining {
			return a.remaining < b.remaining
		}
		aChore := a.task.Kind == models.TaskKindChore
		bChore := b.task.Kind == models.TaskKindChore
		if aChore != bChore {
			return aChore
		}
		return false
	})

	best := remaining[0].task
	return &best
}
