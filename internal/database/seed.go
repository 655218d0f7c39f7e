package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momentum-app/momentum/internal/models"
)

// DefaultTasks returns the starter set offered to a fresh install.
func DefaultTasks() []models.Task {
	return []models.Task{
		{
			ID:           uuid.New(),
			Name:         "Drink water",
			Kind:         models.TaskKindHabit,
			Schedule:     models.Daily(),
			TargetPerDay: 3,
		},
		{
			ID:           uuid.New(),
			Name:         "Tidy one surface",
			Kind:         models.TaskKindChore,
			Schedule:     models.Daily(),
			TargetPerDay: 1,
		},
		{
			ID:           uuid.New(),
			Name:         "Take out trash",
			Kind:         models.TaskKindChore,
			Schedule:     models.OnWeekdays(1, 4),
			TargetPerDay: 1,
		},
		{
			ID:           uuid.New(),
			Name:         "Stretch",
			Kind:         models.TaskKindHabit,
			Schedule:     models.TimesPerWeek(3),
			TargetPerDay: 1,
		},
	}
}

// SeedDefaults inserts the default tasks when the tasks table is empty.
// It returns the number of tasks created.
func (r *TaskRepository) SeedDefaults(ctx context.Context) (int, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	tasks := DefaultTasks()
	for i := range tasks {
		if err := r.Create(ctx, &tasks[i]); err != nil {
			return i, fmt.Errorf("failed to seed task %q: %w", tasks[i].Name, err)
		}
	}
	return len(tasks), nil
}
