package database

import (
	"testing"

	"github.com/google/uuid"
)

func TestDefaultTasks(t *testing.T) {
	t.Parallel()

	tasks := DefaultTasks()
	if len(tasks) == 0 {
		t.Fatal("expected at least one default task")
	}

	seen := make(map[uuid.UUID]bool)
	names := make(map[string]bool)
	for _, task := range tasks {
		if task.ID == uuid.Nil {
			t.Errorf("task %q has nil ID", task.Name)
		}
		if seen[task.ID] {
			t.Errorf("duplicate task ID %s", task.ID)
		}
		seen[task.ID] = true

		if task.Name == "" {
			t.Error("task has empty name")
		}
		if names[task.Name] {
			t.Errorf("duplicate task name %q", task.Name)
		}
		names[task.Name] = true

		if !task.Kind.IsValid() {
			t.Errorf("task %q has invalid kind %q", task.Name, task.Kind)
		}
		if task.TargetPerDay < 1 {
			t.Errorf("task %q has target %d, want >= 1", task.Name, task.TargetPerDay)
		}
		if task.Archived {
			t.Errorf("task %q should not start archived", task.Name)
		}
	}
}

func TestDefaultTasksFreshIDs(t *testing.T) {
	t.Parallel()

	first := DefaultTasks()
	second := DefaultTasks()
	for i := range first {
		if first[i].ID == second[i].ID {
			t.Errorf("task %q reuses ID across calls", first[i].Name)
		}
	}
}

func TestDefaultSchedulesValid(t *testing.T) {
	t.Parallel()

	for _, task := range DefaultTasks() {
		if err := task.Schedule.Validate(); err != nil {
			t.Errorf("task %q has invalid schedule: %v", task.Name, err)
		}
	}
}
