package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskKind classifies a task for display purposes. It has no effect on
// scheduling or scoring, except that the recommender uses chores as a
// tie-break (chores are framed as quick wins).
type TaskKind string

const (
	TaskKindHabit  TaskKind = "habit"
	TaskKindChore  TaskKind = "chore"
	TaskKindCustom TaskKind = "custom"
)

// IsValid reports whether the kind is one of the known values.
func (k TaskKind) IsValid() bool {
	switch k {
	case TaskKindHabit, TaskKindChore, TaskKindCustom:
		return true
	default:
		return false
	}
}

// MaxFocusTasks is the cap on user-designated focus tasks.
const MaxFocusTasks = 3

// Task represents a recurring obligation.
type Task struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Kind         TaskKind  `json:"kind"`
	Schedule     Schedule  `json:"schedule"`
	TargetPerDay int       `json:"target_per_day"`
	Focus        bool      `json:"focus"`
	Archived     bool      `json:"archived"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Target returns the per-day completion target, never less than 1.
func (t *Task) Target() int {
	if t.TargetPerDay < 1 {
		return 1
	}
	return t.TargetPerDay
}

// IsComplete reports whether count completions satisfy the task for a day.
func (t *Task) IsComplete(count int) bool {
	return count >= t.Target()
}

// Progress returns the fraction of the daily target met, capped at 1.
func (t *Task) Progress(count int) float64 {
	target := t.Target()
	if count >= target {
		return 1
	}
	if count <= 0 {
		return 0
	}
	return float64(count) / float64(target)
}
