package models

import (
	"time"

	"github.com/google/uuid"
)

// CompletionLog records the completions of one task on one calendar day.
// At most one log exists per (task, date) pair; a day with no completions
// for a task simply has no row. The row is created on the first completion
// and deleted when its count returns to zero.
type CompletionLog struct {
	ID             uuid.UUID   `json:"id"`
	TaskID         uuid.UUID   `json:"task_id"`
	Date           string      `json:"date"` // YYYY-MM-DD local calendar day
	CountCompleted int         `json:"count_completed"`
	Timestamps     []time.Time `json:"timestamps"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// CompletionIndex is a lookup of completion counts keyed by task for a
// single day. Absent tasks have count zero.
type CompletionIndex map[uuid.UUID]int

// IndexCompletions builds a per-task count index for one day. Logs for
// other days are ignored, as are orphaned logs whose task no longer
// exists (they are simply never looked up).
func IndexCompletions(completions []CompletionLog, date string) CompletionIndex {
	idx := make(CompletionIndex)
	for _, c := range completions {
		if c.Date == date {
			idx[c.TaskID] = c.CountCompleted
		}
	}
	return idx
}
