package queue

import (
	"time"

	"github.com/google/uuid"
)

// JobType represents the type of background job
type JobType string

const (
	// JobTypeStreakEvaluation evaluates streak state for a calendar day
	JobTypeStreakEvaluation JobType = "streak_evaluation"
	// JobTypeStatsRefresh recomputes rolling day/week statistics
	JobTypeStatsRefresh JobType = "stats_refresh"
)

// Job represents a background job
type Job struct {
	ID         uuid.UUID  `json:"id"`
	Type       JobType    `json:"type"`
	Date       string     `json:"date"`
	CreatedAt  time.Time  `json:"created_at"`
	NotBefore  *time.Time `json:"not_before,omitempty"`
	NotAfter   *time.Time `json:"not_after,omitempty"`
	RetryCount int        `json:"retry_count"`
	MaxRetries int        `json:"max_retries"`
}

// NewStreakEvaluationJob creates a job that re-evaluates streaks for the
// given calendar day. Completion taps arrive in bursts, so callers typically
// set NotBefore a few seconds out to debounce.
func NewStreakEvaluationJob(date string, notBefore *time.Time) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       JobTypeStreakEvaluation,
		Date:       date,
		CreatedAt:  time.Now(),
		NotBefore:  notBefore,
		MaxRetries: 3,
	}
}

// NewStatsRefreshJob creates a job that recomputes rolling stats ending at
// the given calendar day.
func NewStatsRefreshJob(date string) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       JobTypeStatsRefresh,
		Date:       date,
		CreatedAt:  time.Now(),
		MaxRetries: 3,
	}
}

// ShouldProcess returns true if the job is ready to be processed
func (j *Job) ShouldProcess() bool {
	now := time.Now()

	if j.NotBefore != nil && now.Before(*j.NotBefore) {
		return false
	}

	if j.NotAfter != nil && now.After(*j.NotAfter) {
		return false
	}

	return true
}

// CanRetry returns true if the job can be retried
func (j *Job) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// IncrementRetry increments the retry count
func (j *Job) IncrementRetry() {
	j.RetryCount++
}
