package workers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/momentum-app/momentum/internal/database"
	"github.com/momentum-app/momentum/internal/queue"
	"github.com/momentum-app/momentum/internal/scoring"
	"github.com/momentum-app/momentum/internal/streaks"
)

// retryBackoff is the delay before a failed job is retried.
const retryBackoff = 30 * time.Second

// StreakEvaluator processes streak evaluation and stats refresh jobs.
// Completion handlers enqueue evaluation jobs with a short NotBefore so
// a burst of taps collapses into one evaluation per day.
type StreakEvaluator struct {
	taskRepo       database.TaskRepositoryInterface
	completionRepo database.CompletionRepositoryInterface
	streakRepo     database.StreakStateRepositoryInterface
	jobQueue       queue.JobQueue
	logger         *zap.Logger
}

// NewStreakEvaluator creates a new streak evaluator
func NewStreakEvaluator(
	taskRepo database.TaskRepositoryInterface,
	completionRepo database.CompletionRepositoryInterface,
	streakRepo database.StreakStateRepositoryInterface,
	jobQueue queue.JobQueue,
	logger *zap.Logger,
) *StreakEvaluator {
	return &StreakEvaluator{
		taskRepo:       taskRepo,
		completionRepo: completionRepo,
		streakRepo:     streakRepo,
		jobQueue:       jobQueue,
		logger:         logger,
	}
}

// ProcessStreakEvaluationJob re-runs both streak engines for the job's
// calendar day and persists the updated state. Grace-day opportunities
// are logged, never spent here.
func (e *StreakEvaluator) ProcessStreakEvaluationJob(ctx context.Context, job *queue.Job) error {
	if job.Date == "" {
		return fmt.Errorf("date is required for streak evaluation job")
	}

	tasks, err := e.taskRepo.List(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	completions, err := e.completionRepo.GetByDate(ctx, job.Date)
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}

	state, err := e.streakRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get streak state: %w", err)
	}

	result := streaks.Evaluate(state, tasks, completions, job.Date)

	if err := e.streakRepo.Save(ctx, result.State); err != nil {
		return fmt.Errorf("failed to save streak state: %w", err)
	}

	for _, signal := range result.GraceAvailable {
		e.logger.Info("grace_day_available",
			zap.String("streak_type", string(signal.StreakType)),
			zap.String("date", signal.Date),
		)
	}

	e.logger.Info("streak_evaluation_complete",
		zap.String("date", job.Date),
		zap.Int("consistency_streak", result.State.ConsistencyStreak),
		zap.Int("perfect_streak", result.State.PerfectStreak),
	)

	return nil
}

// ProcessStatsRefreshJob recomputes the day's stats. Stats are derived,
// so this exists to surface the daily score in logs and to catch data
// problems early.
func (e *StreakEvaluator) ProcessStatsRefreshJob(ctx context.Context, job *queue.Job) error {
	if job.Date == "" {
		return fmt.Errorf("date is required for stats refresh job")
	}

	tasks, err := e.taskRepo.List(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	completions, err := e.completionRepo.GetByDate(ctx, job.Date)
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}

	day := scoring.ComputeDayStats(tasks, completions, job.Date)
	e.logger.Info("stats_refresh_complete",
		zap.String("date", job.Date),
		zap.Int("momentum_score", day.Percentage),
		zap.String("grade", string(day.Grade)),
		zap.Int("completed_tasks", day.CompletedTasks),
		zap.Int("total_tasks", day.TotalTasks),
	)

	return nil
}

// ProcessJob processes a job based on its type
func (e *StreakEvaluator) ProcessJob(ctx context.Context, msg *queue.Message) error {
	job := msg.Job

	switch job.Type {
	case queue.JobTypeStreakEvaluation:
		if err := e.ProcessStreakEvaluationJob(ctx, job); err != nil {
			return e.handleJobError(ctx, msg, job, err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	case queue.JobTypeStatsRefresh:
		if err := e.ProcessStatsRefreshJob(ctx, job); err != nil {
			return e.handleJobError(ctx, msg, job, err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	default:
		// Unknown job type, send to DLQ
		if nackErr := msg.Nack(false); nackErr != nil {
			e.logger.Warn("failed to nack unknown job type", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// handleJobError re-enqueues a failed job with a delay while retries
// remain, otherwise lets it fall through to the DLQ.
func (e *StreakEvaluator) handleJobError(ctx context.Context, msg *queue.Message, job *queue.Job, err error) error {
	if !job.CanRetry() {
		e.logger.Error("job_retries_exhausted",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
			zap.Error(err),
		)
		if nackErr := msg.Nack(false); nackErr != nil {
			e.logger.Warn("failed to nack exhausted job", zap.Error(nackErr))
		}
		return fmt.Errorf("retries exhausted for job %s: %w", job.ID, err)
	}

	notBefore := time.Now().Add(retryBackoff)
	retryJob := &queue.Job{
		ID:         job.ID,
		Type:       job.Type,
		Date:       job.Date,
		CreatedAt:  job.CreatedAt,
		NotBefore:  &notBefore,
		NotAfter:   job.NotAfter,
		RetryCount: job.RetryCount + 1,
		MaxRetries: job.MaxRetries,
	}

	if ackErr := msg.Ack(); ackErr != nil {
		e.logger.Warn("failed to ack job before re-enqueue", zap.Error(ackErr))
	}

	if enqueueErr := e.jobQueue.Enqueue(ctx, retryJob); enqueueErr != nil {
		return fmt.Errorf("failed to re-enqueue job %s: %w", job.ID, enqueueErr)
	}

	e.logger.Warn("job_retry_scheduled",
		zap.String("job_id", job.ID.String()),
		zap.String("job_type", string(job.Type)),
		zap.Int("retry_count", retryJob.RetryCount),
		zap.Time("not_before", notBefore),
		zap.Error(err),
	)
	return nil
}
