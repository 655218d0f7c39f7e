package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momentum-app/momentum/internal/models"
)

// TaskRepositoryInterface defines the interface for task repository
// operations. This interface enables better testability by allowing
// mock implementations.
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, includeArchived bool) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountFocus(ctx context.Context) (int, error)
}

// CompletionRepositoryInterface defines the interface for completion
// log repository operations
type CompletionRepositoryInterface interface {
	GetByDate(ctx context.Context, date string) ([]models.CompletionLog, error)
	GetRange(ctx context.Context, from, to string) ([]models.CompletionLog, error)
	Increment(ctx context.Context, taskID uuid.UUID, date string, target int, at time.Time) (*models.CompletionLog, error)
	Decrement(ctx context.Context, taskID uuid.UUID, date string) (*models.CompletionLog, error)
}

// StreakStateRepositoryInterface defines the interface for streak state
// persistence
type StreakStateRepositoryInterface interface {
	Get(ctx context.Context) (models.StreakState, error)
	Save(ctx context.Context, state models.StreakState) error
}

// Ensure concrete types implement the interfaces
var (
	_ TaskRepositoryInterface        = (*TaskRepository)(nil)
	_ CompletionRepositoryInterface  = (*CompletionRepository)(nil)
	_ StreakStateRepositoryInterface = (*StreakStateRepository)(nil)
)
