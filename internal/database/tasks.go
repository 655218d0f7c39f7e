package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momentum-app/momentum/internal/models"
)

// TaskRepository handles task database operations
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, name, kind, schedule, target_per_day, focus, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	scheduleJSON, err := json.Marshal(task.Schedule)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err = r.db.ExecContext(ctx, query,
		task.ID,
		task.Name,
		task.Kind,
		scheduleJSON,
		task.TargetPerDay,
		task.Focus,
		task.Archived,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID. Returns nil when no task exists.
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := `
		SELECT id, name, kind, schedule, target_per_day, focus, archived, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// List retrieves tasks in creation order. Archived tasks are included
// only when includeArchived is set.
func (r *TaskRepository) List(ctx context.Context, includeArchived bool) ([]models.Task, error) {
	query := `
		SELECT id, name, kind, schedule, target_per_day, focus, archived, created_at, updated_at
		FROM tasks
	`
	if !includeArchived {
		query += " WHERE archived = FALSE"
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET name = $2, kind = $3, schedule = $4, target_per_day = $5, focus = $6, archived = $7, updated_at = $8
		WHERE id = $1
	`

	scheduleJSON, err := json.Marshal(task.Schedule)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	task.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Name,
		task.Kind,
		scheduleJSON,
		task.TargetPerDay,
		task.Focus,
		task.Archived,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task not found: %s", task.ID)
	}

	return nil
}

// Delete removes a task and, via the schema's cascade, its completion logs
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

// CountFocus counts non-archived focus tasks, used to enforce the cap
func (r *TaskRepository) CountFocus(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE focus = TRUE AND archived = FALSE`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count focus tasks: %w", err)
	}
	return count, nil
}

// Count returns the total number of tasks, archived included
func (r *TaskRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var scheduleJSON []byte

	err := row.Scan(
		&task.ID,
		&task.Name,
		&task.Kind,
		&scheduleJSON,
		&task.TargetPerDay,
		&task.Focus,
		&task.Archived,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(scheduleJSON, &task.Schedule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schedule: %w", err)
	}

	return task, nil
}
