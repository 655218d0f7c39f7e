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

// CompletionRepository handles completion log database operations. It
// owns the at-most-one-log-per-(task, date) invariant: completion taps
// go through Increment/Decrement inside a transaction so concurrent taps
// cannot produce duplicate rows.
type CompletionRepository struct {
	db *DB
}

// NewCompletionRepository creates a new completion repository
func NewCompletionRepository(db *DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// GetByDate retrieves all completion logs for one calendar day
func (r *CompletionRepository) GetByDate(ctx context.Context, date string) ([]models.CompletionLog, error) {
	return r.query(ctx, `
		SELECT id, task_id, date, count_completed, timestamps, created_at, updated_at
		FROM completion_logs
		WHERE date = $1
		ORDER BY created_at ASC
	`, date)
}

// GetRange retrieves completion logs for the inclusive date range
// [from, to]. Dates sort lexicographically because of the YYYY-MM-DD
// encoding.
func (r *CompletionRepository) GetRange(ctx context.Context, from, to string) ([]models.CompletionLog, error) {
	return r.query(ctx, `
		SELECT id, task_id, date, count_completed, timestamps, created_at, updated_at
		FROM completion_logs
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC, created_at ASC
	`, from, to)
}

func (r *CompletionRepository) query(ctx context.Context, query string, args ...any) ([]models.CompletionLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query completion logs: %w", err)
	}
	defer rows.Close()

	var logs []models.CompletionLog
	for rows.Next() {
		log, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan completion log: %w", err)
		}
		logs = append(logs, *log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completion logs: %w", err)
	}
	return logs, nil
}

// Increment records one completion of a task on a day, creating the log
// row on the first tap. The count is clamped at the task's daily target.
func (r *CompletionRepository) Increment(ctx context.Context, taskID uuid.UUID, date string, target int, at time.Time) (*models.CompletionLog, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	log, err := getForUpdate(ctx, tx, taskID, date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if log == nil {
		log = &models.CompletionLog{
			ID:             uuid.New(),
			TaskID:         taskID,
			Date:           date,
			CountCompleted: 1,
			Timestamps:     []time.Time{at},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		tsJSON, err := json.Marshal(log.Timestamps)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal timestamps: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO completion_logs (id, task_id, date, count_completed, timestamps, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, log.ID, log.TaskID, log.Date, log.CountCompleted, tsJSON, log.CreatedAt, log.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert completion log: %w", err)
		}
	} else {
		if target > 0 && log.CountCompleted >= target {
			// Already at target; extra taps are a no-op.
			return log, tx.Commit()
		}
		log.CountCompleted++
		log.Timestamps = append(log.Timestamps, at)
		log.UpdatedAt = now
		if err := updateLog(ctx, tx, log); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit completion: %w", err)
	}
	return log, nil
}

// Decrement removes one completion of a task on a day. The log row is
// deleted when its count returns to zero; nil is returned in that case.
func (r *CompletionRepository) Decrement(ctx context.Context, taskID uuid.UUID, date string) (*models.CompletionLog, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	log, err := getForUpdate(ctx, tx, taskID, date)
	if err != nil {
		return nil, err
	}
	if log == nil {
		// Nothing recorded: absence means count zero, not an error.
		return nil, tx.Commit()
	}

	log.CountCompleted--
	if len(log.Timestamps) > 0 {
		log.Timestamps = log.Timestamps[:len(log.Timestamps)-1]
	}

	if log.CountCompleted <= 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM completion_logs WHERE id = $1`, log.ID); err != nil {
			return nil, fmt.Errorf("failed to delete completion log: %w", err)
		}
		log = nil
	} else {
		log.UpdatedAt = time.Now()
		if err := updateLog(ctx, tx, log); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit completion: %w", err)
	}
	return log, nil
}

func getForUpdate(ctx context.Context, tx *sql.Tx, taskID uuid.UUID, date string) (*models.CompletionLog, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT id, task_id, date, count_completed, timestamps, created_at, updated_at
		FROM completion_logs
		WHERE task_id = $1 AND date = $2
		FOR UPDATE
	`, taskID, date)

	log, err := scanCompletion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get completion log: %w", err)
	}
	return log, nil
}

func updateLog(ctx context.Context, tx *sql.Tx, log *models.CompletionLog) error {
	tsJSON, err := json.Marshal(log.Timestamps)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamps: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE completion_logs
		SET count_completed = $2, timestamps = $3, updated_at = $4
		WHERE id = $1
	`, log.ID, log.CountCompleted, tsJSON, log.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update completion log: %w", err)
	}
	return nil
}

func scanCompletion(row rowScanner) (*models.CompletionLog, error) {
	log := &models.CompletionLog{}
	var tsJSON []byte

	err := row.Scan(
		&log.ID,
		&log.TaskID,
		&log.Date,
		&log.CountCompleted,
		&tsJSON,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tsJSON, &log.Timestamps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timestamps: %w", err)
	}

	return log, nil
}
