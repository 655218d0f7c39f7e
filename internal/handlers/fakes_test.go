package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/momentum-app/momentum/internal/models"
)

// memTaskRepo is an in-memory TaskRepositoryInterface for handler tests.
type memTaskRepo struct {
	tasks map[uuid.UUID]*models.Task
	order []uuid.UUID
}

func newMemTaskRepo(tasks ...models.Task) *memTaskRepo {
	repo := &memTaskRepo{tasks: make(map[uuid.UUID]*models.Task)}
	for i := range tasks {
		t := tasks[i]
		repo.tasks[t.ID] = &t
		repo.order = append(repo.order, t.ID)
	}
	return repo
}

func (m *memTaskRepo) Create(ctx context.Context, task *models.Task) error {
	copied := *task
	m.tasks[task.ID] = &copied
	m.order = append(m.order, task.ID)
	return nil
}

func (m *memTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

func (m *memTaskRepo) List(ctx context.Context, includeArchived bool) ([]models.Task, error) {
	var out []models.Task
	for _, id := range m.order {
		task := m.tasks[id]
		if task == nil {
			continue
		}
		if !includeArchived && task.Archived {
			continue
		}
		out = append(out, *task)
	}
	return out, nil
}

func (m *memTaskRepo) Update(ctx context.Context, task *models.Task) error {
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *memTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.tasks, id)
	return nil
}

func (m *memTaskRepo) CountFocus(ctx context.Context) (int, error) {
	count := 0
	for _, task := range m.tasks {
		if task.Focus && !task.Archived {
			count++
		}
	}
	return count, nil
}

// memCompletionRepo is an in-memory CompletionRepositoryInterface.
type memCompletionRepo struct {
	logs map[string]*models.CompletionLog // key: taskID + "/" + date
}

func newMemCompletionRepo(logs ...models.CompletionLog) *memCompletionRepo {
	repo := &memCompletionRepo{logs: make(map[string]*models.CompletionLog)}
	for i := range logs {
		l := logs[i]
		repo.logs[l.TaskID.String()+"/"+l.Date] = &l
	}
	return repo
}

func (m *memCompletionRepo) GetByDate(ctx context.Context, date string) ([]models.CompletionLog, error) {
	var out []models.CompletionLog
	for _, l := range m.logs {
		if l.Date == date {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memCompletionRepo) GetRange(ctx context.Context, from, to string) ([]models.CompletionLog, error) {
	var out []models.CompletionLog
	for _, l := range m.logs {
		if l.Date >= from && l.Date <= to {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memCompletionRepo) Increment(ctx context.Context, taskID uuid.UUID, date string, target int, at time.Time) (*models.CompletionLog, error) {
	key := taskID.String() + "/" + date
	l, ok := m.logs[key]
	if !ok {
		l = &models.CompletionLog{
			ID:        uuid.New(),
			TaskID:    taskID,
			Date:      date,
			CreatedAt: at,
		}
		m.logs[key] = l
	}
	if l.CountCompleted < target {
		l.CountCompleted++
		l.Timestamps = append(l.Timestamps, at)
	}
	l.UpdatedAt = at
	copied := *l
	return &copied, nil
}

func (m *memCompletionRepo) Decrement(ctx context.Context, taskID uuid.UUID, date string) (*models.CompletionLog, error) {
	key := taskID.String() + "/" + date
	l, ok := m.logs[key]
	if !ok {
		return nil, nil
	}
	l.CountCompleted--
	if len(l.Timestamps) > 0 {
		l.Timestamps = l.Timestamps[:len(l.Timestamps)-1]
	}
	if l.CountCompleted <= 0 {
		delete(m.logs, key)
		return nil, nil
	}
	copied := *l
	return &copied, nil
}

// memStreakRepo is an in-memory StreakStateRepositoryInterface.
type memStreakRepo struct {
	state models.StreakState
}

func (m *memStreakRepo) Get(ctx context.Context) (models.StreakState, error) {
	return m.state, nil
}

func (m *memStreakRepo) Save(ctx context.Context, state models.StreakState) error {
	m.state = state
	return nil
}
