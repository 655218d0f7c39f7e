package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/momentum-app/momentum/internal/models"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTaskRouter(repo *memTaskRepo) *mux.Router {
	r := mux.NewRouter()
	NewTaskHandler(repo).RegisterRoutes(r.PathPrefix("/api/v1/tasks").Subrouter())
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
	}
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	repo := newMemTaskRepo()
	router := newTaskRouter(repo)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks", CreateTaskRequest{
		Name: "Morning run",
		Kind: models.TaskKindHabit,
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var task models.Task
	decodeData(t, rec, &task)
	if task.Name != "Morning run" {
		t.Errorf("Name = %q, want %q", task.Name, "Morning run")
	}
	if task.Schedule.Kind != models.ScheduleDaily {
		t.Errorf("Schedule.Kind = %q, want daily default", task.Schedule.Kind)
	}
	if task.TargetPerDay != 1 {
		t.Errorf("TargetPerDay = %d, want 1 default", task.TargetPerDay)
	}
}

func TestCreateTaskInvalidKind(t *testing.T) {
	t.Parallel()

	router := newTaskRouter(newMemTaskRepo())
	rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks", map[string]any{
		"name": "Stretch",
		"kind": "sport",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateTaskFocusCap(t *testing.T) {
	t.Parallel()

	var seeded []models.Task
	for i := 0; i < models.MaxFocusTasks; i++ {
		seeded = append(seeded, models.Task{
			ID: uuid.New(), Name: "Focus", Kind: models.TaskKindHabit,
			Schedule: models.Daily(), TargetPerDay: 1, Focus: true,
		})
	}
	router := newTaskRouter(newMemTaskRepo(seeded...))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks", CreateTaskRequest{
		Name:  "One too many",
		Kind:  models.TaskKindHabit,
		Focus: true,
	})

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestListTasksFilters(t *testing.T) {
	t.Parallel()

	habit := models.Task{ID: uuid.New(), Name: "Run", Kind: models.TaskKindHabit, Schedule: models.Daily(), TargetPerDay: 1, Focus: true}
	chore := models.Task{ID: uuid.New(), Name: "Dishes", Kind: models.TaskKindChore, Schedule: models.Daily(), TargetPerDay: 1}
	archived := models.Task{ID: uuid.New(), Name: "Old", Kind: models.TaskKindHabit, Schedule: models.Daily(), TargetPerDay: 1, Archived: true}
	router := newTaskRouter(newMemTaskRepo(habit, chore, archived))

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "default excludes archived", query: "", want: 2},
		{name: "include archived", query: "?include_archived=true", want: 3},
		{name: "kind filter", query: "?kind=chore", want: 1},
		{name: "focus filter", query: "?focus=true", want: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks"+tt.query, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			var resp ListTasksResponse
			decodeData(t, rec, &resp)
			if resp.Total != tt.want {
				t.Errorf("Total = %d, want %d", resp.Total, tt.want)
			}
		})
	}
}

func TestGetTaskNotFound(t *testing.T) {
	t.Parallel()

	router := newTaskRouter(newMemTaskRepo())

	rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/tasks/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d for malformed id", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	task := models.Task{
		ID: uuid.New(), Name: "Read", Kind: models.TaskKindHabit,
		Schedule: models.Daily(), TargetPerDay: 1, CreatedAt: time.Now(),
	}
	repo := newMemTaskRepo(task)
	router := newTaskRouter(repo)

	name := "Read 20 pages"
	target := 2
	rec := doJSON(t, router, http.MethodPatch, "/api/v1/tasks/"+task.ID.String(), UpdateTaskRequest{
		Name:         &name,
		TargetPerDay: &target,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var updated models.Task
	decodeData(t, rec, &updated)
	if updated.Name != name {
		t.Errorf("Name = %q, want %q", updated.Name, name)
	}
	if updated.TargetPerDay != target {
		t.Errorf("TargetPerDay = %d, want %d", updated.TargetPerDay, target)
	}
}

func TestArchiveTaskClearsFocus(t *testing.T) {
	t.Parallel()

	task := models.Task{
		ID: uuid.New(), Name: "Run", Kind: models.TaskKindHabit,
		Schedule: models.Daily(), TargetPerDay: 1, Focus: true,
	}
	repo := newMemTaskRepo(task)
	router := newTaskRouter(repo)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks/"+task.ID.String()+"/archive", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var archived models.Task
	decodeData(t, rec, &archived)
	if !archived.Archived {
		t.Error("expected task to be archived")
	}
	if archived.Focus {
		t.Error("expected archived task to lose focus")
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/tasks/"+task.ID.String()+"/unarchive", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unarchive status = %d, want %d", rec.Code, http.StatusOK)
	}
	var restored models.Task
	decodeData(t, rec, &restored)
	if restored.Archived {
		t.Error("expected task to be unarchived")
	}
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	task := models.Task{ID: uuid.New(), Name: "Run", Kind: models.TaskKindHabit, Schedule: models.Daily(), TargetPerDay: 1}
	repo := newMemTaskRepo(task)
	router := newTaskRouter(repo)

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/tasks/"+task.ID.String(), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/tasks/"+task.ID.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
