package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/momentum-app/momentum/internal/database"
	"github.com/momentum-app/momentum/internal/models"
	"github.com/momentum-app/momentum/internal/validation"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskRepo database.TaskRepositoryInterface
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskRepo database.TaskRepositoryInterface) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

// RegisterRoutes registers task routes on the given router
// The router should already have the /tasks prefix (e.g., from apiRouter.PathPrefix("/tasks"))
func (h *TaskHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods("GET")
	r.HandleFunc("", h.CreateTask).Methods("POST")
	r.HandleFunc("/{id}", h.GetTask).Methods("GET")
	r.HandleFunc("/{id}", h.UpdateTask).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteTask).Methods("DELETE")
	r.HandleFunc("/{id}/archive", h.ArchiveTask).Methods("POST")
	r.HandleFunc("/{id}/unarchive", h.UnarchiveTask).Methods("POST")
}

const (
	// MaxTaskNameLength is the maximum length for a task name
	MaxTaskNameLength = 200
	// MaxTargetPerDay caps the per-day completion target
	MaxTargetPerDay = 100
)

// CreateTaskRequest represents a create task request
type CreateTaskRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Kind         models.TaskKind `json:"kind" validate:"required,task_kind"`
	Schedule     models.Schedule `json:"schedule"`
	TargetPerDay int             `json:"target_per_day" validate:"min=0,max=100"`
	Focus        bool            `json:"focus"`
}

// UpdateTaskRequest represents an update task request
type UpdateTaskRequest struct {
	Name         *string          `json:"name,omitempty"`
	Kind         *models.TaskKind `json:"kind,omitempty"`
	Schedule     *models.Schedule `json:"schedule,omitempty"`
	TargetPerDay *int             `json:"target_per_day,omitempty"`
	Focus        *bool            `json:"focus,omitempty"`
}

// ListTasksResponse represents the response for listing tasks
type ListTasksResponse struct {
	Tasks []models.Task `json:"tasks"`
	Total int           `json:"total"`
}

// ListTasks lists tasks, active by default, with optional kind and
// focus filters
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	var kind *models.TaskKind
	if k := r.URL.Query().Get("kind"); k != "" {
		if err := validation.ValidateTaskKind(k); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		kindEnum := models.TaskKind(k)
		kind = &kindEnum
	}

	var focus *bool
	if f := r.URL.Query().Get("focus"); f != "" {
		focusVal := f == "true"
		focus = &focusVal
	}

	tasks, err := h.taskRepo.List(r.Context(), includeArchived)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve tasks")
		return
	}

	filtered := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if kind != nil && task.Kind != *kind {
			continue
		}
		if focus != nil && task.Focus != *focus {
			continue
		}
		filtered = append(filtered, task)
	}

	respondJSON(w, http.StatusOK, ListTasksResponse{Tasks: filtered, Total: len(filtered)})
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if !validateStruct(w, req) {
		return
	}

	req.Name = validation.SanitizeText(req.Name)
	if req.Name == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Name is required and cannot be empty after sanitization")
		return
	}

	if req.Schedule.Kind == "" {
		req.Schedule = models.Daily()
	}
	if err := req.Schedule.Validate(); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	ctx := r.Context()

	if req.Focus {
		if ok := h.checkFocusCapacity(w, r); !ok {
			return
		}
	}

	target := req.TargetPerDay
	if target < 1 {
		target = 1
	}

	now := time.Now()
	task := &models.Task{
		ID:           uuid.New(),
		Name:         req.Name,
		Kind:         req.Kind,
		Schedule:     req.Schedule,
		TargetPerDay: target,
		Focus:        req.Focus,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.taskRepo.Create(ctx, task); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create task")
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// GetTask retrieves a task by ID
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.loadTask(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// UpdateTask updates an existing task
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.loadTask(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name != nil {
		sanitized := validation.SanitizeText(*req.Name)
		if sanitized == "" {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Name cannot be empty after sanitization")
			return
		}
		if len(sanitized) > MaxTaskNameLength {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Name exceeds maximum length of %d characters", MaxTaskNameLength))
			return
		}
		task.Name = sanitized
	}
	if req.Kind != nil {
		if err := validation.ValidateTaskKind(string(*req.Kind)); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		task.Kind = *req.Kind
	}
	if req.Schedule != nil {
		if err := req.Schedule.Validate(); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		task.Schedule = *req.Schedule
	}
	if req.TargetPerDay != nil {
		if *req.TargetPerDay < 1 || *req.TargetPerDay > MaxTargetPerDay {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("target_per_day must be between 1 and %d", MaxTargetPerDay))
			return
		}
		task.TargetPerDay = *req.TargetPerDay
	}
	if req.Focus != nil {
		if *req.Focus && !task.Focus {
			if ok := h.checkFocusCapacity(w, r); !ok {
				return
			}
		}
		task.Focus = *req.Focus
	}

	task.UpdatedAt = time.Now()
	if err := h.taskRepo.Update(r.Context(), task); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update task")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task and its completion history
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.loadTask(w, r)
	if !ok {
		return
	}

	if err := h.taskRepo.Delete(r.Context(), task.ID); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ArchiveTask hides a task from scheduling while keeping its history
func (h *TaskHandler) ArchiveTask(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

// UnarchiveTask restores an archived task to active scheduling
func (h *TaskHandler) UnarchiveTask(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *TaskHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	task, ok := h.loadTask(w, r)
	if !ok {
		return
	}

	task.Archived = archived
	if archived {
		// Archived tasks give up their focus slot.
		task.Focus = false
	}
	task.UpdatedAt = time.Now()

	if err := h.taskRepo.Update(r.Context(), task); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update task")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// loadTask resolves the {id} path variable and fetches the task,
// writing the error response itself on failure.
func (h *TaskHandler) loadTask(w http.ResponseWriter, r *http.Request) (*models.Task, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid task ID")
		return nil, false
	}

	task, err := h.taskRepo.GetByID(r.Context(), id)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve task")
		return nil, false
	}
	if task == nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
		return nil, false
	}

	return task, true
}

// checkFocusCapacity enforces the focus-task cap, writing a conflict
// response when the cap is already reached. Callers only invoke this
// for tasks that are not currently focus, so the count never includes
// the task being promoted.
func (h *TaskHandler) checkFocusCapacity(w http.ResponseWriter, r *http.Request) bool {
	count, err := h.taskRepo.CountFocus(r.Context())
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to count focus tasks")
		return false
	}
	if count >= models.MaxFocusTasks {
		respondJSONError(w, http.StatusConflict, "Conflict", fmt.Sprintf("At most %d focus tasks are allowed", models.MaxFocusTasks))
		return false
	}
	return true
}

// decodeBody decodes a JSON request body, writing the error response
// itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return false
	}
	return true
}
