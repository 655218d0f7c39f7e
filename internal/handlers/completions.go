package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/momentum-app/momentum/internal/database"
	"github.com/momentum-app/momentum/internal/models"
	"github.com/momentum-app/momentum/internal/queue"
	"github.com/momentum-app/momentum/internal/validation"
)

// evaluationDebounce is how long a completion tap waits before the
// streak evaluation job runs, so a burst of taps evaluates once.
const evaluationDebounce = 5 * time.Second

// CompletionHandler handles completion log requests
type CompletionHandler struct {
	taskRepo       database.TaskRepositoryInterface
	completionRepo database.CompletionRepositoryInterface
	jobQueue       queue.JobQueue
	logger         *zap.Logger
}

// NewCompletionHandler creates a new completion handler. jobQueue may be
// nil, in which case streak evaluation is not triggered automatically.
func NewCompletionHandler(
	taskRepo database.TaskRepositoryInterface,
	completionRepo database.CompletionRepositoryInterface,
	jobQueue queue.JobQueue,
	logger *zap.Logger,
) *CompletionHandler {
	return &CompletionHandler{
		taskRepo:       taskRepo,
		completionRepo: completionRepo,
		jobQueue:       jobQueue,
		logger:         logger,
	}
}

// RegisterRoutes registers completion routes on the given router
// The router should already have the /completions prefix
func (h *CompletionHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListCompletions).Methods("GET")
	r.HandleFunc("", h.Increment).Methods("POST")
	r.HandleFunc("/decrement", h.Decrement).Methods("POST")
}

// CompletionRequest represents an increment or decrement request
type CompletionRequest struct {
	TaskID uuid.UUID `json:"task_id" validate:"required"`
	Date   string    `json:"date" validate:"required,calendar_day"`
}

// ListCompletions returns completion logs for one day or a date range
func (h *CompletionHandler) ListCompletions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if date := q.Get("date"); date != "" {
		if err := validation.ValidateCalendarDay(date); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		logs, err := h.completionRepo.GetByDate(r.Context(), date)
		if err != nil {
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve completions")
			return
		}
		respondJSON(w, http.StatusOK, logs)
		return
	}

	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Either date or both from and to are required")
		return
	}
	for _, d := range []string{from, to} {
		if err := validation.ValidateCalendarDay(d); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
	}

	logs, err := h.completionRepo.GetRange(r.Context(), from, to)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve completions")
		return
	}
	respondJSON(w, http.StatusOK, logs)
}

// Increment records one completion tap for a task on a day. Counts are
// clamped at the task's target; a tap at target is a no-op.
func (h *CompletionHandler) Increment(w http.ResponseWriter, r *http.Request) {
	req, task, ok := h.decodeAndLoad(w, r)
	if !ok {
		return
	}

	log, err := h.completionRepo.Increment(r.Context(), task.ID, req.Date, task.Target(), time.Now())
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to record completion")
		return
	}

	h.enqueueEvaluation(r, req.Date)
	respondJSON(w, http.StatusOK, log)
}

// Decrement undoes one completion tap. The log row is deleted when the
// count returns to zero, in which case the response data is null.
func (h *CompletionHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	req, task, ok := h.decodeAndLoad(w, r)
	if !ok {
		return
	}

	log, err := h.completionRepo.Decrement(r.Context(), task.ID, req.Date)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to undo completion")
		return
	}

	h.enqueueEvaluation(r, req.Date)
	respondJSON(w, http.StatusOK, log)
}

func (h *CompletionHandler) decodeAndLoad(w http.ResponseWriter, r *http.Request) (*CompletionRequest, *models.Task, bool) {
	var req CompletionRequest
	if !decodeBody(w, r, &req) {
		return nil, nil, false
	}

	if !validateStruct(w, req) {
		return nil, nil, false
	}

	task, err := h.taskRepo.GetByID(r.Context(), req.TaskID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve task")
		return nil, nil, false
	}
	if task == nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
		return nil, nil, false
	}

	return &req, task, true
}

// enqueueEvaluation schedules a debounced streak evaluation for the day.
// Failures are logged, not surfaced; the tap itself already succeeded
// and a later tap or manual evaluate will catch the state up.
func (h *CompletionHandler) enqueueEvaluation(r *http.Request, date string) {
	if h.jobQueue == nil {
		return
	}

	notBefore := time.Now().Add(evaluationDebounce)
	job := queue.NewStreakEvaluationJob(date, &notBefore)

	if err := h.jobQueue.Enqueue(r.Context(), job); err != nil {
		h.logger.Warn("failed_to_enqueue_evaluation",
			zap.String("date", date),
			zap.Error(err),
		)
	}
}
