package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/momentum-app/momentum/internal/database"
	"github.com/momentum-app/momentum/internal/dates"
	"github.com/momentum-app/momentum/internal/recommend"
	"github.com/momentum-app/momentum/internal/validation"
)

// NextActionHandler serves the next-best-action recommendation
type NextActionHandler struct {
	taskRepo       database.TaskRepositoryInterface
	completionRepo database.CompletionRepositoryInterface
}

// NewNextActionHandler creates a new next action handler
func NewNextActionHandler(taskRepo database.TaskRepositoryInterface, completionRepo database.CompletionRepositoryInterface) *NextActionHandler {
	return &NextActionHandler{taskRepo: taskRepo, completionRepo: completionRepo}
}

// RegisterRoutes registers the next action route on the given router
func (h *NextActionHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetNextAction).Methods("GET")
}

// GetNextAction returns the single most valuable remaining task for the
// day, or null when everything due is done
func (h *NextActionHandler) GetNextAction(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = dates.Today(time.Now())
	} else if err := validation.ValidateCalendarDay(date); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	tasks, err := h.taskRepo.List(r.Context(), false)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve tasks")
		return
	}

	completions, err := h.completionRepo.GetByDate(r.Context(), date)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve completions")
		return
	}

	respondJSON(w, http.StatusOK, recommend.NextBestAction(tasks, completions, date))
}
