package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/momentum-app/momentum/internal/database"
	"github.com/momentum-app/momentum/internal/models"
	"github.com/momentum-app/momentum/internal/streaks"
	"github.com/momentum-app/momentum/internal/validation"
)

// StreakHandler handles streak state requests
type StreakHandler struct {
	taskRepo       database.TaskRepositoryInterface
	completionRepo database.CompletionRepositoryInterface
	streakRepo     database.StreakStateRepositoryInterface
}

// NewStreakHandler creates a new streak handler
func NewStreakHandler(
	taskRepo database.TaskRepositoryInterface,
	completionRepo database.CompletionRepositoryInterface,
	streakRepo database.StreakStateRepositoryInterface,
) *StreakHandler {
	return &StreakHandler{
		taskRepo:       taskRepo,
		completionRepo: completionRepo,
		streakRepo:     streakRepo,
	}
}

// RegisterRoutes registers streak routes on the given router
// The router should already have the /streaks prefix
func (h *StreakHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetState).Methods("GET")
	r.HandleFunc("/evaluate", h.Evaluate).Methods("POST")
	r.HandleFunc("/grace", h.ApplyGrace).Methods("POST")
}

// EvaluateRequest represents a synchronous streak evaluation request
type EvaluateRequest struct {
	Date string `json:"date" validate:"required,calendar_day"`
}

// GraceRequest represents a grace day application request
type GraceRequest struct {
	StreakType models.StreakType `json:"streak_type" validate:"required,streak_type"`
	Date       string            `json:"date" validate:"required,calendar_day"`
}

// GetState returns the persisted streak state
func (h *StreakHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.streakRepo.Get(r.Context())
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve streak state")
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// Evaluate runs both streak engines for the given day, persists the
// result, and returns it along with any grace-day opportunities
func (h *StreakHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateStruct(w, req) {
		return
	}

	ctx := r.Context()

	tasks, err := h.taskRepo.List(ctx, false)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve tasks")
		return
	}

	completions, err := h.completionRepo.GetByDate(ctx, req.Date)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve completions")
		return
	}

	state, err := h.streakRepo.Get(ctx)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve streak state")
		return
	}

	result := streaks.Evaluate(state, tasks, completions, req.Date)

	if err := h.streakRepo.Save(ctx, result.State); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save streak state")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ApplyGrace spends one grace day to bridge a gap in the given streak.
// The weekly budget is one grace day; a second application in the same
// week conflicts.
func (h *StreakHandler) ApplyGrace(w http.ResponseWriter, r *http.Request) {
	var req GraceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateStruct(w, req) {
		return
	}

	ctx := r.Context()

	state, err := h.streakRepo.Get(ctx)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve streak state")
		return
	}

	if !streaks.CanApplyGraceDay(state, req.Date) {
		respondJSONError(w, http.StatusConflict, "Conflict", "Grace day budget for this week is already spent")
		return
	}

	updated := streaks.ApplyGraceDay(state, req.StreakType, req.Date)

	if err := h.streakRepo.Save(ctx, updated); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save streak state")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// validateStruct runs struct validation, writing the error response
// itself on failure.
func validateStruct(w http.ResponseWriter, v any) bool {
	if err := validation.Validate.Struct(v); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrors {
				respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", fieldError.Error()))
				return false
			}
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return false
	}
	return true
}
