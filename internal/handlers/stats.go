package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/momentum-app/momentum/internal/database"
	"github.com/momentum-app/momentum/internal/dates"
	"github.com/momentum-app/momentum/internal/scoring"
	"github.com/momentum-app/momentum/internal/validation"
)

const (
	// DefaultDayWindow is the look-back for GET /stats/days
	DefaultDayWindow = 7
	// MaxDayWindow caps the look-back for GET /stats/days
	MaxDayWindow = 90
	// DefaultWeekWindow is the look-back for GET /stats/weeks
	DefaultWeekWindow = 4
	// MaxWeekWindow caps the look-back for GET /stats/weeks
	MaxWeekWindow = 52
)

// StatsHandler serves derived day and week statistics
type StatsHandler struct {
	taskRepo       database.TaskRepositoryInterface
	completionRepo database.CompletionRepositoryInterface
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(taskRepo database.TaskRepositoryInterface, completionRepo database.CompletionRepositoryInterface) *StatsHandler {
	return &StatsHandler{taskRepo: taskRepo, completionRepo: completionRepo}
}

// RegisterRoutes registers stats routes on the given router
// The router should already have the /stats prefix
func (h *StatsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/day", h.GetDay).Methods("GET")
	r.HandleFunc("/week", h.GetWeek).Methods("GET")
	r.HandleFunc("/days", h.GetDays).Methods("GET")
	r.HandleFunc("/weeks", h.GetWeeks).Methods("GET")
}

// GetDay returns the stats for one calendar day, defaulting to today
func (h *StatsHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r, "date")
	if !ok {
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

	respondJSON(w, http.StatusOK, scoring.ComputeDayStats(tasks, completions, date))
}

// GetWeek returns the stats for one Sunday-start week. The start
// parameter may be any day in the week; it is normalized to the week's
// Sunday. The previous week is also computed so the trend delta is
// filled in.
func (h *StatsHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r, "start")
	if !ok {
		return
	}
	weekStart := dates.WeekStart(date)
	prevStart := dates.AddDays(weekStart, -7)

	tasks, err := h.taskRepo.List(r.Context(), false)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve tasks")
		return
	}

	completions, err := h.completionRepo.GetRange(r.Context(), prevStart, dates.WeekEnd(weekStart))
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve completions")
		return
	}

	previous := scoring.ComputeWeekStats(tasks, completions, prevStart, nil)
	week := scoring.ComputeWeekStats(tasks, completions, weekStart, &previous)
	respondJSON(w, http.StatusOK, week)
}

// GetDays returns stats for the last n days ending at from, most recent
// last
func (h *StatsHandler) GetDays(w http.ResponseWriter, r *http.Request) {
	from, ok := h.dateParam(w, r, "from")
	if !ok {
		return
	}
	n := windowParam(r, "n", DefaultDayWindow, MaxDayWindow)

	tasks, err := h.taskRepo.List(r.Context(), false)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve tasks")
		return
	}

	windowStart := dates.AddDays(from, -(n - 1))
	completions, err := h.completionRepo.GetRange(r.Context(), windowStart, from)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve completions")
		return
	}

	respondJSON(w, http.StatusOK, scoring.LastNDaysStats(tasks, completions, n, from))
}

// GetWeeks returns stats for the last n weeks ending at from's week,
// most recent last
func (h *StatsHandler) GetWeeks(w http.ResponseWriter, r *http.Request) {
	from, ok := h.dateParam(w, r, "from")
	if !ok {
		return
	}
	n := windowParam(r, "n", DefaultWeekWindow, MaxWeekWindow)

	tasks, err := h.taskRepo.List(r.Context(), false)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve tasks")
		return
	}

	windowStart := dates.AddDays(dates.WeekStart(from), -7*(n-1))
	completions, err := h.completionRepo.GetRange(r.Context(), windowStart, dates.WeekEnd(from))
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve completions")
		return
	}

	respondJSON(w, http.StatusOK, scoring.LastNWeeksStats(tasks, completions, n, from))
}

// dateParam reads a calendar-day query parameter, defaulting to today,
// writing the error response itself on bad input.
func (h *StatsHandler) dateParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	date := r.URL.Query().Get(name)
	if date == "" {
		return dates.Today(time.Now()), true
	}
	if err := validation.ValidateCalendarDay(date); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return "", false
	}
	return date, true
}

// windowParam reads a positive window-size query parameter with a
// default and a cap.
func windowParam(r *http.Request, name string, def, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
