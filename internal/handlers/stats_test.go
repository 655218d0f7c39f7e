package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/momentum-app/momentum/internal/models"
)

func newStatsRouter(taskRepo *memTaskRepo, completionRepo *memCompletionRepo) *mux.Router {
	r := mux.NewRouter()
	NewStatsHandler(taskRepo, completionRepo).RegisterRoutes(r.PathPrefix("/api/v1/stats").Subrouter())
	return r
}

func TestGetDayStats(t *testing.T) {
	t.Parallel()

	task := models.Task{ID: uuid.New(), Name: "Water", Kind: models.TaskKindHabit, Schedule: models.Daily(), TargetPerDay: 2}
	completionRepo := newMemCompletionRepo(
		models.CompletionLog{ID: uuid.New(), TaskID: task.ID, Date: "2026-03-14", CountCompleted: 1},
	)
	router := newStatsRouter(newMemTaskRepo(task), completionRepo)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats/day?date=2026-03-14", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var day models.DayStats
	decodeData(t, rec, &day)
	if day.Percentage != 50 {
		t.Errorf("Percentage = %d, want 50", day.Percentage)
	}
	if day.Grade != models.GradeF {
		t.Errorf("Grade = %q, want F", day.Grade)
	}
	if day.TotalTasks != 1 {
		t.Errorf("TotalTasks = %d, want 1", day.TotalTasks)
	}
}

func TestGetDayStatsMalformedDate(t *testing.T) {
	t.Parallel()

	router := newStatsRouter(newMemTaskRepo(), newMemCompletionRepo())

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats/day?date=14-03-2026", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetDaysWindow(t *testing.T) {
	t.Parallel()

	task := models.Task{ID: uuid.New(), Name: "Water", Kind: models.TaskKindHabit, Schedule: models.Daily(), TargetPerDay: 1}
	router := newStatsRouter(newMemTaskRepo(task), newMemCompletionRepo())

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats/days?n=3&from=2026-03-14", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var days []models.DayStats
	decodeData(t, rec, &days)
	if len(days) != 3 {
		t.Fatalf("len(days) = %d, want 3", len(days))
	}
	if days[0].Date != "2026-03-12" || days[2].Date != "2026-03-14" {
		t.Errorf("window = [%s .. %s], want [2026-03-12 .. 2026-03-14]", days[0].Date, days[2].Date)
	}
}

func TestGetWeekStatsTrend(t *testing.T) {
	t.Parallel()

	task := models.Task{ID: uuid.New(), Name: "Water", Kind: models.TaskKindHabit, Schedule: models.Daily(), TargetPerDay: 1}
	// 2026-03-08 is a Sunday.
	completionRepo := newMemCompletionRepo(
		models.CompletionLog{ID: uuid.New(), TaskID: task.ID, Date: "2026-03-09", CountCompleted: 1},
	)
	router := newStatsRouter(newMemTaskRepo(task), completionRepo)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats/week?start=2026-03-11", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var week models.WeekStats
	decodeData(t, rec, &week)
	if week.WeekStartDate != "2026-03-08" {
		t.Errorf("WeekStartDate = %q, want 2026-03-08 (normalized to Sunday)", week.WeekStartDate)
	}
	if len(week.Days) != 7 {
		t.Errorf("len(Days) = %d, want 7", len(week.Days))
	}
}

func TestGetWeeksWindow(t *testing.T) {
	t.Parallel()

	task := models.Task{ID: uuid.New(), Name: "Water", Kind: models.TaskKindHabit, Schedule: models.Daily(), TargetPerDay: 1}
	router := newStatsRouter(newMemTaskRepo(task), newMemCompletionRepo())

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats/weeks?n=2&from=2026-03-14", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var weeks []models.WeekStats
	decodeData(t, rec, &weeks)
	if len(weeks) != 2 {
		t.Fatalf("len(weeks) = %d, want 2", len(weeks))
	}
	if weeks[1].WeekStartDate != "2026-03-08" {
		t.Errorf("latest WeekStartDate = %q, want 2026-03-08", weeks[1].WeekStartDate)
	}
}
