package handlers

import (
	"net/http"
	"strconv"

	"taskgarden/internal/handlers/dto"
	"taskgarden/internal/middleware"
	"taskgarden/internal/models/task"
	"taskgarden/internal/service"
)

type DashboardHandler struct {
	reports ReportService
}

func NewDashboardHandler(reports ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

func (h *DashboardHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	stats, err := h.reports.Statistics(r.Context(), u.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithValue(w, http.StatusOK, stats)
}

func (h *DashboardHandler) RecentTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.recent(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromRecentTaskList(tasks)))
}

// RecentTasksFeed is the page-script variant: same data, bare array body.
func (h *DashboardHandler) RecentTasksFeed(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.recent(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	responseWithValue(w, http.StatusOK, dto.FromRecentTaskList(tasks))
}

// GrassData feeds the contribution heatmap: a sparse map of completion
// date to count over the trailing year.
func (h *DashboardHandler) GrassData(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	data, err := h.reports.ActivityByDay(r.Context(), u.ID, service.DefaultActivityWindowDays)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithValue(w, http.StatusOK, data)
}

func (h *DashboardHandler) recent(r *http.Request) ([]*task.Task, error) {
	u := middleware.CurrentUser(r.Context())

	limit := service.DefaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return h.reports.RecentTasks(r.Context(), u.ID, limit)
}
