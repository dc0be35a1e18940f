package handlers

import (
	"net/http"
	"time"

	"taskgarden/internal/handlers/dto"
	"taskgarden/internal/logger"
	"taskgarden/internal/middleware"
	"taskgarden/internal/models/task"
	"taskgarden/internal/service"

	"go.uber.org/zap"
)

type CalendarHandler struct {
	reports ReportService
	tasks   TaskService
}

func NewCalendarHandler(reports ReportService, tasks TaskService) *CalendarHandler {
	return &CalendarHandler{reports: reports, tasks: tasks}
}

// Events lists the owner's tasks as calendar events. Date bounds are
// optional; a missing or malformed bound disables the range filter
// instead of failing the request.
func (h *CalendarHandler) Events(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	events, err := h.reports.CalendarEvents(r.Context(), u.ID, start, end)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("events", events))
}

// CreateEvent is the calendar-scoped creation path. Unlike the strict
// /tasks path, a due_date that does not parse is treated as absent.
func (h *CalendarHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	var req dto.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.Warn("HTTP: bad create body", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		if parsed, err := time.Parse(task.DateLayout, req.DueDate); err == nil {
			dueDate = &parsed
		} else {
			logger.Warn("HTTP: dropping unparseable due_date",
				zap.String("due_date", req.DueDate))
		}
	}

	created, err := h.tasks.CreateTask(r.Context(), u.ID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    task.Category(req.Category),
		Priority:    task.Priority(req.Priority),
		DueDate:     dueDate,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusCreated,
		toPayload("message", MsgTaskAdded),
		toPayload("task", dto.FromTask(created)),
	)
}
