package handlers

import (
	"net/http"
	"strconv"
	"time"

	"taskgarden/internal/handlers/dto"
	"taskgarden/internal/logger"
	"taskgarden/internal/middleware"
	"taskgarden/internal/models/task"
	"taskgarden/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	tasks  TaskService
	health HealthChecker
}

func NewTaskHandler(tasks TaskService, health HealthChecker) *TaskHandler {
	return &TaskHandler{tasks: tasks, health: health}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	category := r.URL.Query().Get("category")
	status := r.URL.Query().Get("status")

	tasks, err := h.tasks.ListTasks(r.Context(), u.ID, category, status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromTaskList(tasks)))
}

// Create is the strict JSON creation path: a due_date that does not
// parse as YYYY-MM-DD is a validation error. The calendar-scoped path
// (CalendarHandler.CreateEvent) drops it silently instead.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	var req dto.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.Warn("HTTP: bad create body", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(task.DateLayout, req.DueDate)
		if err != nil {
			logger.Warn("HTTP: bad due_date",
				zap.String("due_date", req.DueDate),
				zap.Error(err))
			responseWithError(w, http.StatusBadRequest, service.MsgBadDueDate)
			return
		}
		dueDate = &parsed
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

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.Warn("HTTP: bad update body", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var options []task.Option
	if req.Title != nil {
		options = append(options, task.WithTitle(*req.Title))
	}
	if req.Description != nil {
		options = append(options, task.WithDescription(*req.Description))
	}
	if req.Category != nil {
		options = append(options, task.WithCategory(task.Category(*req.Category)))
	}
	if req.Priority != nil {
		options = append(options, task.WithPriority(task.Priority(*req.Priority)))
	}
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse(task.DateLayout, *req.DueDate)
		if err != nil {
			logger.Warn("HTTP: bad due_date",
				zap.String("due_date", *req.DueDate),
				zap.Error(err))
			responseWithError(w, http.StatusBadRequest, service.MsgBadDueDate)
			return
		}
		options = append(options, task.WithDueDate(parsed))
	}

	updated, err := h.tasks.UpdateTask(r.Context(), u.ID, taskID, options...)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("message", MsgTaskUpdated),
		toPayload("task", dto.FromTask(updated)),
	)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	toggled, err := h.tasks.ToggleTask(r.Context(), u.ID, taskID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("message", MsgTaskToggled),
		toPayload("task", dto.FromTaskStatus(toggled)),
	)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), u.ID, taskID); err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("message", MsgTaskDeleted))
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.health.HealthCheck(r.Context()); err != nil {
		responseWithJSON(w, http.StatusServiceUnavailable, toPayload("status", "unhealthy"))
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
}

func taskIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		// non-numeric ids never match a task
		logger.Warn("HTTP: bad task id", zap.String("id", idParam))
		responseWithError(w, http.StatusNotFound, service.MsgTaskNotFound)
		return 0, false
	}
	return id, true
}
