package handlers

import (
	"context"

	"taskgarden/internal/models/task"
	"taskgarden/internal/models/user"
	"taskgarden/internal/service"

	"github.com/google/uuid"
)

// Service seams, kept narrow so the handler tests can mock them.

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*user.User, error)
	Login(ctx context.Context, username, password string) (*user.Session, *user.User, error)
	Logout(ctx context.Context, token uuid.UUID) error
}

type TaskService interface {
	CreateTask(ctx context.Context, userID int64, in service.CreateTaskInput) (*task.Task, error)
	ListTasks(ctx context.Context, userID int64, category, status string) ([]*task.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, options ...task.Option) (*task.Task, error)
	ToggleTask(ctx context.Context, userID, taskID int64) (*task.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
}

type ReportService interface {
	Statistics(ctx context.Context, userID int64) (service.Statistics, error)
	RecentTasks(ctx context.Context, userID int64, limit int) ([]*task.Task, error)
	ActivityByDay(ctx context.Context, userID int64, windowDays int) (map[string]int, error)
	CalendarEvents(ctx context.Context, userID int64, start, end string) ([]service.CalendarEvent, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
