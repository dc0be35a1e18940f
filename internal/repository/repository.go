package repository

import (
	"context"
	"errors"
	"time"

	"taskgarden/internal/models/task"
	"taskgarden/internal/models/user"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicate = errors.New("duplicate record")

// TaskFilter narrows a task listing. The zero value (or "all") on either
// field means the field is not filtered.
type TaskFilter struct {
	Category string
	Status   string
}

// TaskStats are the dashboard counters for a single owner.
type TaskStats struct {
	Total          int
	Completed      int
	TodayCompleted int
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id int64) (*user.User, error)
	GetUserByUsername(ctx context.Context, username string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, s *user.Session) error
	GetSession(ctx context.Context, token uuid.UUID) (*user.Session, error)
	DeleteSession(ctx context.Context, token uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type TaskRepository interface {
	CreateTask(ctx context.Context, t *task.Task) error
	// GetTask and every other task accessor are owner-scoped: a task id
	// that exists but belongs to another user yields ErrNotFound.
	GetTask(ctx context.Context, userID, taskID int64) (*task.Task, error)
	ListTasks(ctx context.Context, userID int64, filter TaskFilter) ([]*task.Task, error)
	UpdateTask(ctx context.Context, t *task.Task) error
	DeleteTask(ctx context.Context, userID, taskID int64) error
	RecentTasks(ctx context.Context, userID int64, limit int) ([]*task.Task, error)
	Statistics(ctx context.Context, userID int64, today time.Time) (TaskStats, error)
	// CompletionsByDay buckets completed tasks by completion date within
	// [from, to], inclusive. Days without completions are absent.
	CompletionsByDay(ctx context.Context, userID int64, from, to time.Time) (map[string]int, error)
}

type Repository interface {
	UserRepository
	SessionRepository
	TaskRepository
	HealthCheck(ctx context.Context) error
}
