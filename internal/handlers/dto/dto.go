package dto

import (
	"time"

	"taskgarden/internal/models/task"
	"taskgarden/internal/models/user"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
	DueDate     *string    `json:"due_date"`
}

func FromTask(t *task.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CompletedAt: t.CompletedAt,
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(task.DateLayout)
		resp.DueDate = &due
	}
	return resp
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

// TaskStatusResponse is the slim toggle payload.
type TaskStatusResponse struct {
	ID          int64      `json:"id"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
}

func FromTaskStatus(t *task.Task) TaskStatusResponse {
	return TaskStatusResponse{
		ID:          t.ID,
		Status:      string(t.Status),
		CompletedAt: t.CompletedAt,
	}
}

// RecentTaskResponse renders created_at the short way the dashboard
// widget expects: "MM/DD HH:MM".
type RecentTaskResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func FromRecentTask(t *task.Task) RecentTaskResponse {
	return RecentTaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Category:  string(t.Category),
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt.Format("01/02 15:04"),
	}
}

func FromRecentTaskList(tasks []*task.Task) []RecentTaskResponse {
	result := make([]RecentTaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromRecentTask(t)
	}
	return result
}
