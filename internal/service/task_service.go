package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskgarden/internal/logger"
	"taskgarden/internal/models/task"
	"taskgarden/internal/repository"

	"go.uber.org/zap"
)

type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Category    task.Category
	Priority    task.Priority
	DueDate     *time.Time
}

func (s *TaskService) CreateTask(ctx context.Context, userID int64, in CreateTaskInput) (*task.Task, error) {
	if in.Title == "" || in.Category == "" {
		return nil, NewValidationError(MsgMissingTaskFields)
	}
	if len([]rune(in.Title)) > task.MaxTitleLen {
		return nil, NewValidationError(MsgTitleTooLong)
	}
	if in.Priority == "" {
		in.Priority = task.PriorityMedium
	}

	t := &task.Task{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      task.StatusPending,
		DueDate:     in.DueDate,
	}

	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	logger.Info("Service: task created",
		zap.Int64("task_id", t.ID),
		zap.Int64("user_id", userID))
	return t, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID int64, category, status string) ([]*task.Task, error) {
	tasks, err := s.repo.ListTasks(ctx, userID, repository.TaskFilter{
		Category: category,
		Status:   status,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID int64) (*task.Task, error) {
	t, err := s.repo.GetTask(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound(MsgTaskNotFound)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateTask applies the given options on top of the stored task.
// updated_at is refreshed by the repository even when nothing changed.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID int64, options ...task.Option) (*task.Task, error) {
	t, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	for _, opt := range options {
		opt(t)
	}

	if t.Title == "" {
		return nil, NewValidationError(MsgMissingTaskFields)
	}
	if len([]rune(t.Title)) > task.MaxTitleLen {
		return nil, NewValidationError(MsgTitleTooLong)
	}

	if err := s.repo.UpdateTask(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound(MsgTaskNotFound)
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

// ToggleTask flips pending<->completed, stamping or clearing completed_at.
func (s *TaskService) ToggleTask(ctx context.Context, userID, taskID int64) (*task.Task, error) {
	t, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if t.Status == task.StatusCompleted {
		t.MarkPending()
	} else {
		t.MarkCompleted(time.Now())
	}

	if err := s.repo.UpdateTask(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound(MsgTaskNotFound)
		}
		return nil, fmt.Errorf("toggle task: %w", err)
	}

	logger.Info("Service: task toggled",
		zap.Int64("task_id", t.ID),
		zap.String("status", string(t.Status)))
	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	if err := s.repo.DeleteTask(ctx, userID, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFound(MsgTaskNotFound)
		}
		return fmt.Errorf("delete task: %w", err)
	}

	logger.Info("Service: task deleted",
		zap.Int64("task_id", taskID),
		zap.Int64("user_id", userID))
	return nil
}
