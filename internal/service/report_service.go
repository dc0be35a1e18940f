package service

import (
	"context"
	"fmt"
	"time"

	"taskgarden/internal/models/task"
	"taskgarden/internal/repository"
)

const DefaultRecentLimit = 5
const DefaultActivityWindowDays = 365

type ReportService struct {
	repo repository.TaskRepository
}

func NewReportService(repo repository.TaskRepository) *ReportService {
	return &ReportService{repo: repo}
}

type Statistics struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	PendingTasks   int `json:"pending_tasks"`
	TodayCompleted int `json:"today_completed"`
}

// CalendarEvent is a task projected onto the calendar. Start is the due
// date when set, otherwise the creation date.
type CalendarEvent struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Start       string  `json:"start"`
	DueDate     *string `json:"due_date"`
	CreatedAt   string  `json:"created_at"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Description string  `json:"description"`
}

func (s *ReportService) Statistics(ctx context.Context, userID int64) (Statistics, error) {
	stats, err := s.repo.Statistics(ctx, userID, time.Now())
	if err != nil {
		return Statistics{}, fmt.Errorf("statistics: %w", err)
	}
	return Statistics{
		TotalTasks:     stats.Total,
		CompletedTasks: stats.Completed,
		PendingTasks:   stats.Total - stats.Completed,
		TodayCompleted: stats.TodayCompleted,
	}, nil
}

func (s *ReportService) RecentTasks(ctx context.Context, userID int64, limit int) ([]*task.Task, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	tasks, err := s.repo.RecentTasks(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent tasks: %w", err)
	}
	return tasks, nil
}

// ActivityByDay returns the sparse date->count completion map behind the
// grass calendar. Days with no completions are simply absent.
func (s *ReportService) ActivityByDay(ctx context.Context, userID int64, windowDays int) (map[string]int, error) {
	if windowDays <= 0 {
		windowDays = DefaultActivityWindowDays
	}
	to := time.Now()
	from := to.AddDate(0, 0, -windowDays)

	data, err := s.repo.CompletionsByDay(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("completions by day: %w", err)
	}
	return data, nil
}

// CalendarEvents projects all of the owner's tasks into events. When
// both bounds parse as dates, tasks are kept if the due date OR the
// creation date falls inside [start, end]; any missing or malformed
// bound disables filtering entirely (fail open).
func (s *ReportService) CalendarEvents(ctx context.Context, userID int64, startStr, endStr string) ([]CalendarEvent, error) {
	tasks, err := s.repo.ListTasks(ctx, userID, repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	start, startErr := time.Parse(task.DateLayout, startStr)
	end, endErr := time.Parse(task.DateLayout, endStr)
	filtered := startErr == nil && endErr == nil

	events := []CalendarEvent{}
	for _, t := range tasks {
		if filtered && !inRange(t, start, end) {
			continue
		}

		ev := CalendarEvent{
			ID:          t.ID,
			Title:       t.Title,
			Start:       t.EventDate().Format(task.DateLayout),
			CreatedAt:   t.CreatedAt.Format(task.DateLayout),
			Category:    string(t.Category),
			Status:      string(t.Status),
			Priority:    string(t.Priority),
			Description: t.Description,
		}
		if t.DueDate != nil {
			due := t.DueDate.Format(task.DateLayout)
			ev.DueDate = &due
		}
		events = append(events, ev)
	}
	return events, nil
}

func inRange(t *task.Task, start, end time.Time) bool {
	if t.DueDate != nil && betweenDates(*t.DueDate, start, end) {
		return true
	}
	return betweenDates(t.CreatedAt, start, end)
}

// betweenDates compares calendar dates only, inclusive on both ends.
func betweenDates(v, start, end time.Time) bool {
	d := dateOnly(v)
	return !d.Before(dateOnly(start)) && !d.After(dateOnly(end))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
