package task

import "time"

// Option applies a single field of a partial update. Fields the caller
// did not send simply produce no option, so the stored value survives.
type Option func(*Task)

func WithTitle(title string) Option {
	return func(t *Task) {
		t.Title = title
	}
}

func WithDescription(description string) Option {
	return func(t *Task) {
		t.Description = description
	}
}

func WithCategory(category Category) Option {
	return func(t *Task) {
		t.Category = category
	}
}

func WithPriority(priority Priority) Option {
	return func(t *Task) {
		t.Priority = priority
	}
}

func WithDueDate(dueDate time.Time) Option {
	return func(t *Task) {
		t.DueDate = &dueDate
	}
}
