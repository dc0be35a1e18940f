package task

import "time"

type Task struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Category    Category   `json:"category" db:"category"`
	Priority    Priority   `json:"priority" db:"priority"`
	Status      Status     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"` // date only, no time component
}

type Category string
type Priority string
type Status string

const CategoryWork Category = "회사일"
const CategorySideProject Category = "사이드프로젝트"
const CategoryStudy Category = "공부"

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"

const StatusPending Status = "pending"
const StatusCompleted Status = "completed"

const MaxTitleLen = 200

// DateLayout is the wire format for due dates and calendar bounds.
const DateLayout = "2006-01-02"

func (t *Task) MarkCompleted(now time.Time) {
	t.Status = StatusCompleted
	t.CompletedAt = &now
}

func (t *Task) MarkPending() {
	t.Status = StatusPending
	t.CompletedAt = nil
}

// EventDate is the calendar anchor: the due date when set, otherwise
// the day the task was created.
func (t *Task) EventDate() time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	return t.CreatedAt
}
