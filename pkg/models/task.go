package models

import "time"

// DateLayout is the calendar-date format used for due dates and
// metrics bucketing.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Statuses lists every workflow column in board order.
var Statuses = []Status{StatusBacklog, StatusTodo, StatusInProgress, StatusReview, StatusDone}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type RecurringPattern string

const (
	RecurringDaily   RecurringPattern = "daily"
	RecurringWeekly  RecurringPattern = "weekly"
	RecurringMonthly RecurringPattern = "monthly"
)

// Task is the unit of trackable work. Completed and Status are kept
// consistent by the store: Completed is true exactly when Status is "done".
type Task struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Category         string           `json:"category"`
	Priority         Priority         `json:"priority"`
	DueDate          string           `json:"dueDate"`
	Completed        bool             `json:"completed"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	Tags             []string         `json:"tags"`
	Status           Status           `json:"status"`
	EstimatedTime    int              `json:"estimatedTime,omitempty"`
	ActualTime       int              `json:"actualTime,omitempty"`
	Attachments      []string         `json:"attachments,omitempty"`
	Notes            []string         `json:"notes,omitempty"`
	IsRecurring      bool             `json:"isRecurring,omitempty"`
	RecurringPattern RecurringPattern `json:"recurringPattern,omitempty"`
	AssignedTo       string           `json:"assignedTo,omitempty"`
}

// Clone returns a deep copy so callers can hand tasks out without
// sharing the underlying slices.
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.Notes != nil {
		c.Notes = append([]string(nil), t.Notes...)
	}
	if t.Attachments != nil {
		c.Attachments = append([]string(nil), t.Attachments...)
	}
	return c
}

// IsOverdue reports whether the task's due date is strictly before today
// (a YYYY-MM-DD string) and the task is not completed. Tasks without a
// due date are never overdue.
func (t Task) IsOverdue(today string) bool {
	if t.Completed || t.DueDate == "" {
		return false
	}
	return t.DueDate < today
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}
