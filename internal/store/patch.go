package store

import "github.com/adipras/tugas/pkg/models"

// TaskPatch is a partial update: nil fields are left untouched.
type TaskPatch struct {
	Title            *string
	Description      *string
	Category         *string
	Priority         *models.Priority
	DueDate          *string
	Completed        *bool
	Status           *models.Status
	Tags             *[]string
	EstimatedTime    *int
	ActualTime       *int
	IsRecurring      *bool
	RecurringPattern *models.RecurringPattern
	AssignedTo       *string
}

func (p TaskPatch) apply(t *models.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Tags != nil {
		t.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.EstimatedTime != nil {
		t.EstimatedTime = *p.EstimatedTime
	}
	if p.ActualTime != nil {
		t.ActualTime = *p.ActualTime
	}
	if p.IsRecurring != nil {
		t.IsRecurring = *p.IsRecurring
	}
	if p.RecurringPattern != nil {
		t.RecurringPattern = *p.RecurringPattern
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
	}

	// Completed and status move together. A patch carrying only one of
	// them derives the other; a patch carrying both is applied as given.
	switch {
	case p.Completed != nil && p.Status != nil:
		t.Completed = *p.Completed
		t.Status = *p.Status
	case p.Completed != nil:
		t.Completed = *p.Completed
		if t.Completed {
			t.Status = models.StatusDone
		} else if t.Status == models.StatusDone {
			t.Status = models.StatusTodo
		}
	case p.Status != nil:
		t.Status = *p.Status
		t.Completed = *p.Status == models.StatusDone
	}
}
