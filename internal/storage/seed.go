package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/adipras/tugas/pkg/models"
)

// SampleTasks builds the seed collection used when the database is empty
// or unreadable. Due dates are relative to the moment of seeding so the
// board never starts with everything overdue.
func SampleTasks() []models.Task {
	now := time.Now()
	today := now.Format(models.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(models.DateLayout)
	nextWeek := now.AddDate(0, 0, 7).Format(models.DateLayout)

	tasks := []models.Task{
		{
			Title:         "Finish the Q4 project report",
			Description:   "Write up the quarter four results, including performance analysis and recommendations",
			Category:      "Work",
			Priority:      models.PriorityHigh,
			DueDate:       tomorrow,
			Status:        models.StatusInProgress,
			Tags:          []string{"report", "important", "deadline"},
			EstimatedTime: 120,
			Notes: []string{
				"Include the numbers from the marketing team",
				"Needs a manager review before submission",
			},
		},
		{
			Title:            "Weekly grocery run",
			Description:      "Buy groceries for the week at the supermarket",
			Category:         "Personal",
			Priority:         models.PriorityMedium,
			DueDate:          today,
			Status:           models.StatusTodo,
			Tags:             []string{"shopping", "routine"},
			IsRecurring:      true,
			RecurringPattern: models.RecurringWeekly,
		},
		{
			Title:            "Morning run",
			Description:      "Jog in the park for 30 minutes",
			Category:         "Health",
			Priority:         models.PriorityLow,
			DueDate:          today,
			Completed:        true,
			Status:           models.StatusDone,
			Tags:             []string{"exercise", "routine"},
			IsRecurring:      true,
			RecurringPattern: models.RecurringDaily,
		},
		{
			Title:         "Meeting with the new client",
			Description:   "Discuss project requirements and timeline",
			Category:      "Work",
			Priority:      models.PriorityHigh,
			DueDate:       tomorrow,
			Status:        models.StatusTodo,
			Tags:          []string{"meeting", "client", "important"},
			EstimatedTime: 60,
		},
		{
			Title:       "Study Go generics",
			Description: "Work through constraints and type inference",
			Category:    "Learning",
			Priority:    models.PriorityMedium,
			DueDate:     nextWeek,
			Status:      models.StatusBacklog,
			Tags:        []string{"go", "programming", "online"},
		},
		{
			Title:       "Read 'Atomic Habits'",
			Description: "Finish chapters 5 through 7",
			Category:    "Personal",
			Priority:    models.PriorityLow,
			DueDate:     nextWeek,
			Status:      models.StatusInProgress,
			Tags:        []string{"book", "self-improvement"},
		},
		{
			Title:            "Pay the electricity bill",
			Description:      "Settle this month's electricity bill",
			Category:         "Personal",
			Priority:         models.PriorityHigh,
			DueDate:          tomorrow,
			Status:           models.StatusTodo,
			Tags:             []string{"bills", "monthly"},
			IsRecurring:      true,
			RecurringPattern: models.RecurringMonthly,
		},
	}

	for i := range tasks {
		tasks[i].ID = uuid.NewString()
		tasks[i].CreatedAt = now
		tasks[i].UpdatedAt = now
		if tasks[i].Tags == nil {
			tasks[i].Tags = []string{}
		}
	}
	return tasks
}
