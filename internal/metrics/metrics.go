// Package metrics derives aggregate views from the live task collection.
// Every accessor pulls the current tasks from its source on each call, so
// the numbers can never disagree with the store.
package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/adipras/tugas/pkg/models"
)

// TaskSource supplies the current collection. The store satisfies it.
type TaskSource interface {
	Tasks() []models.Task
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type PriorityCount struct {
	Priority models.Priority `json:"priority"`
	Count    int             `json:"count"`
}

type Engine struct {
	source TaskSource

	// now is injectable for tests; "today" is its UTC calendar date.
	now func() time.Time
}

func New(source TaskSource) *Engine {
	return &Engine{source: source, now: time.Now}
}

// CompletedByDate counts completed tasks per calendar day over the
// inclusive [start, end] range, bucketed by the date portion of their
// last update. Every day in range appears, zero counts included.
func (e *Engine) CompletedByDate(start, end string) ([]DateCount, error) {
	return e.byDate(start, end, func(t models.Task) (string, bool) {
		return t.UpdatedAt.UTC().Format(models.DateLayout), t.Completed
	})
}

// CreatedByDate counts tasks per calendar day of creation over the
// inclusive [start, end] range, completed or not.
func (e *Engine) CreatedByDate(start, end string) ([]DateCount, error) {
	return e.byDate(start, end, func(t models.Task) (string, bool) {
		return t.CreatedAt.UTC().Format(models.DateLayout), true
	})
}

func (e *Engine) byDate(start, end string, bucket func(models.Task) (string, bool)) ([]DateCount, error) {
	from, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	to, err := time.Parse(models.DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}

	tasks := e.source.Tasks()
	counts := make(map[string]int)
	for _, t := range tasks {
		if day, ok := bucket(t); ok {
			counts[day]++
		}
	}

	var out []DateCount
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		day := d.Format(models.DateLayout)
		out = append(out, DateCount{Date: day, Count: counts[day]})
	}
	return out, nil
}

// ByCategory returns one entry per distinct category currently present,
// in order of first appearance, counting all tasks regardless of
// completion.
func (e *Engine) ByCategory() []CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, t := range e.source.Tasks() {
		if t.Category == "" {
			continue
		}
		if _, seen := counts[t.Category]; !seen {
			order = append(order, t.Category)
		}
		counts[t.Category]++
	}

	out := make([]CategoryCount, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}

// ByPriority always returns exactly three entries, high/medium/low in
// that order, with zero counts for absent priorities.
func (e *Engine) ByPriority() []PriorityCount {
	counts := make(map[models.Priority]int)
	for _, t := range e.source.Tasks() {
		counts[t.Priority]++
	}

	out := make([]PriorityCount, 0, 3)
	for _, p := range []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow} {
		out = append(out, PriorityCount{Priority: p, Count: counts[p]})
	}
	return out
}

// CompletionRate returns the completed percentage of the collection,
// 0 when it is empty.
func (e *Engine) CompletionRate() float64 {
	tasks := e.source.Tasks()
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100
}

// ProductivityScore combines completion rate with an overdue penalty:
// round(100 * (completionRate - 0.5 * overdueRate)), clamped to [0, 100].
// The 0.5 weight and the clamp bounds are contractual constants.
func (e *Engine) ProductivityScore() int {
	tasks := e.source.Tasks()
	if len(tasks) == 0 {
		return 0
	}

	today := e.now().UTC().Format(models.DateLayout)
	total := float64(len(tasks))
	var completed, overdue float64
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
		if t.IsOverdue(today) {
			overdue++
		}
	}

	score := 100 * (completed/total - 0.5*overdue/total)
	rounded := math.Round(score)
	return int(math.Max(0, math.Min(100, rounded)))
}
