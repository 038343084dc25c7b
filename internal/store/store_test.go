package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/adipras/tugas/pkg/models"
)

// memPersister records saves so tests can check persistence behavior
// without a database.
type memPersister struct {
	saves int
	last  []models.Task
}

func (m *memPersister) SaveTasks(_ context.Context, tasks []models.Task) error {
	m.saves++
	m.last = append([]models.Task(nil), tasks...)
	return nil
}

// newTestStore builds a store with a deterministic clock and id sequence.
func newTestStore(tasks []models.Task) (*Store, *memPersister, *time.Time) {
	p := &memPersister{}
	s := New(tasks, p, nil)

	clock := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return s, p, &clock
}

func checkInvariant(t *testing.T, s *Store) {
	t.Helper()
	for _, task := range s.Tasks() {
		if task.Completed != (task.Status == models.StatusDone) {
			t.Errorf("Task %q violates invariant: completed=%v status=%s", task.Title, task.Completed, task.Status)
		}
	}
}

func TestAddTask(t *testing.T) {
	s, p, _ := newTestStore(nil)

	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	// 1. Blank titles are rejected without side effects
	if _, ok := s.AddTask(models.Task{Title: "   "}); ok {
		t.Errorf("Expected blank title to be rejected")
	}
	if len(s.Tasks()) != 0 || p.saves != 0 || len(events) != 0 {
		t.Errorf("Expected rejection to leave no trace")
	}

	// 2. A valid draft gets id, timestamps, defaults
	task, ok := s.AddTask(models.Task{
		Title:    "Buy milk",
		Priority: models.PriorityMedium,
		DueDate:  "2026-09-01",
	})
	if !ok {
		t.Fatalf("Expected task to be added")
	}
	if task.ID != "id-1" {
		t.Errorf("Expected generated id, got %q", task.ID)
	}
	if task.Status != models.StatusTodo || task.Completed {
		t.Errorf("Expected fresh task to be an uncompleted todo, got %s/%v", task.Status, task.Completed)
	}
	if task.CreatedAt.IsZero() || !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Errorf("Expected createdAt == updatedAt on creation")
	}
	if task.Tags == nil || task.Notes == nil || task.Attachments == nil {
		t.Errorf("Expected empty sequences, not nil")
	}
	checkInvariant(t, s)

	// 3. Mutation persisted and announced
	if p.saves != 1 || len(p.last) != 1 {
		t.Errorf("Expected one persisted snapshot with one task, got %d saves", p.saves)
	}
	if len(events) != 1 || events[0].Type != EventCreated || events[0].Title != "Buy milk" {
		t.Errorf("Expected a created event for the task, got %+v", events)
	}

	// 4. Ids stay unique across creations
	second, _ := s.AddTask(models.Task{Title: "Second"})
	if second.ID == task.ID {
		t.Errorf("Expected unique ids, both got %q", task.ID)
	}
}

func TestUpdateTask(t *testing.T) {
	s, _, clock := newTestStore(nil)
	task, _ := s.AddTask(models.Task{Title: "Draft report", Priority: models.PriorityLow})

	*clock = clock.Add(time.Hour)

	// 1. Unknown id is a no-op signal
	title := "x"
	if s.UpdateTask("missing", TaskPatch{Title: &title}) {
		t.Errorf("Expected update of unknown id to report not found")
	}

	// 2. Plain field merge refreshes updatedAt
	newTitle := "Draft Q4 report"
	pr := models.PriorityHigh
	if !s.UpdateTask(task.ID, TaskPatch{Title: &newTitle, Priority: &pr}) {
		t.Fatalf("Expected update to succeed")
	}
	got, _ := s.Get(task.ID)
	if got.Title != newTitle || got.Priority != models.PriorityHigh {
		t.Errorf("Expected merged fields, got %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("Expected updatedAt to move forward")
	}

	// 3. Completed alone drags status along
	done := true
	s.UpdateTask(task.ID, TaskPatch{Completed: &done})
	got, _ = s.Get(task.ID)
	if got.Status != models.StatusDone {
		t.Errorf("Expected status done after completed=true, got %s", got.Status)
	}
	checkInvariant(t, s)

	// 4. Status alone drags completed along
	review := models.StatusReview
	s.UpdateTask(task.ID, TaskPatch{Status: &review})
	got, _ = s.Get(task.ID)
	if got.Completed {
		t.Errorf("Expected completed=false after move to review")
	}
	checkInvariant(t, s)

	// 5. Reopening via completed=false drops the task back into todo
	s.UpdateTask(task.ID, TaskPatch{Completed: &done})
	open := false
	s.UpdateTask(task.ID, TaskPatch{Completed: &open})
	got, _ = s.Get(task.ID)
	if got.Status != models.StatusTodo {
		t.Errorf("Expected reopened task back in todo, got %s", got.Status)
	}
	checkInvariant(t, s)
}

func TestDeleteTask(t *testing.T) {
	s, p, _ := newTestStore(nil)
	task, _ := s.AddTask(models.Task{Title: "Temporary"})

	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	// 1. Deleting an unknown id leaves the collection unchanged
	if s.DeleteTask("missing") {
		t.Errorf("Expected delete of unknown id to report not found")
	}
	if len(s.Tasks()) != 1 {
		t.Errorf("Expected collection length unchanged")
	}

	// 2. Deleting removes and announces the removed title
	savesBefore := p.saves
	if !s.DeleteTask(task.ID) {
		t.Fatalf("Expected delete to succeed")
	}
	if len(s.Tasks()) != 0 {
		t.Errorf("Expected empty collection after delete")
	}
	if p.saves != savesBefore+1 {
		t.Errorf("Expected delete to persist")
	}
	if len(events) != 1 || events[0].Type != EventDeleted || events[0].Title != "Temporary" {
		t.Errorf("Expected deleted event naming the removed title, got %+v", events)
	}
}

func TestToggleTask(t *testing.T) {
	s, _, _ := newTestStore(nil)
	task, _ := s.AddTask(models.Task{Title: "Water plants"})

	if s.ToggleTask("missing") {
		t.Errorf("Expected toggle of unknown id to report not found")
	}

	// 1. First toggle completes and lands in done
	s.ToggleTask(task.ID)
	got, _ := s.Get(task.ID)
	if !got.Completed || got.Status != models.StatusDone {
		t.Errorf("Expected completed done task, got %v/%s", got.Completed, got.Status)
	}
	checkInvariant(t, s)

	// 2. Second toggle reopens into todo
	s.ToggleTask(task.ID)
	got, _ = s.Get(task.ID)
	if got.Completed || got.Status != models.StatusTodo {
		t.Errorf("Expected reopened todo task, got %v/%s", got.Completed, got.Status)
	}
	checkInvariant(t, s)
}

func TestMoveTask(t *testing.T) {
	s, _, _ := newTestStore(nil)
	task, _ := s.AddTask(models.Task{Title: "Design review"})

	if s.MoveTask("missing", models.StatusDone) {
		t.Errorf("Expected move of unknown id to report not found")
	}
	if s.MoveTask(task.ID, "archived") {
		t.Errorf("Expected unknown status to be rejected")
	}

	// 1. Any column can be set from any other
	for _, status := range models.Statuses {
		if !s.MoveTask(task.ID, status) {
			t.Fatalf("Expected move to %s to succeed", status)
		}
		got, _ := s.Get(task.ID)
		if got.Status != status {
			t.Errorf("Expected status %s, got %s", status, got.Status)
		}
		if got.Completed != (status == models.StatusDone) {
			t.Errorf("Expected completed to follow the column, got %v in %s", got.Completed, status)
		}
	}
	checkInvariant(t, s)

	// 2. done -> todo is fully reversible
	s.MoveTask(task.ID, models.StatusDone)
	s.MoveTask(task.ID, models.StatusTodo)
	got, _ := s.Get(task.ID)
	if got.Completed || got.Status != models.StatusTodo {
		t.Errorf("Expected reopened todo task after round trip, got %v/%s", got.Completed, got.Status)
	}
}

func TestDuplicateTask(t *testing.T) {
	s, _, clock := newTestStore(nil)
	task, _ := s.AddTask(models.Task{
		Title:    "Prepare slides",
		Category: "Work",
		Tags:     []string{"talk"},
		Notes:    []string{"keep it short"},
	})
	s.ToggleTask(task.ID)

	if _, ok := s.DuplicateTask("missing"); ok {
		t.Errorf("Expected duplicate of unknown id to report not found")
	}

	*clock = clock.Add(time.Hour)

	dup, ok := s.DuplicateTask(task.ID)
	if !ok {
		t.Fatalf("Expected duplicate to succeed")
	}
	if dup.ID == task.ID {
		t.Errorf("Expected a fresh id for the copy")
	}
	if dup.Title != "Prepare slides (Copy)" {
		t.Errorf("Expected annotated title, got %q", dup.Title)
	}
	if dup.Completed || dup.Status != models.StatusTodo {
		t.Errorf("Expected copy to start as an uncompleted todo, got %v/%s", dup.Completed, dup.Status)
	}
	if !dup.CreatedAt.After(task.CreatedAt) {
		t.Errorf("Expected copy to carry fresh timestamps")
	}
	if len(dup.Notes) != 1 || dup.Notes[0] != "keep it short" {
		t.Errorf("Expected notes carried over, got %v", dup.Notes)
	}
	if len(s.Tasks()) != 2 {
		t.Errorf("Expected 2 tasks after duplication, got %d", len(s.Tasks()))
	}
}

func TestNotesAndAttachments(t *testing.T) {
	s, _, clock := newTestStore(nil)
	task, _ := s.AddTask(models.Task{Title: "Ship v2"})

	if s.AddNote("missing", "note") || s.AddAttachment("missing", "file.pdf") {
		t.Errorf("Expected unknown id to report not found")
	}

	*clock = clock.Add(time.Minute)
	s.AddNote(task.ID, "first note")
	s.AddNote(task.ID, "second note")
	s.AddAttachment(task.ID, "changelog.md")

	got, _ := s.Get(task.ID)
	if len(got.Notes) != 2 || got.Notes[0] != "first note" || got.Notes[1] != "second note" {
		t.Errorf("Expected notes appended in order, got %v", got.Notes)
	}
	if len(got.Attachments) != 1 || got.Attachments[0] != "changelog.md" {
		t.Errorf("Expected attachment appended, got %v", got.Attachments)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("Expected appends to refresh updatedAt")
	}
}

func TestSearchFilter(t *testing.T) {
	s, _, _ := newTestStore(nil)
	s.AddTask(models.Task{Title: "Write report", Description: "quarterly numbers", Category: "Work"})
	s.AddTask(models.Task{Title: "Groceries", Category: "Personal", Tags: []string{"shopping"}})
	s.AddTask(models.Task{Title: "Jog", Category: "Health"})

	tests := []struct {
		term string
		want int
	}{
		{"", 3},
		{"REPORT", 1},    // title, case-insensitive
		{"quarterly", 1}, // description
		{"personal", 1},  // category
		{"shop", 1},      // tag substring
		{"nonexistent", 0},
	}

	for _, tt := range tests {
		s.SetSearchTerm(tt.term)
		if got := len(s.FilteredTasks()); got != tt.want {
			t.Errorf("FilteredTasks(%q) = %d tasks, want %d", tt.term, got, tt.want)
		}
	}

	// Filter applies to the by-status and by-date views too
	s.SetSearchTerm("groceries")
	if got := len(s.TasksByStatus(models.StatusTodo)); got != 1 {
		t.Errorf("Expected 1 filtered todo, got %d", got)
	}
}

func TestDerivedCategoriesAndTags(t *testing.T) {
	s, _, _ := newTestStore(nil)
	s.AddTask(models.Task{Title: "a", Category: "Work", Tags: []string{"x", "y"}})
	s.AddTask(models.Task{Title: "b", Category: "Personal", Tags: []string{"y", "z"}})
	s.AddTask(models.Task{Title: "c", Category: "Work"})

	cats := s.Categories()
	if len(cats) != 2 || cats[0] != "Work" || cats[1] != "Personal" {
		t.Errorf("Expected categories in first-appearance order, got %v", cats)
	}

	tags := s.Tags()
	if len(tags) != 3 || tags[0] != "x" || tags[1] != "y" || tags[2] != "z" {
		t.Errorf("Expected tag union in first-appearance order, got %v", tags)
	}

	// The vocabulary shrinks when its last holder goes away
	tasks := s.Tasks()
	s.DeleteTask(tasks[1].ID)
	cats = s.Categories()
	if len(cats) != 1 || cats[0] != "Work" {
		t.Errorf("Expected Personal to disappear with its task, got %v", cats)
	}
}

func TestTasksByDate(t *testing.T) {
	s, _, _ := newTestStore(nil)
	s.AddTask(models.Task{Title: "today", DueDate: "2026-09-01"})
	s.AddTask(models.Task{Title: "tomorrow", DueDate: "2026-09-02"})

	got := s.TasksByDate("2026-09-01")
	if len(got) != 1 || got[0].Title != "today" {
		t.Errorf("Expected the task due on 2026-09-01, got %+v", got)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	s, _, _ := newTestStore(nil)
	s.AddTask(models.Task{Title: "original", Tags: []string{"keep"}})

	out := s.Tasks()
	out[0].Title = "mutated"
	out[0].Tags[0] = "changed"

	got, _ := s.Get(out[0].ID)
	if got.Title != "original" || got.Tags[0] != "keep" {
		t.Errorf("Expected store state to be isolated from returned slices")
	}
}
