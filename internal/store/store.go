// Package store owns the canonical task collection. Every mutation goes
// through it: it enforces the completed/status invariant, persists the
// whole collection after each change, and notifies subscribers.
//
// The store is not safe for concurrent use. The host event loop is the
// single writer; reads recompute derived views from live state on every
// call so they can never go stale.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adipras/tugas/pkg/models"
)

// Persister saves the full task collection. Each save supersedes the
// previous snapshot.
type Persister interface {
	SaveTasks(ctx context.Context, tasks []models.Task) error
}

type EventType string

const (
	EventCreated         EventType = "created"
	EventUpdated         EventType = "updated"
	EventDeleted         EventType = "deleted"
	EventToggled         EventType = "toggled"
	EventMoved           EventType = "moved"
	EventDuplicated      EventType = "duplicated"
	EventNoteAdded       EventType = "note_added"
	EventAttachmentAdded EventType = "attachment_added"
	EventImported        EventType = "imported"
)

// Event describes a completed mutation. Any number of listeners may
// subscribe; the store works the same with zero.
type Event struct {
	Type    EventType
	TaskID  string
	Title   string
	Message string
}

type Store struct {
	tasks      []models.Task
	searchTerm string
	persister  Persister
	logger     *zap.Logger
	listeners  []func(Event)

	// Injectable for tests.
	now   func() time.Time
	newID func() string
}

// New builds a store over an initial collection, typically the result of
// storage.LoadTasks. persister may be nil (tests).
func New(tasks []models.Task, persister Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		tasks:     tasks,
		persister: persister,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Subscribe registers a listener for mutation events.
func (s *Store) Subscribe(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) emit(e Event) {
	for _, fn := range s.listeners {
		fn(e)
	}
}

// persist writes the whole collection. A storage failure does not undo
// the in-memory mutation; it is logged and the next save supersedes it.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveTasks(context.Background(), s.tasks); err != nil {
		s.logger.Error("failed to persist tasks", zap.Error(err))
	}
}

func (s *Store) find(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// AddTask creates a task from the draft. The draft's title must not be
// blank; id, timestamps, status and completed are assigned here. Returns
// the stored task and false when the draft was rejected.
func (s *Store) AddTask(draft models.Task) (models.Task, bool) {
	if strings.TrimSpace(draft.Title) == "" {
		return models.Task{}, false
	}

	now := s.now()
	task := draft.Clone()
	task.ID = s.newID()
	task.CreatedAt = now
	task.UpdatedAt = now
	task.Status = models.StatusTodo
	task.Completed = false
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.Notes == nil {
		task.Notes = []string{}
	}
	if task.Attachments == nil {
		task.Attachments = []string{}
	}

	s.tasks = append(s.tasks, task)
	s.persist()
	s.emit(Event{
		Type:    EventCreated,
		TaskID:  task.ID,
		Title:   task.Title,
		Message: fmt.Sprintf("%q added to your task list", task.Title),
	})
	return task.Clone(), true
}

// UpdateTask merges the patch into the matching task. When the patch
// carries exactly one of completed/status the other is derived so the
// two can never drift apart. Returns false if no task has the id.
func (s *Store) UpdateTask(id string, patch TaskPatch) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}

	patch.apply(&s.tasks[i])
	s.tasks[i].UpdatedAt = s.now()
	s.persist()
	s.emit(Event{
		Type:    EventUpdated,
		TaskID:  id,
		Title:   s.tasks[i].Title,
		Message: "Task changes saved",
	})
	return true
}

// DeleteTask removes the task. Returns false if no task has the id.
func (s *Store) DeleteTask(id string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}

	title := s.tasks[i].Title
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persist()
	s.emit(Event{
		Type:    EventDeleted,
		TaskID:  id,
		Title:   title,
		Message: fmt.Sprintf("%q removed from your task list", title),
	})
	return true
}

// ToggleTask flips completion. A newly completed task moves to "done",
// a reopened one back to "todo".
func (s *Store) ToggleTask(id string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}

	t := &s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		t.Status = models.StatusDone
	} else {
		t.Status = models.StatusTodo
	}
	t.UpdatedAt = s.now()
	s.persist()

	msg := fmt.Sprintf("%q marked as done", t.Title)
	if !t.Completed {
		msg = fmt.Sprintf("%q reopened", t.Title)
	}
	s.emit(Event{Type: EventToggled, TaskID: id, Title: t.Title, Message: msg})
	return true
}

// MoveTask sets the workflow column. Completion follows: a task is
// completed exactly when it sits in "done". Any column can be set from
// any other; there is no terminal state.
func (s *Store) MoveTask(id string, status models.Status) bool {
	if !models.ValidStatus(status) {
		return false
	}
	i := s.find(id)
	if i < 0 {
		return false
	}

	t := &s.tasks[i]
	t.Status = status
	t.Completed = status == models.StatusDone
	t.UpdatedAt = s.now()
	s.persist()
	s.emit(Event{
		Type:    EventMoved,
		TaskID:  id,
		Title:   t.Title,
		Message: fmt.Sprintf("%q moved to %s", t.Title, status),
	})
	return true
}

// DuplicateTask clones a task as a fresh, uncompleted "todo" entry with
// its own id and timestamps. Returns false if no task has the id.
func (s *Store) DuplicateTask(id string) (models.Task, bool) {
	i := s.find(id)
	if i < 0 {
		return models.Task{}, false
	}

	now := s.now()
	copyTask := s.tasks[i].Clone()
	copyTask.ID = s.newID()
	copyTask.Title = copyTask.Title + " (Copy)"
	copyTask.CreatedAt = now
	copyTask.UpdatedAt = now
	copyTask.Completed = false
	copyTask.Status = models.StatusTodo

	s.tasks = append(s.tasks, copyTask)
	s.persist()
	s.emit(Event{
		Type:    EventDuplicated,
		TaskID:  copyTask.ID,
		Title:   copyTask.Title,
		Message: fmt.Sprintf("%q added to your task list", copyTask.Title),
	})
	return copyTask.Clone(), true
}

// AddNote appends to the task's note sequence. Notes are append-only.
func (s *Store) AddNote(id, note string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}

	s.tasks[i].Notes = append(s.tasks[i].Notes, note)
	s.tasks[i].UpdatedAt = s.now()
	s.persist()
	s.emit(Event{Type: EventNoteAdded, TaskID: id, Title: s.tasks[i].Title, Message: "Note added"})
	return true
}

// AddAttachment appends to the task's attachment sequence.
func (s *Store) AddAttachment(id, ref string) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}

	s.tasks[i].Attachments = append(s.tasks[i].Attachments, ref)
	s.tasks[i].UpdatedAt = s.now()
	s.persist()
	s.emit(Event{Type: EventAttachmentAdded, TaskID: id, Title: s.tasks[i].Title, Message: "Attachment added"})
	return true
}

func (s *Store) SetSearchTerm(term string) {
	s.searchTerm = term
}

func (s *Store) SearchTerm() string {
	return s.searchTerm
}

// Tasks returns a copy of the full collection in insertion order.
func (s *Store) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the task with the given id, or false.
func (s *Store) Get(id string) (models.Task, bool) {
	i := s.find(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// FilteredTasks applies the current search term: a case-insensitive
// substring match against title, description, category, or any tag.
func (s *Store) FilteredTasks() []models.Task {
	term := strings.ToLower(s.searchTerm)
	var out []models.Task
	for _, t := range s.tasks {
		if term == "" || matches(t, term) {
			out = append(out, t.Clone())
		}
	}
	return out
}

func matches(t models.Task, term string) bool {
	if strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term) ||
		strings.Contains(strings.ToLower(t.Category), term) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// TasksByStatus returns the filtered tasks sitting in the given column.
func (s *Store) TasksByStatus(status models.Status) []models.Task {
	var out []models.Task
	for _, t := range s.FilteredTasks() {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// TasksByDate returns the filtered tasks due on the given YYYY-MM-DD date.
func (s *Store) TasksByDate(date string) []models.Task {
	var out []models.Task
	for _, t := range s.FilteredTasks() {
		if t.DueDate == date {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns the distinct categories currently in use, in order
// of first appearance. The category vocabulary is derived, never stored.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range s.tasks {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}

// Tags returns the union of all task tags, in order of first appearance.
func (s *Store) Tags() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range s.tasks {
		for _, tag := range t.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
