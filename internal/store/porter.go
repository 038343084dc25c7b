package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/adipras/tugas/pkg/models"
)

// ExportTasks serializes the full collection as a pretty-printed JSON
// document suitable for re-import.
func (s *Store) ExportTasks() ([]byte, error) {
	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}

// ImportTasks replaces the entire collection with the decoded document.
// A document that is not a JSON array of task records is rejected and the
// existing collection is left untouched; there is no partial import.
func (s *Store) ImportTasks(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("import document is not a task list")
	}

	var tasks []models.Task
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return fmt.Errorf("failed to decode import document: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	s.tasks = tasks
	s.persist()
	s.emit(Event{
		Type:    EventImported,
		Message: fmt.Sprintf("%d tasks imported", len(tasks)),
	})
	return nil
}
