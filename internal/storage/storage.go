// Package storage persists the task collection in a local SQLite database.
// The whole collection is serialized as one JSON document kept under a
// single well-known key, so every save fully supersedes the prior snapshot.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/adipras/tugas/pkg/models"
)

// TasksKey is the settings key holding the serialized task collection.
const TasksKey = "tasks"

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (creating if needed) the SQLite database at the given path.
// Use ":memory:" for tests.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadTasks returns the persisted task collection. A missing or corrupt
// payload is not an error: the store falls back to the sample seed and
// persists it, so first run and recovery look the same to the caller.
func (s *Store) LoadTasks(ctx context.Context) ([]models.Task, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, TasksKey).Scan(&raw)
	if err == sql.ErrNoRows {
		s.logger.Info("no saved tasks, seeding sample data")
		return s.seed(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.logger.Warn("saved tasks are corrupt, falling back to sample data", zap.Error(err))
		return s.seed(ctx)
	}
	return tasks, nil
}

// SaveTasks overwrites the persisted collection with the given one.
func (s *Store) SaveTasks(ctx context.Context, tasks []models.Task) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, TasksKey, string(raw))
	if err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

func (s *Store) seed(ctx context.Context) ([]models.Task, error) {
	tasks := SampleTasks()
	if err := s.SaveTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
