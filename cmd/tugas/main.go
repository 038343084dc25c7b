package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/adipras/tugas/internal/config"
	"github.com/adipras/tugas/internal/logging"
	"github.com/adipras/tugas/internal/metrics"
	"github.com/adipras/tugas/internal/storage"
	"github.com/adipras/tugas/internal/store"
	"github.com/adipras/tugas/internal/ui"
	"github.com/adipras/tugas/pkg/models"
)

var (
	dbPath  string
	verbose bool
)

func main() {
	cfg := config.Load()

	flag.StringVar(&dbPath, "db-path", cfg.DBPath, "Path to database file")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()
	cfg.DBPath = dbPath

	command := ""
	args := []string{}
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	var err error
	switch command {
	case "":
		err = runUI(cfg)
	case "list":
		err = runList(cfg, args)
	case "add":
		err = runAdd(cfg, args)
	case "toggle":
		err = runToggle(cfg, args)
	case "move":
		err = runMove(cfg, args)
	case "stats":
		err = runStats(cfg)
	case "export":
		err = runExport(cfg, args)
	case "import":
		err = runImport(cfg, args)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore wires storage, store, and metrics together. The caller must
// close the returned storage handle.
func openStore(cfg *config.Config) (*storage.Store, *store.Store, *metrics.Engine, error) {
	logger, err := logging.New(cfg.LogPath, verbose)
	if err != nil {
		// A broken log path should not keep the app from starting.
		logger = zap.NewNop()
	}

	db, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	tasks, err := db.LoadTasks(context.Background())
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	s := store.New(tasks, db, logger)
	return db, s, metrics.New(s), nil
}

func runUI(cfg *config.Config) error {
	db, s, engine, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return ui.Run(s, engine, cfg)
}

func runList(cfg *config.Config, args []string) error {
	listFlags := flag.NewFlagSet("list", flag.ContinueOnError)
	statusFilter := listFlags.String("status", "", "Filter by status (backlog, todo, in-progress, review, done)")
	search := listFlags.String("search", "", "Filter by search term")
	if err := listFlags.Parse(args); err != nil {
		return err
	}

	db, s, _, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	s.SetSearchTerm(*search)
	tasks := s.FilteredTasks()
	if *statusFilter != "" {
		tasks = s.TasksByStatus(models.Status(*statusFilter))
	}

	fmt.Printf("%-38s %-30s %-12s %-8s %-12s\n", "ID", "TITLE", "STATUS", "PRIORITY", "DUE")
	fmt.Println(strings.Repeat("-", 102))
	for _, t := range tasks {
		title := t.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		fmt.Printf("%-38s %-30s %-12s %-8s %-12s\n", t.ID, title, t.Status, t.Priority, t.DueDate)
	}
	return nil
}

func runAdd(cfg *config.Config, args []string) error {
	addFlags := flag.NewFlagSet("add", flag.ContinueOnError)
	category := addFlags.String("category", "", "Task category")
	priority := addFlags.String("priority", "medium", "Priority (low, medium, high)")
	due := addFlags.String("due", "", "Due date (YYYY-MM-DD)")
	tags := addFlags.String("tags", "", "Comma-separated tags")
	if err := addFlags.Parse(args); err != nil {
		return err
	}
	if addFlags.NArg() == 0 {
		return fmt.Errorf("usage: tugas add [flags] <title>")
	}

	db, s, _, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	draft := models.Task{
		Title:    strings.Join(addFlags.Args(), " "),
		Category: *category,
		Priority: models.Priority(*priority),
		DueDate:  *due,
	}
	if *tags != "" {
		for _, tag := range strings.Split(*tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				draft.Tags = append(draft.Tags, tag)
			}
		}
	}

	task, ok := s.AddTask(draft)
	if !ok {
		return fmt.Errorf("a task needs a non-blank title")
	}
	fmt.Printf("✓ Added %q (%s)\n", task.Title, task.ID)
	return nil
}

func runToggle(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tugas toggle <id>")
	}

	db, s, _, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if !s.ToggleTask(args[0]) {
		return fmt.Errorf("task not found: %s", args[0])
	}
	t, _ := s.Get(args[0])
	fmt.Printf("✓ %q is now %s\n", t.Title, t.Status)
	return nil
}

func runMove(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tugas move <id> <status>")
	}
	status := models.Status(args[1])
	if !models.ValidStatus(status) {
		return fmt.Errorf("unknown status: %s", args[1])
	}

	db, s, _, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if !s.MoveTask(args[0], status) {
		return fmt.Errorf("task not found: %s", args[0])
	}
	t, _ := s.Get(args[0])
	fmt.Printf("✓ %q moved to %s\n", t.Title, t.Status)
	return nil
}

func runStats(cfg *config.Config) error {
	db, s, engine, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	tasks := s.Tasks()
	fmt.Println("Task Overview")
	fmt.Println("=============")
	fmt.Printf("Total tasks:        %d\n", len(tasks))
	fmt.Printf("Completion rate:    %.1f%%\n", engine.CompletionRate())
	fmt.Printf("Productivity score: %d/100\n", engine.ProductivityScore())

	fmt.Println("\nBy priority:")
	for _, p := range engine.ByPriority() {
		fmt.Printf("  %-8s %d\n", p.Priority, p.Count)
	}

	if cats := engine.ByCategory(); len(cats) > 0 {
		fmt.Println("\nBy category:")
		for _, c := range cats {
			fmt.Printf("  %-12s %d\n", c.Category, c.Count)
		}
	}
	return nil
}

func runExport(cfg *config.Config, args []string) error {
	exportFlags := flag.NewFlagSet("export", flag.ContinueOnError)
	out := exportFlags.String("o", "", "Write to file instead of stdout")
	if err := exportFlags.Parse(args); err != nil {
		return err
	}

	db, s, _, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	doc, err := s.ExportTasks()
	if err != nil {
		return err
	}

	if *out == "" {
		fmt.Println(string(doc))
		return nil
	}
	if err := writeFileAtomic(*out, doc); err != nil {
		return err
	}
	fmt.Printf("✓ Exported %d tasks to %s\n", len(s.Tasks()), *out)
	return nil
}

func runImport(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tugas import <file>")
	}

	doc, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	db, s, _, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := s.ImportTasks(doc); err != nil {
		return err
	}
	fmt.Printf("✓ Imported %d tasks from %s\n", len(s.Tasks()), args[0])
	return nil
}

// writeFileAtomic writes via a temp file and rename so a failed export
// never leaves a truncated document behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "tugas-export-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}

	name := tmp.Name()
	tmp = nil // Prevent defer from removing it

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("failed to finalize export: %w", err)
	}
	return nil
}
