// Package ui is the terminal client: a tabbed bubbletea program over the
// task store's read API and mutation surface. It is presentation only;
// every state change goes through the store.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adipras/tugas/internal/config"
	"github.com/adipras/tugas/internal/metrics"
	"github.com/adipras/tugas/internal/store"
	"github.com/adipras/tugas/pkg/models"
)

type view int

const (
	viewTasks view = iota
	viewBoard
	viewStats
	viewPomodoro
)

var viewNames = []string{"Tasks", "Board", "Stats", "Pomodoro"}

type clockTickMsg time.Time
type pomodoroTickMsg struct{}

type Model struct {
	store   *store.Store
	metrics *metrics.Engine

	view     view
	cursor   int
	boardCol int
	boardRow int

	search    textinput.Model
	searching bool
	titleIn   textinput.Model
	adding    bool

	toasts   *ToastStack
	pomodoro Pomodoro

	now    time.Time
	width  int
	height int
}

func NewModel(s *store.Store, e *metrics.Engine, cfg *config.Config) *Model {
	search := textinput.New()
	search.Placeholder = "search title, description, category, tags"
	search.CharLimit = 80

	titleIn := textinput.New()
	titleIn.Placeholder = "task title"
	titleIn.CharLimit = 120

	m := &Model{
		store:    s,
		metrics:  e,
		search:   search,
		titleIn:  titleIn,
		toasts:   NewToastStack(),
		pomodoro: NewPomodoro(cfg.PomodoroMinutes, cfg.BreakMinutes),
		now:      time.Now(),
	}

	// Mutations announce themselves through the store's event hook.
	s.Subscribe(func(e store.Event) {
		m.toasts.Push(e.Message)
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	return clockTick()
}

// clockTick drives the greeting line and toast expiry. It reads the
// collection but never mutates it.
func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func pomodoroTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return pomodoroTickMsg{}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clockTickMsg:
		m.now = time.Time(msg)
		m.toasts.Prune()
		return m, clockTick()

	case pomodoroTickMsg:
		if !m.pomodoro.Running() {
			return m, nil
		}
		m.pomodoro = m.pomodoro.Tick()
		if m.pomodoro.Running() {
			return m, pomodoroTick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry modes swallow everything except escape/enter.
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.SetValue("")
			m.store.SetSearchTerm("")
		case "enter":
			m.searching = false
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.store.SetSearchTerm(m.search.Value())
			m.clampCursor()
			return m, cmd
		}
		return m, nil
	}
	if m.adding {
		switch msg.String() {
		case "esc":
			m.adding = false
			m.titleIn.SetValue("")
		case "enter":
			title := m.titleIn.Value()
			if _, ok := m.store.AddTask(models.Task{Title: title}); !ok {
				m.toasts.Push("A task needs a title")
			}
			m.adding = false
			m.titleIn.SetValue("")
		default:
			var cmd tea.Cmd
			m.titleIn, cmd = m.titleIn.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		m.view = (m.view + 1) % view(len(viewNames))
	case "shift+tab":
		m.view = (m.view + view(len(viewNames)) - 1) % view(len(viewNames))
	case "1", "2", "3", "4":
		m.view = view(int(msg.String()[0] - '1'))

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "a":
		m.adding = true
		m.titleIn.Focus()
		return m, textinput.Blink

	case "s":
		if m.view == viewPomodoro {
			if m.pomodoro.Running() {
				m.pomodoro = m.pomodoro.Stop()
				return m, nil
			}
			m.pomodoro = m.pomodoro.Start()
			return m, pomodoroTick()
		}

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "left", "h":
		if m.view == viewBoard && m.boardCol > 0 {
			m.boardCol--
			m.boardRow = 0
		}
	case "right", "l":
		if m.view == viewBoard && m.boardCol < len(models.Statuses)-1 {
			m.boardCol++
			m.boardRow = 0
		}

	case " ":
		if t, ok := m.selected(); ok {
			m.store.ToggleTask(t.ID)
			m.clampCursor()
		}
	case "d":
		if t, ok := m.selected(); ok {
			m.store.DeleteTask(t.ID)
			m.clampCursor()
		}
	case "y":
		if t, ok := m.selected(); ok {
			m.store.DuplicateTask(t.ID)
		}
	case "m":
		if t, ok := m.selected(); ok {
			m.store.MoveTask(t.ID, nextStatus(t.Status))
			m.clampCursor()
		}
	}
	return m, nil
}

// nextStatus cycles through the board columns; "done" wraps back to
// "backlog" since no column is terminal.
func nextStatus(s models.Status) models.Status {
	for i, status := range models.Statuses {
		if status == s {
			return models.Statuses[(i+1)%len(models.Statuses)]
		}
	}
	return models.StatusTodo
}

// selected resolves the task under the cursor for the current view.
func (m *Model) selected() (models.Task, bool) {
	switch m.view {
	case viewTasks:
		tasks := m.store.FilteredTasks()
		if m.cursor >= 0 && m.cursor < len(tasks) {
			return tasks[m.cursor], true
		}
	case viewBoard:
		tasks := m.store.TasksByStatus(models.Statuses[m.boardCol])
		if m.boardRow >= 0 && m.boardRow < len(tasks) {
			return tasks[m.boardRow], true
		}
	}
	return models.Task{}, false
}

func (m *Model) moveCursor(delta int) {
	switch m.view {
	case viewTasks:
		m.cursor += delta
	case viewBoard:
		m.boardRow += delta
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if n := len(m.store.FilteredTasks()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.view == viewBoard {
		if n := len(m.store.TasksByStatus(models.Statuses[m.boardCol])); m.boardRow >= n {
			m.boardRow = n - 1
		}
		if m.boardRow < 0 {
			m.boardRow = 0
		}
	}
}

func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func (m *Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s · %d tasks · score %d",
		greeting(m.now), len(m.store.Tasks()), m.metrics.ProductivityScore())
	b.WriteString(titleStyle.Render("tugas") + "  " + mutedStyle.Render(header))
	b.WriteString("\n")

	var tabs []string
	for i, name := range viewNames {
		if view(i) == m.view {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString("  / " + m.search.View() + "\n\n")
	} else if m.store.SearchTerm() != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  filter: %q (esc via / to clear)", m.store.SearchTerm())) + "\n\n")
	}
	if m.adding {
		b.WriteString("  new task: " + m.titleIn.View() + "\n\n")
	}

	width := m.width
	if width == 0 {
		width = 100
	}

	switch m.view {
	case viewTasks:
		b.WriteString(renderTaskList(m.store.FilteredTasks(), m.cursor, m.now))
	case viewBoard:
		b.WriteString(renderBoard(m.store, m.boardCol, m.boardRow, width))
	case viewStats:
		b.WriteString(renderStats(m.metrics, m.now))
	case viewPomodoro:
		b.WriteString(m.pomodoro.View())
	}

	if t := m.toasts.View(); t != "" {
		b.WriteString("\n" + t)
	}

	b.WriteString("\n" + helpStyle.Render(
		"tab views · j/k move · space toggle · m next column · a add · y duplicate · d delete · / search · q quit"))
	return b.String()
}

// Run starts the terminal client and blocks until it exits.
func Run(s *store.Store, e *metrics.Engine, cfg *config.Config) error {
	p := tea.NewProgram(NewModel(s, e, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
