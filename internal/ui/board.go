package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adipras/tugas/internal/store"
	"github.com/adipras/tugas/pkg/models"
)

// renderBoard draws one bordered column per workflow status; any task can
// be moved into any column.
func renderBoard(s *store.Store, activeCol, activeRow, width int) string {
	colWidth := width/len(models.Statuses) - 2
	if colWidth < 14 {
		colWidth = 14
	}

	var columns []string
	for i, status := range models.Statuses {
		tasks := s.TasksByStatus(status)
		header := fmt.Sprintf("%s (%d)", columnTitle(status), len(tasks))

		var lines []string
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(header))
		for j, t := range tasks {
			line := truncate(t.Title, colWidth-4)
			if style, ok := priorityColors[string(t.Priority)]; ok {
				line = style.Render("•") + " " + line
			}
			if i == activeCol && j == activeRow {
				line = selectedItemStyle.Render("> " + line)
			} else {
				line = itemStyle.Render(line)
			}
			lines = append(lines, line)
		}
		if len(tasks) == 0 {
			lines = append(lines, mutedStyle.Render("  –"))
		}

		style := columnStyle
		if i == activeCol {
			style = activeColumnStyle
		}
		columns = append(columns, style.Width(colWidth).Render(strings.Join(lines, "\n")))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func columnTitle(s models.Status) string {
	switch s {
	case models.StatusBacklog:
		return "Backlog"
	case models.StatusTodo:
		return "To Do"
	case models.StatusInProgress:
		return "In Progress"
	case models.StatusReview:
		return "Review"
	case models.StatusDone:
		return "Done"
	}
	return string(s)
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		if len(s) <= max {
			return s
		}
		return s[:max]
	}
	return s[:max-1] + "…"
}
