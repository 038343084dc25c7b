package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/adipras/tugas/internal/metrics"
	"github.com/adipras/tugas/pkg/models"
)

// renderStats draws the analytics view: score, completion rate, the last
// week's completion histogram, and category/priority breakdowns.
func renderStats(e *metrics.Engine, now time.Time) string {
	score := e.ProductivityScore()
	rate := e.CompletionRate()

	summary := statBoxStyle.Render(fmt.Sprintf(
		"Productivity score  %3d / 100\nCompletion rate     %5.1f%%",
		score, rate,
	))

	end := now.UTC().Format(models.DateLayout)
	start := now.UTC().AddDate(0, 0, -6).Format(models.DateLayout)

	var week string
	if days, err := e.CompletedByDate(start, end); err == nil {
		var lines []string
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Completed, last 7 days"))
		for _, d := range days {
			lines = append(lines, fmt.Sprintf("%s %s %d", d.Date, strings.Repeat("█", d.Count), d.Count))
		}
		week = statBoxStyle.Render(strings.Join(lines, "\n"))
	}

	var cats []string
	cats = append(cats, lipgloss.NewStyle().Bold(true).Render("By category"))
	for _, c := range e.ByCategory() {
		cats = append(cats, fmt.Sprintf("%-12s %d", c.Category, c.Count))
	}
	if len(cats) == 1 {
		cats = append(cats, mutedStyle.Render("no categories yet"))
	}

	var prios []string
	prios = append(prios, lipgloss.NewStyle().Bold(true).Render("By priority"))
	for _, p := range e.ByPriority() {
		label := fmt.Sprintf("%-8s", p.Priority)
		if style, ok := priorityColors[string(p.Priority)]; ok {
			label = style.Render(label)
		}
		prios = append(prios, fmt.Sprintf("%s %d", label, p.Count))
	}

	breakdowns := lipgloss.JoinHorizontal(lipgloss.Top,
		statBoxStyle.Render(strings.Join(cats, "\n")),
		statBoxStyle.Render(strings.Join(prios, "\n")),
	)

	return lipgloss.JoinVertical(lipgloss.Left, summary, week, breakdowns)
}
