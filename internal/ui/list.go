package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/adipras/tugas/pkg/models"
)

// renderTaskList draws the searchable flat list. Completed tasks are
// struck through; overdue ones flagged.
func renderTaskList(tasks []models.Task, cursor int, now time.Time) string {
	if len(tasks) == 0 {
		return mutedStyle.Render("  Nothing here. Press 'a' to add a task.")
	}

	today := now.UTC().Format(models.DateLayout)

	var b strings.Builder
	for i, t := range tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		title := t.Title
		if t.Completed {
			title = doneStyle.Render(title)
		}

		line := fmt.Sprintf("%s %s", check, title)
		if style, ok := priorityColors[string(t.Priority)]; ok {
			line = style.Render("•") + " " + line
		}
		if t.IsOverdue(today) {
			line += " " + overdueStyle.Render("(overdue)")
		}

		meta := []string{}
		if t.Category != "" {
			meta = append(meta, t.Category)
		}
		if t.DueDate != "" {
			meta = append(meta, "due "+t.DueDate)
		}
		if len(t.Tags) > 0 {
			meta = append(meta, "#"+strings.Join(t.Tags, " #"))
		}
		meta = append(meta, "updated "+humanize.RelTime(t.UpdatedAt, now, "ago", "from now"))

		if i == cursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("      " + strings.Join(meta, " · ")))
		b.WriteString("\n")
	}
	return b.String()
}
