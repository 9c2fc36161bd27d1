package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/task"
	"github.com/javiermolinar/daybar/internal/tui/theme"
)

// LegendEntry is one row of the legend.
type LegendEntry struct {
	Category string
	Color    partition.Color
	Hours    float64
	Open     int // tasks not yet completed
	Selected bool
}

// BuildLegend returns one entry per block, in bar order. Open task counts
// are looked up by category.
func BuildLegend(blocks []partition.Block, selected int, tasks []*task.Task) []LegendEntry {
	open := make(map[string]int)
	for _, t := range tasks {
		if !t.Completed {
			open[t.Category]++
		}
	}

	entries := make([]LegendEntry, len(blocks))
	for i, b := range blocks {
		entries[i] = LegendEntry{
			Category: b.Category,
			Color:    b.Color,
			Hours:    b.Duration(),
			Open:     open[b.Category],
			Selected: i == selected,
		}
	}
	return entries
}

// RenderLegend renders the legend rows with aligned names.
func RenderLegend(entries []LegendEntry, p *theme.Palette, width int) string {
	nameWidth := 0
	for _, e := range entries {
		nameWidth = max(nameWidth, runewidth.StringWidth(e.Category))
	}
	nameWidth = min(nameWidth, max(width/2, 8))

	muted := lipgloss.NewStyle().Foreground(p.FgMuted)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		marker := "  "
		text := lipgloss.NewStyle().Foreground(p.Fg)
		if e.Selected {
			marker = "▸ "
			text = text.Bold(true).Foreground(p.Accent)
		}

		name := runewidth.FillRight(runewidth.Truncate(e.Category, nameWidth, "…"), nameWidth)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(string(e.Color))).Render("■")

		line := marker + swatch + " " + text.Render(name) + "  " + FormatDuration(e.Hours)
		if e.Open > 0 {
			line += muted.Render("  · " + Pluralize(e.Open, "task"))
		}
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	return strings.Join(lines, "\n")
}

// RenderTasks renders the task list. Tasks whose category is not in the
// plan are shown muted and flagged.
func RenderTasks(tasks []*task.Task, categories []string, p *theme.Palette, width int) string {
	if len(tasks) == 0 {
		return lipgloss.NewStyle().Foreground(p.FgMuted).Render("No tasks")
	}

	muted := lipgloss.NewStyle().Foreground(p.FgMuted)
	normal := lipgloss.NewStyle().Foreground(p.Fg)
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		style := normal
		suffix := " (" + t.Category + ")"
		if t.IsOrphan(categories) {
			style = muted
			suffix = " (" + t.Category + ", not in plan)"
		} else if t.Completed {
			style = muted.Strikethrough(true)
		}
		line := style.Render(box+" "+t.Text) + muted.Render(suffix)
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	return strings.Join(lines, "\n")
}
