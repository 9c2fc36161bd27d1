package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/task"
	"github.com/javiermolinar/daybar/internal/tui/theme"
	"github.com/javiermolinar/daybar/internal/tui/view"
)

// PrintOpts configures plan printing.
type PrintOpts struct {
	Width   int    // Bar width (0 = terminal width)
	Theme   string // Theme used for bar colors
	ShowBar bool   // Draw the colored bar above the table
}

// printPlan writes the plan as a numbered table, optionally preceded by the
// colored bar.
func printPlan(w io.Writer, p partition.Plan, tasks []*task.Task, opts PrintOpts) {
	fmt.Fprintf(w, "%s  %s\n", formatHeader("Range"), partition.FormatRange(p.Range))

	if opts.ShowBar {
		width := opts.Width
		if width <= 0 {
			width = termWidth()
		}
		width = max(width-2, 10)
		th, _ := theme.Load(opts.Theme)
		palette := theme.NewPalette(th)
		fmt.Fprintln(w, view.RenderBar(view.BarState{
			Blocks:   p.Blocks,
			Range:    p.Range,
			Selected: -1,
			Width:    width,
			Height:   1,
		}, palette))
		fmt.Fprintln(w, formatMuted(view.RenderMarkers(p.Range, width)))
	}
	fmt.Fprintln(w)

	open := make(map[string]int)
	for _, t := range tasks {
		if !t.Completed {
			open[t.Category]++
		}
	}

	nameWidth := 0
	for _, b := range p.Blocks {
		nameWidth = max(nameWidth, runewidth.StringWidth(b.Category))
	}

	for i, b := range p.Blocks {
		span := fmt.Sprintf("%8s - %-8s", partition.FormatHour(b.Start), partition.FormatHour(b.End))
		name := runewidth.FillRight(b.Category, nameWidth)
		line := fmt.Sprintf("%2d  %s  %s  %7s", i+1, span, formatAccent(name), view.FormatDuration(b.Duration()))
		if n := open[b.Category]; n > 0 {
			line += formatMuted("  " + view.Pluralize(n, "task"))
		}
		fmt.Fprintln(w, line)
	}
}

// printNotices writes engine notices.
func printNotices(w io.Writer, notices []partition.Notice) {
	for _, n := range notices {
		fmt.Fprintln(w, formatNotice("! "+n.Message))
	}
}

// printTasks writes the task list with orphaned tasks flagged.
func printTasks(w io.Writer, tasks []*task.Task, categories []string) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, formatMuted("No tasks"))
		return
	}
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = formatOK("[x]")
		}
		category := t.Category
		if t.IsOrphan(categories) {
			category += ", not in plan"
		}
		fmt.Fprintf(w, "%3d %s %s %s\n", t.ID, box, t.Text, formatMuted("("+category+")"))
	}
}

// printCategories writes one category per line with its total hours.
func printCategories(w io.Writer, blocks []partition.Block) {
	totals := make(map[string]float64)
	for _, b := range blocks {
		totals[b.Category] += b.Duration()
	}
	cats := partition.Categories(blocks)
	width := 0
	for _, c := range cats {
		width = max(width, runewidth.StringWidth(c))
	}
	for _, c := range cats {
		fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(c, width), view.FormatDuration(totals[c]))
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
