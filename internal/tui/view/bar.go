// Package view renders the day bar, its markers and the legend.
package view

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/tui/theme"
)

// Columns splits width terminal columns between blocks in proportion to
// their duration. The result always sums to width, and every block gets at
// least one column when width allows it.
func Columns(blocks []partition.Block, r partition.Range, width int) []int {
	cols := make([]int, len(blocks))
	span := r.Span()
	if width <= 0 || len(blocks) == 0 || span <= 0 {
		return cols
	}

	type share struct {
		idx  int
		frac float64
	}
	shares := make([]share, len(blocks))
	used := 0
	for i, b := range blocks {
		exact := b.Duration() * float64(width) / span
		cols[i] = int(math.Floor(exact + 1e-9))
		used += cols[i]
		shares[i] = share{idx: i, frac: max(exact-float64(cols[i]), 0)}
	}

	// Largest remainder first; ties go to the earlier block.
	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].frac > shares[b].frac
	})
	for i := 0; used < width; i++ {
		cols[shares[i%len(shares)].idx]++
		used++
	}
	for ; used > width; used-- {
		cols[widestColumn(cols)]--
	}

	if width < len(blocks) {
		return cols
	}
	for i := range cols {
		if cols[i] > 0 {
			continue
		}
		cols[widestColumn(cols)]--
		cols[i]++
	}
	return cols
}

func widestColumn(cols []int) int {
	widest := 0
	for j := range cols {
		if cols[j] > cols[widest] {
			widest = j
		}
	}
	return widest
}

// BarState is what RenderBar needs to draw the bar.
type BarState struct {
	Blocks   []partition.Block
	Range    partition.Range
	Selected int // -1 for no selection
	Width    int
	Height   int
}

// RenderBar draws the blocks as one proportional colored bar. The category
// label sits on the middle line, truncated to its column.
func RenderBar(s BarState, p *theme.Palette) string {
	height := max(s.Height, 1)
	cols := Columns(s.Blocks, s.Range, s.Width)
	labelRow := height / 2

	rows := make([]string, height)
	for row := 0; row < height; row++ {
		var sb strings.Builder
		for i, b := range s.Blocks {
			w := cols[i]
			if w == 0 {
				continue
			}
			sb.WriteString(renderSegment(b, w, row == labelRow, s.Selected, i, p))
		}
		rows[row] = sb.String()
	}
	return strings.Join(rows, "\n")
}

func renderSegment(b partition.Block, w int, withLabel bool, selected, idx int, p *theme.Palette) string {
	hex := string(b.Color)
	bg := lipgloss.Color(hex)
	if selected >= 0 && selected != idx {
		bg = p.Dimmed(hex)
	}
	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(p.TextOn(hex)).
		Width(w).
		MaxWidth(w).
		Align(lipgloss.Center)
	if selected == idx {
		style = style.Bold(true).Underline(true)
	}

	label := ""
	if withLabel {
		label = ansi.Truncate(b.Category, w, "…")
	}
	return style.Render(label)
}

// RenderMarkers lays out time labels under the bar at their proportional
// column. The end label is right-aligned to the bar end and always drawn;
// other labels that would collide are skipped.
func RenderMarkers(r partition.Range, width int) string {
	if width <= 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", width))
	span := r.Span()
	markers := partition.Markers(r)

	last := markers[len(markers)-1]
	endLabel := partition.FormatHour(last)
	endWidth := runewidth.StringWidth(endLabel)
	limit := width
	if endWidth <= width {
		limit = width - endWidth - 1
		copy(line[width-endWidth:], []rune(endLabel))
	}

	nextFree := 0
	for _, h := range markers[:len(markers)-1] {
		label := partition.FormatHour(h)
		lw := runewidth.StringWidth(label)

		pos := 0
		if span > 0 {
			pos = int(math.Round((h - r.Start) / span * float64(width)))
		}
		if pos < nextFree || pos+lw > limit {
			continue
		}
		copy(line[pos:], []rune(label))
		nextFree = pos + lw + 1
	}
	return strings.TrimRight(string(line), " ")
}
