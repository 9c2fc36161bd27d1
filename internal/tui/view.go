package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/tui/view"
)

const (
	defaultWidth = 80
	barHeight    = 3
	sideMargin   = 2
)

type helpEntry struct {
	key  string
	desc string
}

var normalHelp = []helpEntry{
	{"←/→", "select"},
	{"h/l", "end"},
	{"H/L", "start"},
	{"a", "add"},
	{"x", "remove"},
	{"r", "range"},
	{"t", "tasks"},
	{"y", "copy"},
	{"q", "quit"},
}

var promptHelp = []helpEntry{
	{"enter", "apply"},
	{"esc", "cancel"},
}

// View renders the model.
func (m Model) View() string {
	if m.loading {
		return m.styles.SubtitleStyle.Render("Loading…")
	}

	width := m.contentWidth()
	p := m.styles.Palette

	sections := []string{
		m.renderHeader(),
		"",
		view.RenderBar(view.BarState{
			Blocks:   m.plan.Blocks,
			Range:    m.plan.Range,
			Selected: m.selected,
			Width:    width,
			Height:   barHeight,
		}, p),
		m.styles.SubtitleStyle.Render(view.RenderMarkers(m.plan.Range, width)),
		"",
		view.RenderLegend(view.BuildLegend(m.plan.Blocks, m.selected, m.tasks), p, width),
	}

	if m.showTasks {
		sections = append(sections,
			"",
			m.styles.SectionStyle.Render("Tasks"),
			view.RenderTasks(m.tasks, partition.Categories(m.plan.Blocks), p, width),
		)
	}

	if m.mode != ModeNormal {
		sections = append(sections, "", m.styles.PromptStyle.Width(min(width, 60)).Render(m.prompt.View()))
	}

	sections = append(sections, "", m.renderStatus(), m.renderHelp())

	body := strings.Join(sections, "\n")
	return lipgloss.NewStyle().Margin(1, sideMargin).Render(body)
}

func (m Model) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	return max(w-2*sideMargin, 10)
}

func (m Model) renderHeader() string {
	title := m.styles.TitleStyle.Render("daybar")
	sub := m.styles.SubtitleStyle.Render("  " + partition.FormatRange(m.plan.Range) +
		" · " + view.FormatDuration(m.plan.Range.Span()))
	return title + sub
}

func (m Model) renderStatus() string {
	if m.statusMsg == "" {
		return ""
	}
	switch m.statusLevel {
	case statusError:
		return m.styles.StatusErrStyle.Render(m.statusMsg)
	case statusWarn:
		return m.styles.StatusWarnStyle.Render(m.statusMsg)
	default:
		return m.styles.StatusStyle.Render(m.statusMsg)
	}
}

func (m Model) renderHelp() string {
	entries := normalHelp
	if m.mode != ModeNormal {
		entries = promptHelp
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = m.styles.HelpKeyStyle.Render(e.key) + " " + m.styles.HelpDescStyle.Render(e.desc)
	}
	return strings.Join(parts, m.styles.HelpDescStyle.Render("  "))
}
