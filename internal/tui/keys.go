package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/tui/commands"
	"github.com/javiermolinar/daybar/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	switch m.mode {
	case ModeAdd, ModeRange:
		return m.handlePromptKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.plan.Blocks)
	if m.loading || n == 0 {
		if msg.String() == "q" {
			return m.quit()
		}
		return m, nil
	}
	switch msg.String() {
	case "q":
		return m.quit()

	// Selection
	case "left", "shift+tab":
		m.selected = (m.selected - 1 + n) % n
	case "right", "tab":
		m.selected = (m.selected + 1) % n

	// End boundary of the selected block
	case "l":
		return m.moveSelected(0, m.snap)
	case "h":
		return m.moveSelected(0, -m.snap)

	// Start boundary of the selected block
	case "L":
		return m.moveSelected(m.snap, 0)
	case "H":
		return m.moveSelected(-m.snap, 0)

	case "x", "delete":
		return m.applyEdit(partition.RemoveBlockEdit{Index: m.selected})

	case "a":
		return m.enterPrompt(ModeAdd, "Category [#color]", "")
	case "r":
		return m.enterPrompt(ModeRange, "start end", formatRangeInput(m.plan.Range))

	case "t":
		m.showTasks = !m.showTasks

	case "y":
		data, err := partition.Export(m.plan)
		if err != nil {
			return m.setStatus(err.Error(), statusError)
		}
		return m, commands.CopyToClipboard(string(data))
	}
	return m, nil
}

// moveSelected shifts the start and end of the selected block by the given
// deltas. Moves are snapped; the range edges stay pinned.
func (m Model) moveSelected(dStart, dEnd float64) (tea.Model, tea.Cmd) {
	b := m.plan.Blocks[m.selected]
	start := b.Start
	end := b.End
	if dStart != 0 {
		start = partition.Snap(start+dStart, m.snap)
	}
	if dEnd != 0 {
		end = partition.Snap(end+dEnd, m.snap)
	}
	return m.applyEdit(partition.ResizeBlockEdit{Index: m.selected, Start: start, End: end})
}

func (m Model) enterPrompt(mode Mode, placeholder, value string) (tea.Model, tea.Cmd) {
	LogModeChange(m.mode, mode, "prompt")
	m.mode = mode
	m.prompt.Placeholder = placeholder
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.prompt.Prompt = mode.String() + " > "
	return m, m.prompt.Focus()
}

func (m Model) exitPrompt(reason string) Model {
	LogModeChange(m.mode, ModeNormal, reason)
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.SetValue("")
	return m
}

// handlePromptKeys handles keys while a prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.exitPrompt("cancel"), nil
	case "enter":
		value := strings.TrimSpace(m.prompt.Value())
		mode := m.mode
		m = m.exitPrompt("submit")
		if value == "" {
			return m, nil
		}
		return m.submitPrompt(mode, value)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt(mode Mode, value string) (tea.Model, tea.Cmd) {
	switch mode {
	case ModeAdd:
		name, color := input.ParseCategory(value)
		if color == "" {
			color = partition.NextColor(m.plan.Blocks)
		}
		return m.applyEdit(partition.AddEdit(m.plan, m.selected, name, color))
	case ModeRange:
		r, err := input.ParseRange(value)
		if err != nil {
			return m.setStatus("Enter the range as \"start end\", e.g. 9 17", statusError)
		}
		return m.applyEdit(partition.RescaleRangeEdit{Range: r})
	}
	return m, nil
}

func formatRangeInput(r partition.Range) string {
	return trimHour(r.Start) + " " + trimHour(r.End)
}
