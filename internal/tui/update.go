package tui

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/tui/commands"
)

// statusTTL is how long a status message stays on screen.
const statusTTL = 4 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.PlanLoadedMsg:
		m.plan = msg.Plan
		m.tasks = msg.Tasks
		m.loading = false
		m.selected = min(m.selected, len(m.plan.Blocks)-1)
		if msg.Seeded {
			return m.queueSave()
		}
		return m, nil

	case commands.PlanSavedMsg:
		return m.handleSaved(msg)

	case commands.ErrMsg:
		LogError("command", msg.Err)
		if m.loading {
			m.err = msg.Err
			return m, tea.Quit
		}
		return m.setStatus(msg.Err.Error(), statusError)

	case commands.StatusMsgCmd:
		return m.setStatus(msg.Msg, statusInfo)

	case commands.ClearStatusMsg:
		if msg.Gen == m.statusGen {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.mode != ModeNormal {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applyEdit runs e through the engine. Accepted plans replace the current
// one and are saved; rejections only produce a status message.
func (m Model) applyEdit(e partition.Edit) (tea.Model, tea.Cmd) {
	res, err := partition.Apply(m.plan, e)
	LogEdit(e, m.plan, err)
	if err != nil {
		return m.setStatus(partition.Reason(err), statusError)
	}

	m.plan = res.Plan
	m.selected = min(m.selected, len(m.plan.Blocks)-1)
	m, save := m.queueSave()

	if len(res.Notices) > 0 {
		next, cmd := m.setStatus(res.Notices[0].Message, statusWarn)
		return next, tea.Batch(save, cmd)
	}
	if m.statusLevel == statusError {
		m.statusMsg = ""
	}
	return m, save
}

// queueSave persists the current plan, or marks it dirty when a save is
// already running so the newest plan is written once that one finishes.
func (m Model) queueSave() (Model, tea.Cmd) {
	if m.saving {
		m.dirty = true
		return m, nil
	}
	m.saving = true
	m.dirty = false
	return m, commands.SavePlan(m.store, m.plan)
}

func (m Model) handleSaved(msg commands.PlanSavedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	var status tea.Cmd
	if msg.Err != nil {
		LogError("save", msg.Err)
		m, status = m.setStatus(msg.Err.Error(), statusError)
	}
	if m.dirty {
		next, save := m.queueSave()
		if status == nil {
			return next, save
		}
		return next, tea.Batch(status, save)
	}
	if m.quitting {
		return m, tea.Quit
	}
	return m, status
}

// quit exits once no save is pending. A second quit request while waiting
// exits immediately.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if !m.saving || m.quitting {
		return m, tea.Quit
	}
	m.quitting = true
	m.statusMsg = "Saving..."
	m.statusLevel = statusInfo
	return m, nil
}

func (m Model) setStatus(msg string, level statusLevel) (Model, tea.Cmd) {
	m.statusGen++
	m.statusMsg = msg
	m.statusLevel = level
	return m, commands.ClearStatusAfter(statusTTL, m.statusGen)
}

func trimHour(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
