// Package tui provides the terminal user interface for daybar.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daybar/internal/config"
	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/task"
	"github.com/javiermolinar/daybar/internal/tui/commands"
	"github.com/javiermolinar/daybar/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd         // Typing a new category
	ModeRange       // Typing a new range
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeAdd:
		return "Add"
	case ModeRange:
		return "Range"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store  commands.Store
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	plan      partition.Plan
	tasks     []*task.Task
	selected  int
	mode      Mode
	loading   bool
	showTasks bool
	snap      float64

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Persistence. One save runs at a time; dirty marks edits made while
	// it was in flight.
	saving   bool
	dirty    bool
	quitting bool

	// Messages
	statusMsg   string
	statusLevel statusLevel
	statusGen   int

	// Error state
	err error
}

// New creates a new TUI model.
func New(store commands.Store, cfg *config.Config) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	ti.TextStyle = styles.PromptTextStyle
	ti.PromptStyle = styles.HelpKeyStyle
	ti.Cursor.Style = styles.HelpKeyStyle

	snap := cfg.Day.Snap
	if snap <= 0 {
		snap = partition.DefaultSnap
	}

	return &Model{
		store:   store,
		config:  cfg,
		theme:   t,
		styles:  styles,
		plan:    partition.Plan{Range: cfg.Range()},
		loading: true,
		snap:    snap,
		prompt:  ti,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadPlan(m.store, m.config.Range())
}

// Plan returns the plan currently shown.
func (m Model) Plan() partition.Plan {
	return m.plan
}

// Selected returns the index of the selected block.
func (m Model) Selected() int {
	return m.selected
}

// Run starts the TUI.
func Run(store commands.Store, cfg *config.Config) error {
	return RunWithDebug(store, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(store commands.Store, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	p := tea.NewProgram(New(store, cfg), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
