// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daybar/internal/partition"
	"github.com/javiermolinar/daybar/internal/task"
)

// Store is the persistence the TUI needs.
type Store interface {
	LoadPlan(ctx context.Context) (partition.Plan, bool, error)
	SavePlan(ctx context.Context, p partition.Plan) error
	ListTasks(ctx context.Context) ([]*task.Task, error)
}

// PlanLoadedMsg is sent when the stored plan and tasks are loaded.
type PlanLoadedMsg struct {
	Plan   partition.Plan
	Tasks  []*task.Task
	Seeded bool // true if nothing was stored and the seed plan was used
}

// PlanSavedMsg is sent when a save finishes. Err is set if it failed.
type PlanSavedMsg struct {
	Plan partition.Plan
	Err  error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message set at generation Gen.
type ClearStatusMsg struct {
	Gen int
}

// clipboardWrite is swapped in tests.
var clipboardWrite = clipboard.WriteAll

// LoadPlan loads the stored plan, seeding one fitted to fallback when the
// store is empty.
func LoadPlan(store Store, fallback partition.Range) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		p, found, err := store.LoadPlan(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading plan: %w", err)}
		}
		if !found {
			p, err = partition.SeedPlan(fallback)
			if err != nil {
				return ErrMsg{Err: fmt.Errorf("seeding plan: %w", err)}
			}
		}

		tasks, err := store.ListTasks(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading tasks: %w", err)}
		}
		return PlanLoadedMsg{Plan: p, Tasks: tasks, Seeded: !found}
	}
}

// SavePlan persists p. The result always arrives as a PlanSavedMsg so the
// caller can track the save in flight.
func SavePlan(store Store, p partition.Plan) tea.Cmd {
	return func() tea.Msg {
		if err := store.SavePlan(context.Background(), p); err != nil {
			return PlanSavedMsg{Plan: p, Err: fmt.Errorf("saving plan: %w", err)}
		}
		return PlanSavedMsg{Plan: p}
	}
}

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWrite(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied plan to clipboard"}
	}
}

// ClearStatusAfter clears the status message of generation gen after d.
func ClearStatusAfter(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Gen: gen}
	})
}
