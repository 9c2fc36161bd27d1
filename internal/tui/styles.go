package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/daybar/internal/tui/theme"
)

// Styles holds the lipgloss styles for the TUI chrome, derived from a theme.
type Styles struct {
	Palette *theme.Palette

	TitleStyle      lipgloss.Style
	SubtitleStyle   lipgloss.Style
	SectionStyle    lipgloss.Style
	StatusStyle     lipgloss.Style
	StatusWarnStyle lipgloss.Style
	StatusErrStyle  lipgloss.Style
	HelpKeyStyle    lipgloss.Style
	HelpDescStyle   lipgloss.Style
	PromptStyle     lipgloss.Style
	PromptTextStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		Palette: p,
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		SubtitleStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		SectionStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Fg),
		StatusStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
		StatusWarnStyle: lipgloss.NewStyle().
			Foreground(p.Warning),
		StatusErrStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Error),
		HelpKeyStyle: lipgloss.NewStyle().
			Foreground(p.Accent),
		HelpDescStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		PromptStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		PromptTextStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
	}
}
