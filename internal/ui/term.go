package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Selected or highlighted values: bold cyan
	colorAccent = color.New(color.FgCyan, color.Bold)

	// Notices: yellow to make them pop
	colorNotice = color.New(color.FgYellow)

	// Confirmations: green
	colorOK = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatAccent formats text as highlighted.
func formatAccent(s string) string {
	return colorAccent.Sprint(s)
}

// formatNotice formats text for notices.
func formatNotice(s string) string {
	return colorNotice.Sprint(s)
}

// formatOK formats text for confirmations.
func formatOK(s string) string {
	return colorOK.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
