package view

import (
	"fmt"
	"math"
)

// FormatDuration renders hours as "4h", "1h 30m" or "30m".
func FormatDuration(hours float64) string {
	mins := int(math.Round(hours * 60))
	if mins < 0 {
		mins = 0
	}
	h, m := mins/60, mins%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// Pluralize returns "1 task" or "n tasks".
func Pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
