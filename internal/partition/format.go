package partition

import (
	"fmt"
	"math"
)

// FormatHour renders an hour value as a 12-hour clock label, e.g. 13.5 is
// "1:30 PM". Values are taken modulo 24, so 24 is "12 AM".
func FormatHour(h float64) string {
	if !isFinite(h) {
		return "?"
	}
	mins := int(math.Round(h * 60))
	mins = ((mins % (24 * 60)) + 24*60) % (24 * 60)
	hour, minute := mins/60, mins%60

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	if minute == 0 {
		return fmt.Sprintf("%d %s", display, period)
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// FormatRange renders a range as "9 AM - 5 PM".
func FormatRange(r Range) string {
	return FormatHour(r.Start) + " - " + FormatHour(r.End)
}

// Markers returns the time labels drawn along the bar: four steps of
// ceil(span/4) starting at the range start, plus the range end.
func Markers(r Range) []float64 {
	interval := math.Ceil(r.Span() / 4)
	if interval <= 0 || !isFinite(interval) {
		return []float64{r.Start, r.End}
	}
	var out []float64
	for h := r.Start; h <= r.End+epsilon; h += interval {
		out = append(out, h)
	}
	if !approxEqual(out[len(out)-1], r.End) {
		out = append(out, r.End)
	}
	return out
}
