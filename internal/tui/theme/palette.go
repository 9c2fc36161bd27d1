package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Warning     lipgloss.Color
	Error       lipgloss.Color

	TextOnAccent lipgloss.Color

	bg, fg string
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	return &Palette{
		Bg:           lipgloss.Color(t.Bg),
		BgHighlight:  lipgloss.Color(t.BgHighlight),
		BgSelection:  lipgloss.Color(t.BgSelection),
		Fg:           lipgloss.Color(t.Fg),
		FgMuted:      lipgloss.Color(t.FgMuted),
		Accent:       lipgloss.Color(t.Accent),
		Warning:      lipgloss.Color(t.Warning),
		Error:        lipgloss.Color(t.Error),
		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		bg:           t.Bg,
		fg:           t.Fg,
	}
}

// TextOn returns the theme text color with the better contrast on a block
// filled with hex.
func (p *Palette) TextOn(hex string) lipgloss.Color {
	return lipgloss.Color(chooseTextColor(hex, p.bg, p.fg))
}

// Dimmed returns hex blended halfway into the background. Unselected blocks
// are drawn dimmed while a block is selected.
func (p *Palette) Dimmed(hex string) lipgloss.Color {
	return lipgloss.Color(blendColors(hex, p.bg, 0.5))
}

// IsLight reports whether the palette has a light background.
func (p *Palette) IsLight() bool {
	return relativeLuminance(p.bg) > 0.55
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string, v *int) {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	*v = val
}

func isHex(s string) bool {
	return len(s) == 7 && s[0] == '#'
}

func rgb(hex string) (r, g, b int) {
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)
	return r, g, b
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	result := make([]byte, 7)
	result[0] = '#'
	result[1] = hex[r>>4]
	result[2] = hex[r&0xf]
	result[3] = hex[g>>4]
	result[4] = hex[g&0xf]
	result[5] = hex[b>>4]
	result[6] = hex[b&0xf]
	return string(result)
}

func chooseTextColor(bg, lightText, darkText string) string {
	lightContrast := contrastRatio(bg, lightText)
	darkContrast := contrastRatio(bg, darkText)
	if lightContrast >= darkContrast {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	if !isHex(hex) {
		return 0
	}
	r, g, b := rgb(hex)
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func blendColors(a, b string, ratio float64) string {
	if !isHex(a) || !isHex(b) {
		return a
	}
	ratio = min(max(ratio, 0), 1)

	ar, ag, ab := rgb(a)
	br, bg, bb := rgb(b)

	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	bv := int(float64(ab)*(1-ratio) + float64(bb)*ratio)

	return formatHexColor(r, g, bv)
}
