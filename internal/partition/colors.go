package partition

// Swatches are the colors handed out to new categories that arrive without
// one, in order.
var Swatches = []Color{
	"#00bcd4", "#8bc34a", "#ffc107", "#e91e63", "#3f51b5",
	"#009688", "#cddc39", "#795548", "#607d8b", "#673ab7",
}

// NextColor returns the first swatch not already used by blocks. When every
// swatch is taken it cycles by block count.
func NextColor(blocks []Block) Color {
	used := make(map[Color]bool, len(blocks))
	for _, b := range blocks {
		used[b.Color] = true
	}
	for _, c := range Swatches {
		if !used[c] {
			return c
		}
	}
	return Swatches[len(blocks)%len(Swatches)]
}
