package chart

// Palette is an ordered list of colors assigned to datasets by position.
type Palette []string

// DefaultPalette is the ten color palette shared by every chart.
var DefaultPalette = Palette{
	"#3498db", // blue
	"#e74c3c", // red
	"#2ecc71", // green
	"#f1c40f", // yellow
	"#9b59b6", // purple
	"#1abc9c", // turquoise
	"#e67e22", // orange
	"#34495e", // dark blue
	"#16a085", // dark turquoise
	"#c0392b", // dark red
}

// Color returns the color for a dataset index, cycling through the palette.
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return ""
	}
	n := len(p)
	return p[(i%n+n)%n]
}

// Colors returns n colors from the palette, cycling as needed.
func (p Palette) Colors(n int) []string {
	res := make([]string, n)
	for i := range res {
		res[i] = p.Color(i)
	}
	return res
}
