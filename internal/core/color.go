package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for race elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// CarPaint is one entry of the car palette.
type CarPaint struct {
	Name  string
	Color Color
}

// CarPalette lists the selectable car colors. A car's color index is an
// index into this table.
var CarPalette = []CarPaint{
	{"Red", ColorBrightRed},
	{"White", ColorBrightWhite},
	{"Blue", ColorBrightBlue},
	{"Black", ColorGray},
	{"Turquoise", ColorCyan},
	{"Gold", ColorYellow},
	{"Violet", ColorMagenta},
	{"Orange", ColorOrange},
}

// PaintFor returns the palette entry for a color index.
// Indices outside the palette fall back to the first entry.
func PaintFor(index int) CarPaint {
	if index < 0 || index >= len(CarPalette) {
		return CarPalette[0]
	}
	return CarPalette[index]
}

// NextPaint cycles to the following palette index.
func NextPaint(index int) int {
	return (index + 1) % len(CarPalette)
}
