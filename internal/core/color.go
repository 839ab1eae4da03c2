package core

// Color is a logical foreground or background color of a screen cell.
// The platform layer maps it to terminal colors.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorHighlight
)

// Palette is the order in which token colors are assigned.
var Palette = []Color{ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorMagenta, ColorCyan, ColorOrange}

// PaletteColor returns the color of token index i, wrapping around the palette.
func PaletteColor(i int) Color {
	if i < 0 {
		return ColorDefault
	}
	return Palette[i%len(Palette)]
}
