package world

import "fmt"

// Color is an RGB triple attached to glyphs and messages.
type Color struct {
	R, G, B uint8
}

var (
	Black       = Color{0, 0, 0}
	White       = Color{255, 255, 255}
	Red         = Color{125, 0, 0}
	BrightRed   = Color{255, 0, 0}
	Green       = Color{0, 125, 0}
	BrightGreen = Color{0, 255, 0}
	Blue        = Color{0, 0, 125}
	Purple      = Color{50, 0, 50}
	Gold        = Color{255, 215, 0}
	Grey        = Color{100, 100, 100}
	DarkGrey    = Color{50, 50, 50}
	Brown       = Color{139, 69, 19}
	ForestGreen = Color{34, 139, 34}
	TreeGreen   = Color{0, 255, 0}
)

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Glyph is what a renderer draws for one tile or item.
type Glyph struct {
	Symbol rune
	Color  Color
}

var colorNames = map[string]Color{
	"black":        Black,
	"white":        White,
	"red":          Red,
	"bright_red":   BrightRed,
	"green":        Green,
	"bright_green": BrightGreen,
	"blue":         Blue,
	"purple":       Purple,
	"gold":         Gold,
	"grey":         Grey,
	"dark_grey":    DarkGrey,
	"brown":        Brown,
	"forest_green": ForestGreen,
	"tree_green":   TreeGreen,
}

// ColorByName resolves a palette name as used in data files.
func ColorByName(name string) (Color, bool) {
	c, ok := colorNames[name]
	return c, ok
}
