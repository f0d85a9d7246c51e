package gfx

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// SystemFont is the bitmap font every fallback text path renders with.
var SystemFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// SystemFontHeight is the cell height of SystemFont in pixels.
const SystemFontHeight = 8

// SystemFontWidth returns the cell width of SystemFont in pixels,
// measured the same way the renderer advances.
func SystemFontWidth() int {
	_, w := tinyfont.LineWidth(SystemFont, "0")
	return int(w)
}

// MeasureText returns the pixel box a string occupies in the given font.
func MeasureText(font tinyfont.Fonter, s string) (w, h int) {
	_, outer := tinyfont.LineWidth(font, s)
	return int(outer), SystemFontHeight
}

// DrawText renders a string into dst with its top-left corner at (x, y).
// The renderer works from the baseline, so the cell height is added here
// rather than at every call site.
func DrawText(dst *Surface, font tinyfont.Fonter, x, y int, s string, c Color) {
	tinyfont.WriteLine(dst.Displayer(), font, int16(x), int16(y+SystemFontHeight), s, c.RGBA())
}

// DrawChar renders a single rune into dst at (x, y).
func DrawChar(dst *Surface, font tinyfont.Fonter, x, y int, r rune, c Color) {
	tinyfont.DrawChar(dst.Displayer(), font, int16(x), int16(y+SystemFontHeight), r, c.RGBA())
}
