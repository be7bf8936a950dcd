package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/rvalk/go-spriteblit/spriteblit/display"
)

// PixelColor converts a packed buffer pixel to a 24-bit tcell color.
func PixelColor(p uint32) tcell.Color {
	r, g, b := display.Unpack(p)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// HalfBlockCell maps a vertical pair of buffer pixels onto one terminal
// cell. The upper half block paints the top pixel with the foreground and
// the bottom pixel with the background, which doubles the vertical
// resolution of the terminal.
func HalfBlockCell(top, bottom uint32) (rune, tcell.Style) {
	if top == bottom {
		return '█', tcell.StyleDefault.Foreground(PixelColor(top))
	}
	return '▀', tcell.StyleDefault.
		Foreground(PixelColor(top)).
		Background(PixelColor(bottom))
}
