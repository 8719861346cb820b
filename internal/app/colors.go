package app

import (
	"image/color"

	"github.com/rook-computer/bitmapfb/internal/display"
)

// Palette indices used by the scene. Entries not listed keep the Plan 9
// colors.
const (
	ColorBlack      uint8 = 0
	ColorForeground uint8 = 1
	ColorBackground uint8 = 2
	ColorBackdropA  uint8 = 3
	ColorBackdropB  uint8 = 4
	ColorPanel      uint8 = 5
	ColorAccent     uint8 = 6
	ColorWhite      uint8 = 255
)

// Brand colors.
var (
	Foreground = color.RGBA{R: 0x90, G: 0x00, B: 0xFF, A: 0xFF} // #9000ff
	Background = color.RGBA{R: 0xFF, G: 0xDC, B: 0x00, A: 0xFF} // #ffdc00
)

// Palette returns the lookup table shared by every presenter and the web
// preview.
func Palette() display.Palette {
	p := display.DefaultPalette()
	p.Set(ColorForeground, Foreground)
	p.Set(ColorBackground, Background)
	p.Set(ColorBackdropA, color.RGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xFF})
	p.Set(ColorBackdropB, color.RGBA{R: 0x30, G: 0x30, B: 0x3C, A: 0xFF})
	p.Set(ColorPanel, color.RGBA{R: 0xF4, G: 0xF1, B: 0xE8, A: 0xFF})
	p.Set(ColorAccent, color.RGBA{R: 0x00, G: 0xB3, B: 0x8F, A: 0xFF})
	return p
}
