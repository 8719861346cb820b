// Package display turns indexed surfaces into colors: a 256-entry lookup
// table, image views over surface memory, PNG encoding and presenters that
// push damaged regions to a device.
package display

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/bitmapfb/internal/bitmap"
)

// MaxScale bounds the integer upscale accepted by EncodePNG.
const MaxScale = 8

// Palette maps a surface color index to a device color.
type Palette [256]color.RGBA

// DefaultPalette returns the Plan 9 color map: index 0 is black and index 255
// white.
func DefaultPalette() Palette {
	var p Palette
	for i, c := range palette.Plan9 {
		p.Set(uint8(i), c)
	}
	return p
}

// Set replaces entry i. The stored color is always opaque.
func (p *Palette) Set(i uint8, c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	rgba.A = 0xFF
	p[i] = rgba
}

// Colors returns the table as a color.Palette for the image packages.
func (p *Palette) Colors() color.Palette {
	out := make(color.Palette, len(p))
	for i := range p {
		out[i] = p[i]
	}
	return out
}

// Paletted returns an image view of s. The image shares the surface's pixel
// memory: later drawing on s shows through, and writes to the image change s.
func Paletted(s *bitmap.Surface, pal *Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     s.Pix(),
		Stride:  s.Width(),
		Rect:    image.Rect(0, 0, s.Width(), s.Height()),
		Palette: pal.Colors(),
	}
}

// EncodePNG writes s as an indexed PNG, enlarged scale times with
// nearest-neighbor sampling.
func EncodePNG(w io.Writer, s *bitmap.Surface, pal *Palette, scale int) error {
	if s == nil {
		return bitmap.ErrNilSurface
	}
	if s.Pix() == nil {
		return bitmap.ErrNoStorage
	}
	if scale < 1 || scale > MaxScale {
		return fmt.Errorf("display: scale %d outside 1..%d", scale, MaxScale)
	}

	img := Paletted(s, pal)
	if scale > 1 {
		big := image.NewPaletted(image.Rect(0, 0, s.Width()*scale, s.Height()*scale), img.Palette)
		xdraw.NearestNeighbor.Scale(big, big.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = big
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("display: encode png: %w", err)
	}
	return nil
}
