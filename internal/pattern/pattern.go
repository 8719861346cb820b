// Package pattern generates surfaces used as tiles and overlays.
package pattern

import (
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/rook-computer/bitmapfb/internal/bitmap"
)

var ErrEmptyPayload = errors.New("pattern: empty qr payload")

// Checkerboard returns a width x height surface of cell x cell squares
// alternating a and b, with a at the origin.
func Checkerboard(width, height, cell int, a, b uint8) (*bitmap.Surface, error) {
	if cell < 1 {
		return nil, fmt.Errorf("%w: cell size %d", bitmap.ErrInvalidArgument, cell)
	}
	s, err := bitmap.New(width, height)
	if err != nil {
		return nil, err
	}
	_ = s.Clear(a)
	for y := 0; y < height; y += cell {
		for x := 0; x < width; x += cell {
			if (x/cell+y/cell)%2 == 1 {
				_ = s.FillBox(x, y, cell, cell, b)
			}
		}
	}
	return s, nil
}

// Stripes returns a width x height surface of vertical bands, band pixels
// wide, cycling through colors.
func Stripes(width, height, band int, colors ...uint8) (*bitmap.Surface, error) {
	if band < 1 || len(colors) == 0 {
		return nil, fmt.Errorf("%w: band %d with %d colors", bitmap.ErrInvalidArgument, band, len(colors))
	}
	s, err := bitmap.New(width, height)
	if err != nil {
		return nil, err
	}
	for i, x := 0, 0; x < width; i, x = i+1, x+band {
		_ = s.FillBox(x, 0, band, height, colors[i%len(colors)])
	}
	return s, nil
}

// QRCode renders payload as a QR code with medium error correction, each
// module drawn as a module x module square including the quiet zone. The
// module size shrinks when the code would not fit the largest surface.
func QRCode(payload string, module int, fg, bg uint8) (*bitmap.Surface, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	if module < 1 {
		module = 1
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("pattern: qr encode: %w", err)
	}
	bits := qrCode.Bitmap()
	n := len(bits)
	limit := min(bitmap.MaxWidth, bitmap.MaxHeight)
	if n*module > limit {
		module = limit / n
	}
	if module < 1 {
		return nil, fmt.Errorf("%w: qr code of %d modules does not fit", bitmap.ErrInvalidDimensions, n)
	}

	s, err := bitmap.New(n*module, n*module)
	if err != nil {
		return nil, err
	}
	_ = s.Clear(bg)
	for y, row := range bits {
		for x, set := range row {
			if set {
				_ = s.FillBox(x*module, y*module, module, module, fg)
			}
		}
	}
	return s, nil
}
