// Package bitmap implements an indexed-color surface: one byte per pixel, each
// byte an index into a color lookup table owned by the display layer. The
// package provides pixel access, line/circle/box rasterization, flood fill,
// clipped block transfer between surfaces, and tile fill.
//
// A Surface either owns its storage or aliases memory bound by the caller,
// typically a region of a display's video buffer. Aliased memory is never
// reallocated or released by the Surface.
//
// Nothing in this package is safe for concurrent use. Two surfaces aliasing
// the same memory must be sequenced by the caller.
package bitmap

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"

	"github.com/rook-computer/bitmapfb/internal/rect"
)

// Size limits, matching the largest supported display mode.
const (
	MinDimension = 2
	MaxWidth     = 800
	MaxHeight    = 600
)

var (
	ErrNilSurface        = errors.New("bitmap: nil surface")
	ErrNoStorage         = errors.New("bitmap: surface has no storage")
	ErrInvalidDimensions = errors.New("bitmap: invalid dimensions")
	ErrStorageTooSmall   = errors.New("bitmap: bound storage too small")
	ErrOutOfBounds       = errors.New("bitmap: coordinate out of bounds")
	ErrInvalidArgument   = errors.New("bitmap: invalid argument")
	ErrTileOutOfBounds   = errors.New("bitmap: tile not within source surface")
	ErrFillOverflow      = errors.New("bitmap: flood fill exceeded its work limit")
)

// Surface is a rectangular buffer of palette indices.
//
// Pixel (x, y) lives at Memory()[Base() + Width()*y + x]. Every primitive
// uses that one expression, so surfaces of different widths can exchange rows
// byte for byte.
type Surface struct {
	width  int
	height int
	owned  bool
	mem    []byte
	base   int

	penX  int
	penY  int
	color uint8
	font  font.Face
}

func validDimensions(width, height int) bool {
	return width >= MinDimension && width <= MaxWidth && height >= MinDimension && height <= MaxHeight
}

// New creates a surface with privately owned, zeroed storage.
func New(width, height int) (*Surface, error) {
	if !validDimensions(width, height) {
		logger().Errorf("bitmap", "illegal width (%d) and/or height (%d)", width, height)
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Surface{
		width:  width,
		height: height,
		owned:  true,
		mem:    make([]byte, width*height),
	}, nil
}

// NewAliased creates a surface without storage. Bind attaches the memory it
// draws into; until then every storage operation fails with ErrNoStorage.
func NewAliased(width, height int) (*Surface, error) {
	if !validDimensions(width, height) {
		logger().Errorf("bitmap", "illegal width (%d) and/or height (%d)", width, height)
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Surface{width: width, height: height}, nil
}

// Bind points an aliased surface at mem, with pixel (0, 0) at mem[base].
// mem must hold the whole surface from base on.
func (s *Surface) Bind(mem []byte, base int) error {
	if s == nil {
		return ErrNilSurface
	}
	if s.owned {
		return fmt.Errorf("%w: surface owns its storage", ErrInvalidArgument)
	}
	if base < 0 || base+s.width*s.height > len(mem) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrStorageTooSmall, s.width*s.height, base, len(mem))
	}
	s.mem = mem
	s.base = base
	return nil
}

// Resize changes the surface dimensions. Owned storage is replaced by a new
// zeroed buffer only when the pixel count grows; a smaller size keeps the old
// buffer and leaves its tail unused. Aliased storage is never touched: the
// bound memory must already be large enough for the new size.
func (s *Surface) Resize(width, height int) error {
	if s == nil {
		return ErrNilSurface
	}
	if !validDimensions(width, height) {
		logger().Errorf("bitmap", "resize: illegal width (%d) and/or height (%d)", width, height)
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	oldSize := s.width * s.height
	newSize := width * height

	if s.owned {
		if s.mem == nil {
			return ErrNoStorage
		}
		if newSize > oldSize {
			s.mem = make([]byte, newSize)
			s.base = 0
		}
	} else if s.mem != nil && s.base+newSize > len(s.mem) {
		return fmt.Errorf("%w: %dx%d at offset %d", ErrStorageTooSmall, width, height, s.base)
	}

	s.width = width
	s.height = height
	return nil
}

// Destroy releases owned storage and drops the font and memory references.
// Aliased memory and the font themselves are left alone; their lifetimes
// belong to whoever supplied them.
func (s *Surface) Destroy() error {
	if s == nil {
		logger().Errorf("bitmap", "destroy: passed surface was nil")
		return ErrNilSurface
	}
	s.font = nil
	s.mem = nil
	s.base = 0
	return nil
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Owned reports whether the surface allocated its own storage.
func (s *Surface) Owned() bool { return s.owned }

// Bounds returns the surface rectangle in its own coordinates.
func (s *Surface) Bounds() rect.Rect { return rect.FromSize(0, 0, s.width, s.height) }

// Memory returns the backing memory, which for an aliased surface may extend
// beyond the surface itself.
func (s *Surface) Memory() []byte { return s.mem }

// Base returns the offset of pixel (0, 0) within Memory.
func (s *Surface) Base() int { return s.base }

// Pix returns the surface's own pixels, width*height bytes in row order.
func (s *Surface) Pix() []byte {
	if s == nil || s.mem == nil {
		return nil
	}
	return s.mem[s.base : s.base+s.width*s.height]
}

func (s *Surface) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// addr is the unchecked address of (x, y) within mem.
func (s *Surface) addr(x, y int) int {
	return s.base + s.width*y + x
}

// Offset returns the index of (x, y) within Memory.
func (s *Surface) Offset(x, y int) (int, error) {
	if s == nil {
		return 0, ErrNilSurface
	}
	if s.mem == nil {
		return 0, ErrNoStorage
	}
	if !s.inBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	return s.addr(x, y), nil
}

// SetPixel writes color index c at (x, y). Out-of-bounds writes change
// nothing and return ErrOutOfBounds.
func (s *Surface) SetPixel(x, y int, c uint8) error {
	if s == nil {
		return ErrNilSurface
	}
	if !s.inBounds(x, y) {
		return ErrOutOfBounds
	}
	if s.mem == nil {
		return ErrNoStorage
	}
	s.mem[s.addr(x, y)] = c
	return nil
}

// GetPixel returns the color index at (x, y). On error the index is 0.
func (s *Surface) GetPixel(x, y int) (uint8, error) {
	if s == nil {
		return 0, ErrNilSurface
	}
	if !s.inBounds(x, y) {
		return 0, ErrOutOfBounds
	}
	if s.mem == nil {
		return 0, ErrNoStorage
	}
	return s.mem[s.addr(x, y)], nil
}

// Clear sets every pixel of the surface to c.
func (s *Surface) Clear(c uint8) error {
	if s == nil {
		logger().Errorf("bitmap", "clear: passed surface was nil")
		return ErrNilSurface
	}
	if s.mem == nil {
		return ErrNoStorage
	}
	fillBytes(s.Pix(), c)
	return nil
}

// fillBytes sets every byte of b to c by doubling copies.
func fillBytes(b []byte, c uint8) {
	if len(b) == 0 {
		return
	}
	b[0] = c
	for n := 1; n < len(b); n *= 2 {
		copy(b[n:], b[:n])
	}
}

// Pen

// SetColor sets the pen color used by LineTo and DrawString.
func (s *Surface) SetColor(c uint8) { s.color = c }

func (s *Surface) Color() uint8 { return s.color }

// MoveTo sets the pen position. Negative coordinates are allowed so text and
// lines can start partly off the left or top edge; positions at or past the
// right or bottom edge are rejected.
func (s *Surface) MoveTo(x, y int) error {
	if s == nil {
		return ErrNilSurface
	}
	if x >= s.width || y >= s.height {
		logger().Errorf("bitmap", "invalid pen position (%d, %d)", x, y)
		return fmt.Errorf("%w: pen (%d, %d)", ErrOutOfBounds, x, y)
	}
	s.penX, s.penY = x, y
	return nil
}

// Pen returns the pen position.
func (s *Surface) Pen() (x, y int) { return s.penX, s.penY }

// LineTo draws from the pen to (x, y) in the pen color and leaves the pen at
// (x, y).
func (s *Surface) LineTo(x, y int) error {
	if s == nil {
		return ErrNilSurface
	}
	if err := s.DrawLine(s.penX, s.penY, x, y, s.color); err != nil {
		return err
	}
	s.penX, s.penY = x, y
	return nil
}

// SetFont associates f with the surface for DrawString. The surface does not
// own f.
func (s *Surface) SetFont(f font.Face) error {
	if s == nil {
		return ErrNilSurface
	}
	if f == nil {
		logger().Errorf("bitmap", "passed font was nil")
		return fmt.Errorf("%w: nil font", ErrInvalidArgument)
	}
	s.font = f
	return nil
}

func (s *Surface) Font() font.Face { return s.font }
