package bitmap

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// glyphThreshold is the mask alpha at or above which a glyph pixel is set.
// Surfaces hold palette indices, so glyph edges are not blended.
const glyphThreshold = 0x8000

func (s *Surface) face() font.Face {
	if s.font != nil {
		return s.font
	}
	return basicfont.Face7x13
}

// MeasureString returns the advance width of text in the surface font.
func (s *Surface) MeasureString(text string) int {
	return font.MeasureString(s.face(), text).Ceil()
}

// DrawString draws text at the pen in the pen color, the pen marking the top
// left of the line, and advances the pen past it. Glyph pixels off the
// surface are dropped. Without a font set the surface uses basicfont's 7x13
// face. It returns the width drawn.
func (s *Surface) DrawString(text string) (int, error) {
	if s == nil {
		return 0, ErrNilSurface
	}
	if s.mem == nil {
		return 0, ErrNoStorage
	}

	face := s.face()
	ascent := face.Metrics().Ascent
	dot := fixed.Point26_6{X: fixed.I(s.penX), Y: fixed.I(s.penY) + ascent}
	start := dot.X

	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			dot.X += face.Kern(prev, r)
		}
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if !ok {
			prev = -1
			continue
		}
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			for x := dr.Min.X; x < dr.Max.X; x++ {
				if !s.inBounds(x, y) {
					continue
				}
				_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				if a >= glyphThreshold {
					s.mem[s.addr(x, y)] = s.color
				}
			}
		}
		dot.X += advance
		prev = r
	}

	width := (dot.X - start).Ceil()
	s.penX += width
	return width, nil
}
