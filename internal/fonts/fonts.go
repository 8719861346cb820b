// Package fonts supplies font faces for surface text.
package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/rook-computer/bitmapfb/internal/logging"
)

const (
	DefaultSize = 12
	dpi         = 72
)

// Load returns Go Regular at size points. It tries the freetype rasterizer,
// then x/image's OpenType one, and finally falls back to basicfont's fixed
// 7x13 face, so the returned face is never nil. The error reports why the
// fallback was needed.
func Load(size float64, l logging.Logger) (font.Face, error) {
	l = logging.OrNoop(l)
	if size <= 0 {
		size = DefaultSize
	}

	tt, terr := truetype.Parse(goregular.TTF)
	if terr == nil {
		l.Infof("font", "loaded truetype Go Regular at %gpt", size)
		return truetype.NewFace(tt, &truetype.Options{Size: size, DPI: dpi, Hinting: font.HintingFull}), nil
	}
	l.Errorf("font", "truetype parse failed: %v", terr)

	otf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		l.Errorf("font", "font parse failed, using basicfont: %v", err)
		return basicfont.Face7x13, fmt.Errorf("fonts: parse: %w", err)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{Size: size, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		l.Errorf("font", "font face create failed, using basicfont: %v", err)
		return basicfont.Face7x13, fmt.Errorf("fonts: face: %w", err)
	}
	l.Infof("font", "loaded OpenType Go Regular at %gpt", size)
	return face, nil
}

// Default returns the fixed 7x13 face surfaces use when no font is set.
func Default() font.Face { return basicfont.Face7x13 }
