//go:build !linux || !cgo

package display

import (
	"context"
	"errors"

	"github.com/rook-computer/bitmapfb/internal/bitmap"
	"github.com/rook-computer/bitmapfb/internal/logging"
	"github.com/rook-computer/bitmapfb/internal/rect"
)

const DefaultDevice = "/dev/fb0"

var errNoFramebuffer = errors.New("fb: framebuffer devices are only supported on linux")

// FBPresenter is unavailable off Linux; Start always fails.
type FBPresenter struct {
	Device  string
	Palette Palette
	Logger  logging.Logger
}

func NewFBPresenter(device string) *FBPresenter {
	return &FBPresenter{Device: device, Palette: DefaultPalette(), Logger: logging.Noop{}}
}

func (p *FBPresenter) Start(ctx context.Context) error                     { return errNoFramebuffer }
func (p *FBPresenter) Stop() error                                         { return nil }
func (p *FBPresenter) Present(s *bitmap.Surface, damage []rect.Rect) error { return errNoFramebuffer }
