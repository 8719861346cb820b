//go:build linux && cgo

package display

import (
	"context"
	"errors"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"

	"github.com/rook-computer/bitmapfb/internal/bitmap"
	"github.com/rook-computer/bitmapfb/internal/logging"
	"github.com/rook-computer/bitmapfb/internal/rect"
)

// DefaultDevice is the framebuffer opened when FBPresenter.Device is empty.
const DefaultDevice = "/dev/fb0"

// FBPresenter presents surfaces on a Linux framebuffer device. The surface is
// scaled to the device resolution, so a small surface fills the screen.
type FBPresenter struct {
	Device  string
	Palette Palette
	Logger  logging.Logger

	dev     *fb.Device
	running atomic.Bool
	frames  uint64
}

func NewFBPresenter(device string) *FBPresenter {
	return &FBPresenter{Device: device, Palette: DefaultPalette(), Logger: logging.Noop{}}
}

func (p *FBPresenter) log() logging.Logger { return logging.OrNoop(p.Logger) }

func (p *FBPresenter) Start(ctx context.Context) error {
	path := p.Device
	if path == "" {
		path = DefaultDevice
	}
	dev, err := fb.Open(path)
	if err != nil {
		return err
	}
	p.dev = dev
	bounds := dev.Bounds()
	p.log().Infof("fb", "framebuffer %s open, bounds=%dx%d", path, bounds.Dx(), bounds.Dy())

	p.running.Store(true)
	return nil
}

func (p *FBPresenter) Stop() error {
	p.running.Store(false)
	if p.dev != nil {
		p.dev.Close()
		p.dev = nil
		p.log().Infof("fb", "framebuffer closed after %d frames", p.frames)
	}
	return nil
}

func (p *FBPresenter) Present(s *bitmap.Surface, damage []rect.Rect) error {
	if !p.running.Load() || p.dev == nil {
		return errors.New("fb: presenter not started")
	}
	if s == nil {
		return bitmap.ErrNilSurface
	}
	presentDamage(p.dev, Paletted(s, &p.Palette), damage)
	p.frames++
	if p.frames%300 == 0 {
		p.log().Infof("fb", "presented %d frames", p.frames)
	}
	return nil
}
