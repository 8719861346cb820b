package web

import (
	"context"
	"errors"

	"github.com/rook-computer/bitmapfb/internal/display"
	"github.com/rook-computer/bitmapfb/internal/state"
)

// FrameSource supplies the latest composed frame.
//
// The concrete implementation is typically *state.Store.
type FrameSource interface {
	Snapshot() state.Frame
}

// APIV1Handlers are actions the API triggers in the render loop.
type APIV1Handlers struct {
	// RedrawFunc schedules a full repaint; POST /api/v1/redraw.
	RedrawFunc func(ctx context.Context) error
}

type APIV1Deps struct {
	Frames  FrameSource
	Palette *display.Palette
}

type emptyFrames struct{}

func (emptyFrames) Snapshot() state.Frame { return state.Frame{} }

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Frames == nil {
		out.Frames = emptyFrames{}
	}
	if out.Palette == nil {
		pal := display.DefaultPalette()
		out.Palette = &pal
	}
	return out
}

var errRedrawNotConfigured = errors.New("redraw not configured")
