package display

import (
	"context"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/bitmapfb/internal/bitmap"
	"github.com/rook-computer/bitmapfb/internal/rect"
)

// Presenter shows surface contents on an output device.
type Presenter interface {
	Start(ctx context.Context) error
	Stop() error
	// Present pushes the damaged rects of s, in surface coordinates.
	Present(s *bitmap.Surface, damage []rect.Rect) error
}

type NoopPresenter struct{}

func (NoopPresenter) Start(ctx context.Context) error                     { return nil }
func (NoopPresenter) Stop() error                                         { return nil }
func (NoopPresenter) Present(s *bitmap.Surface, damage []rect.Rect) error { return nil }

// ImagePresenter presents into an in-memory image, scaled to its bounds. The
// simulator and tests use it in place of a framebuffer.
type ImagePresenter struct {
	Image   xdraw.Image
	Palette Palette
}

func NewImagePresenter(width, height int) *ImagePresenter {
	return &ImagePresenter{
		Image:   image.NewRGBA(image.Rect(0, 0, width, height)),
		Palette: DefaultPalette(),
	}
}

func (p *ImagePresenter) Start(ctx context.Context) error { return nil }
func (p *ImagePresenter) Stop() error                     { return nil }

func (p *ImagePresenter) Present(s *bitmap.Surface, damage []rect.Rect) error {
	if s == nil {
		return bitmap.ErrNilSurface
	}
	presentDamage(p.Image, Paletted(s, &p.Palette), damage)
	return nil
}

// presentDamage scales each damaged rect of src onto the matching region of
// dst with nearest-neighbor sampling. Rects that shrink to nothing on a
// smaller device are skipped.
func presentDamage(dst xdraw.Image, src *image.Paletted, damage []rect.Rect) {
	db := dst.Bounds()
	sw, sh := src.Rect.Dx(), src.Rect.Dy()
	if sw == 0 || sh == 0 {
		return
	}
	for _, r := range damage {
		r, ok := rect.Intersection(r, rect.FromImage(src.Rect))
		if !ok {
			continue
		}
		target := image.Rect(
			db.Min.X+r.MinX*db.Dx()/sw,
			db.Min.Y+r.MinY*db.Dy()/sh,
			db.Min.X+(r.MaxX+1)*db.Dx()/sw,
			db.Min.Y+(r.MaxY+1)*db.Dy()/sh,
		)
		if target.Empty() {
			continue
		}
		xdraw.NearestNeighbor.Scale(dst, target, src, r.Image(), xdraw.Src, nil)
	}
}
