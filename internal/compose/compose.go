// Package compose stacks bitmap surfaces as layers over a backdrop and
// repaints only the screen regions that changed since the last redraw.
package compose

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rook-computer/bitmapfb/internal/bitmap"
	"github.com/rook-computer/bitmapfb/internal/logging"
	"github.com/rook-computer/bitmapfb/internal/rect"
)

// MaxDamageRects is how many damage rects are tracked before the compositor
// gives up and repaints the whole screen.
const MaxDamageRects = 16

var ErrUnknownLayer = errors.New("compose: layer not in stack")

// Layer is a surface placed on the screen at a global position.
type Layer struct {
	Name    string
	Surface *bitmap.Surface

	x, y int
}

// Bounds returns the layer rectangle in screen coordinates.
func (l *Layer) Bounds() rect.Rect {
	return rect.FromSize(l.x, l.y, l.Surface.Width(), l.Surface.Height())
}

// Position returns the global position of the layer's top-left pixel.
func (l *Layer) Position() (x, y int) { return l.x, l.y }

// Compositor owns the layer stack for one screen surface. It is not safe for
// concurrent use.
type Compositor struct {
	Screen   *bitmap.Surface
	Backdrop *bitmap.Surface
	// Background fills damage the backdrop does not cover.
	Background uint8
	Logger     logging.Logger

	layers []*Layer
	damage []rect.Rect
	full   bool
}

// New returns a compositor for screen. backdrop may be nil, in which case the
// screen shows Background behind the layers. The first Redraw paints
// everything.
func New(screen, backdrop *bitmap.Surface) *Compositor {
	return &Compositor{Screen: screen, Backdrop: backdrop, Logger: logging.Noop{}, full: true}
}

func (c *Compositor) log() logging.Logger { return logging.OrNoop(c.Logger) }

// Layers returns the stack back to front.
func (c *Compositor) Layers() []*Layer { return slices.Clone(c.layers) }

func (c *Compositor) index(l *Layer) int {
	return slices.Index(c.layers, l)
}

// Add puts l on top of the stack at (x, y).
func (c *Compositor) Add(l *Layer, x, y int) error {
	if l == nil || l.Surface == nil {
		return fmt.Errorf("compose: add: %w", bitmap.ErrNilSurface)
	}
	if c.index(l) >= 0 {
		return fmt.Errorf("compose: add %q: already in stack", l.Name)
	}
	l.x, l.y = x, y
	c.layers = append(c.layers, l)
	c.damageRect(l.Bounds())
	c.log().Infof("compose", "added layer %q at %v", l.Name, l.Bounds())
	return nil
}

// Remove takes l off the stack and damages the area it covered.
func (c *Compositor) Remove(l *Layer) error {
	i := c.index(l)
	if i < 0 {
		return ErrUnknownLayer
	}
	c.layers = slices.Delete(c.layers, i, i+1)
	c.damageRect(l.Bounds())
	return nil
}

// Raise moves l to the top of the stack.
func (c *Compositor) Raise(l *Layer) error {
	i := c.index(l)
	if i < 0 {
		return ErrUnknownLayer
	}
	if i == len(c.layers)-1 {
		return nil
	}
	c.layers = append(slices.Delete(c.layers, i, i+1), l)
	c.damageRect(l.Bounds())
	return nil
}

// Move places l at (x, y).
func (c *Compositor) Move(l *Layer, x, y int) error {
	if c.index(l) < 0 {
		return ErrUnknownLayer
	}
	old := l.Bounds()
	l.x, l.y = x, y
	c.exposed(old, l.Bounds())
	return nil
}

// Resize changes the size of l's surface. Layer contents are not preserved
// when the surface has to grow its storage.
func (c *Compositor) Resize(l *Layer, width, height int) error {
	if c.index(l) < 0 {
		return ErrUnknownLayer
	}
	old := l.Bounds()
	if err := l.Surface.Resize(width, height); err != nil {
		return fmt.Errorf("compose: resize %q: %w", l.Name, err)
	}
	c.exposed(old, l.Bounds())
	return nil
}

// exposed damages the screen after a layer went from old to cur: the new
// rect, plus whatever part of the old rect it no longer covers.
func (c *Compositor) exposed(old, cur rect.Rect) {
	if old == cur {
		return
	}
	if rect.Intersects(old, cur) {
		for _, band := range rect.Difference(cur, old) {
			c.damageRect(band)
		}
	} else {
		c.damageRect(old)
	}
	c.damageRect(cur)
}

// Invalidate marks local, in l's own coordinates, for repaint. Corners may be
// given in either order.
func (c *Compositor) Invalidate(l *Layer, local rect.Rect) error {
	if c.index(l) < 0 {
		return ErrUnknownLayer
	}
	c.damageRect(rect.Normalize(local).Translate(l.x, l.y))
	return nil
}

// InvalidateAll schedules a full repaint.
func (c *Compositor) InvalidateAll() {
	c.full = true
	c.damage = c.damage[:0]
}

// Damage returns the pending damage in screen coordinates.
func (c *Compositor) Damage() []rect.Rect {
	if c.full {
		return []rect.Rect{c.Screen.Bounds()}
	}
	return slices.Clone(c.damage)
}

func (c *Compositor) damageRect(r rect.Rect) {
	if c.full {
		return
	}
	r, ok := rect.Intersection(r, c.Screen.Bounds())
	if !ok {
		return
	}
	for _, d := range c.damage {
		if rect.Contains(r, d) {
			return
		}
	}
	c.damage = slices.DeleteFunc(c.damage, func(d rect.Rect) bool {
		return rect.Contains(d, r)
	})
	if len(c.damage) == MaxDamageRects {
		c.log().Infof("compose", "more than %d damage rects, repainting everything", MaxDamageRects)
		c.InvalidateAll()
		return
	}
	c.damage = append(c.damage, r)
}

// Redraw repaints all pending damage onto the screen and returns the rects
// painted, which a presenter can push to the display. Damage is cleared
// even when a blit fails.
func (c *Compositor) Redraw() ([]rect.Rect, error) {
	painted := c.Damage()
	c.damage = c.damage[:0]
	c.full = false

	var errs []error
	for _, r := range painted {
		if err := c.paint(r); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		c.log().Errorf("compose", "redraw: %v", err)
		return painted, err
	}
	return painted, nil
}

// paint redraws r, already clipped to the screen, backdrop first and then
// every layer back to front.
func (c *Compositor) paint(r rect.Rect) error {
	if c.Backdrop != nil {
		if bd, ok := rect.Intersection(r, c.Backdrop.Bounds()); !ok || bd != r {
			if err := c.Screen.FillBoxRect(r, c.Background); err != nil {
				return err
			}
		}
		if _, err := bitmap.BlitRect(c.Backdrop, r, c.Screen, r.MinX, r.MinY); err != nil {
			return err
		}
	} else if err := c.Screen.FillBoxRect(r, c.Background); err != nil {
		return err
	}

	for _, l := range c.layers {
		part, ok := rect.Intersection(r, l.Bounds())
		if !ok {
			continue
		}
		local := part.Translate(-l.x, -l.y)
		if _, err := bitmap.BlitRect(l.Surface, local, c.Screen, part.MinX, part.MinY); err != nil {
			return fmt.Errorf("compose: layer %q: %w", l.Name, err)
		}
	}
	return nil
}

// LayerAt returns the topmost layer containing the screen point (x, y), or
// nil.
func (c *Compositor) LayerAt(x, y int) *Layer {
	for i := len(c.layers) - 1; i >= 0; i-- {
		if rect.PointIn(x, y, c.layers[i].Bounds()) {
			return c.layers[i]
		}
	}
	return nil
}
