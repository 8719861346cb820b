package bitmap

import (
	"fmt"

	"github.com/rook-computer/bitmapfb/internal/rect"
)

// Round box corner radius limits.
const (
	MinCornerRadius = 3
	MaxCornerRadius = 20
)

// Quadrant selects circle quadrants for DrawCircleQuadrants.
type Quadrant uint8

const (
	NE Quadrant = 1 << iota
	SE
	SW
	NW

	AllQuadrants = NE | SE | SW | NW
)

func (s *Surface) checkStart(op string, x, y int) error {
	if s == nil {
		logger().Errorf("bitmap", "%s: passed surface was nil", op)
		return ErrNilSurface
	}
	if s.mem == nil {
		logger().Errorf("bitmap", "%s: surface has no storage", op)
		return ErrNoStorage
	}
	if !s.inBounds(x, y) {
		logger().Errorf("bitmap", "%s: illegal coordinate (%d, %d)", op, x, y)
		return fmt.Errorf("%s: %w: (%d, %d)", op, ErrOutOfBounds, x, y)
	}
	return nil
}

// DrawLine draws from (x1, y1) to (x2, y2) inclusive with Bresenham's
// algorithm. Only the start point is validated; later points that fall off
// the surface are dropped.
func (s *Surface) DrawLine(x1, y1, x2, y2 int, c uint8) error {
	if err := s.checkStart("draw line", x1, y1); err != nil {
		return err
	}

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 >= x2 {
		sx = -1
	}
	if y1 >= y2 {
		sy = -1
	}
	e := -dy / 2
	if dx > dy {
		e = dx / 2
	}

	for {
		_ = s.SetPixel(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return nil
		}
		e2 := e
		if e2 > -dx {
			e -= dy
			x1 += sx
		}
		if e2 < dy {
			e += dx
			y1 += sy
		}
	}
}

// DrawHLine draws n pixels rightwards from (x, y) as a one-row box fill.
func (s *Surface) DrawHLine(x, y, n int, c uint8) error {
	if err := s.checkStart("draw hline", x, y); err != nil {
		return err
	}
	return s.FillBox(x, y, n, 1, c)
}

// DrawVLine draws n pixels downwards from (x, y).
func (s *Surface) DrawVLine(x, y, n int, c uint8) error {
	if err := s.checkStart("draw vline", x, y); err != nil {
		return err
	}
	for dy := 0; dy < n; dy++ {
		_ = s.SetPixel(x, y+dy, c)
	}
	return nil
}

// FillBox fills a width x height box with its top-left corner at (x, y), one
// row fill per row. The box is clipped to the surface; a box entirely off the
// surface, or with no area, fills nothing.
func (s *Surface) FillBox(x, y, width, height int, c uint8) error {
	if s == nil {
		logger().Errorf("bitmap", "fill box: passed surface was nil")
		return ErrNilSurface
	}
	if s.mem == nil {
		return ErrNoStorage
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	r, ok := rect.Intersection(rect.FromSize(x, y, width, height), s.Bounds())
	if !ok {
		return nil
	}

	n := r.Width()
	off := s.addr(r.MinX, r.MinY)
	for row := r.MinY; row <= r.MaxY; row++ {
		fillBytes(s.mem[off:off+n], c)
		off += s.width
	}
	return nil
}

// FillBoxRect fills r.
func (s *Surface) FillBoxRect(r rect.Rect, c uint8) error {
	return s.FillBox(r.MinX, r.MinY, r.Width(), r.Height(), c)
}

// DrawBoxRect outlines r.
func (s *Surface) DrawBoxRect(r rect.Rect, c uint8) error {
	return s.DrawBoxCoords(r.MinX, r.MinY, r.MaxX, r.MaxY, c)
}

// DrawBoxCoords outlines the box with corners (x1, y1) and (x2, y2)
// inclusive. Both corners must be on the surface and in order.
func (s *Surface) DrawBoxCoords(x1, y1, x2, y2 int, c uint8) error {
	if err := s.checkStart("draw box", x1, y1); err != nil {
		return err
	}
	if err := s.checkStart("draw box", x2, y2); err != nil {
		return err
	}
	if x1 > x2 || y1 > y2 {
		logger().Errorf("bitmap", "draw box: illegal coordinates %d to %d, %d to %d", x1, x2, y1, y2)
		return fmt.Errorf("%w: inverted box (%d,%d)-(%d,%d)", ErrInvalidArgument, x1, y1, x2, y2)
	}
	return s.outline(x1, y1, x2-x1+1, y2-y1+1, c)
}

// DrawBox draws a width x height box at (x, y), filled or as an outline. The
// whole box must be on the surface.
func (s *Surface) DrawBox(x, y, width, height int, c uint8, fill bool) error {
	if err := s.checkStart("draw box", x, y); err != nil {
		return err
	}
	if err := s.checkStart("draw box", x+width-1, y+height-1); err != nil {
		return err
	}
	if fill {
		return s.FillBox(x, y, width, height, c)
	}
	return s.outline(x, y, width, height, c)
}

// outline draws four lines; corner pixels are written twice.
func (s *Surface) outline(x, y, width, height int, c uint8) error {
	if err := s.DrawHLine(x, y, width, c); err != nil {
		return err
	}
	if err := s.DrawVLine(x+width-1, y, height, c); err != nil {
		return err
	}
	if err := s.DrawHLine(x, y+height-1, width, c); err != nil {
		return err
	}
	return s.DrawVLine(x, y, height, c)
}

// DrawRoundBox draws a width x height box at (x, y) with corners rounded to
// radius, clamped to [MinCornerRadius, MaxCornerRadius]. The box must fit on
// the surface and be at least 2*radius on each side; at exactly 2*radius the
// straight edges vanish and the corners meet.
//
// The fill paints the corner wedges with a boundary fill, so it covers
// whatever was drawn under the box.
func (s *Surface) DrawRoundBox(x, y, width, height, radius int, c uint8, fill bool) error {
	if err := s.checkStart("draw round box", x, y); err != nil {
		return err
	}
	if err := s.checkStart("draw round box", x+width-1, y+height-1); err != nil {
		return err
	}
	radius = max(MinCornerRadius, min(radius, MaxCornerRadius))
	if width < 2*radius || height < 2*radius {
		logger().Errorf("bitmap", "draw round box: %dx%d too small for radius %d", width, height, radius)
		return fmt.Errorf("%w: %dx%d box with radius %d", ErrInvalidArgument, width, height, radius)
	}

	// Corner arc centers; the straight edges run between them.
	left, top := x+radius, y+radius
	right, bottom := x+width-1-radius, y+height-1-radius
	spanX := right - left + 1
	spanY := bottom - top + 1

	_ = s.DrawCircleQuadrants(left, top, radius, c, NW)
	_ = s.DrawCircleQuadrants(right, top, radius, c, NE)
	_ = s.DrawCircleQuadrants(left, bottom, radius, c, SW)
	_ = s.DrawCircleQuadrants(right, bottom, radius, c, SE)

	if err := s.DrawHLine(left, y, spanX, c); err != nil {
		return err
	}
	if err := s.DrawVLine(x+width-1, top, spanY, c); err != nil {
		return err
	}
	if err := s.DrawHLine(left, y+height-1, spanX, c); err != nil {
		return err
	}
	if err := s.DrawVLine(x, top, spanY, c); err != nil {
		return err
	}

	if !fill {
		return nil
	}

	// Top cap, full-width middle, bottom cap, then the four corner wedges
	// left between the caps and the arcs.
	_ = s.FillBox(left, y+1, spanX, radius-1, c)
	_ = s.FillBox(x+1, top, width-2, spanY, c)
	_ = s.FillBox(left, bottom+1, spanX, radius-1, c)

	seeds := [4][2]int{
		{left - 1, top - 1},
		{right + 1, top - 1},
		{left - 1, bottom + 1},
		{right + 1, bottom + 1},
	}
	for _, p := range seeds {
		if err := s.FloodFillBoundary(p[0], p[1], c); err != nil {
			return err
		}
	}
	return nil
}

// DrawCircle draws a full circle outline centered on (cx, cy).
func (s *Surface) DrawCircle(cx, cy, radius int, c uint8) error {
	if err := s.checkStart("draw circle", cx, cy); err != nil {
		return err
	}
	return s.DrawCircleQuadrants(cx, cy, radius, c, AllQuadrants)
}

// DrawCircleQuadrants draws the selected quadrants of a circle outline with
// the midpoint algorithm. The center is not validated, so arcs of circles
// centered off the surface can be drawn; off-surface points are dropped.
func (s *Surface) DrawCircleQuadrants(cx, cy, radius int, c uint8, q Quadrant) error {
	if s == nil {
		return ErrNilSurface
	}
	if s.mem == nil {
		return ErrNoStorage
	}
	if radius < 0 {
		return fmt.Errorf("%w: radius %d", ErrInvalidArgument, radius)
	}

	ne, se, sw, nw := q&NE != 0, q&SE != 0, q&SW != 0, q&NW != 0
	plot := func(x, y int) { _ = s.SetPixel(x, y, c) }

	if se || sw {
		plot(cx, cy+radius)
	}
	if ne || nw {
		plot(cx, cy-radius)
	}
	if se || ne {
		plot(cx+radius, cy)
	}
	if nw || sw {
		plot(cx-radius, cy)
	}

	f := 1 - radius
	ddFx := 0
	ddFy := -2 * radius
	x, y := 0, radius

	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx + 1

		if se {
			plot(cx+x, cy+y)
			plot(cx+y, cy+x)
		}
		if sw {
			plot(cx-x, cy+y)
			plot(cx-y, cy+x)
		}
		if ne {
			plot(cx+x, cy-y)
			plot(cx+y, cy-x)
		}
		if nw {
			plot(cx-x, cy-y)
			plot(cx-y, cy-x)
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
