// Package rect implements the rectangle algebra used for clipping and damage
// tracking. Rectangles are inclusive on both ends: MaxX and MaxY are the last
// covered coordinate, not one past it.
package rect

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned rectangle with inclusive bounds.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// New returns the rectangle spanning the two corners as given. It does not
// normalize; see Normalize.
func New(minX, minY, maxX, maxY int) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// FromSize returns the rectangle with top-left corner (x, y) covering
// width x height cells.
func FromSize(x, y, width, height int) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + width - 1, MaxY: y + height - 1}
}

// FromImage converts a half-open image.Rectangle.
func FromImage(r image.Rectangle) Rect {
	return Rect{MinX: r.Min.X, MinY: r.Min.Y, MaxX: r.Max.X - 1, MaxY: r.Max.Y - 1}
}

// Image converts r to a half-open image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.MinX, r.MinY, r.MaxX+1, r.MaxY+1)
}

func (r Rect) Width() int  { return r.MaxX - r.MinX + 1 }
func (r Rect) Height() int { return r.MaxY - r.MinY + 1 }

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d : %d,%d)", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// Contains reports whether inner lies entirely within outer.
func Contains(inner, outer Rect) bool {
	return inner.MinX >= outer.MinX &&
		inner.MaxX <= outer.MaxX &&
		inner.MinY >= outer.MinY &&
		inner.MaxY <= outer.MaxY
}

// Intersects reports whether a and b share at least one cell.
func Intersects(a, b Rect) bool {
	return !(a.MinX > b.MaxX || a.MaxX < b.MinX || a.MinY > b.MaxY || a.MaxY < b.MinY)
}

// PointIn reports whether (x, y) lies within r.
func PointIn(x, y int, r Rect) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Intersection returns the overlap of a and b. ok is false, and the returned
// rect meaningless, when they do not intersect.
func Intersection(a, b Rect) (Rect, bool) {
	if !Intersects(a, b) {
		return Rect{}, false
	}
	return Rect{
		MinX: max(a.MinX, b.MinX),
		MinY: max(a.MinY, b.MinY),
		MaxX: min(a.MaxX, b.MaxX),
		MaxY: min(a.MaxY, b.MaxY),
	}, true
}

// MaxDifference is the most rectangles Difference can return.
const MaxDifference = 4

// Difference returns the parts of b that a does not cover, as up to four
// bands. a is the foreground rect (a window after a move or resize), b the
// background one (the window before).
//
//   - b within a: no bands.
//   - a and b disjoint: a single rect equal to a.
//   - otherwise: a top and a bottom band spanning a's X range, then a left
//     and a right band spanning b's full Y range, each only when b extends
//     past a on that side.
//
// The bands never touch a and together cover all of b outside a. They are not
// an exact subtraction: the top and bottom bands take a's X range, so when a
// is wider than b on either side they reach past b's left or right edge.
// Repainting those extra cells is harmless for redraw.
func Difference(a, b Rect) []Rect {
	if Contains(b, a) {
		return nil
	}
	if !Intersects(a, b) {
		return []Rect{a}
	}

	out := make([]Rect, 0, MaxDifference)
	if b.MinY < a.MinY {
		out = append(out, Rect{MinX: a.MinX, MinY: b.MinY, MaxX: a.MaxX, MaxY: a.MinY - 1})
	}
	if b.MaxY > a.MaxY {
		out = append(out, Rect{MinX: a.MinX, MinY: a.MaxY + 1, MaxX: a.MaxX, MaxY: b.MaxY})
	}
	if b.MinX < a.MinX {
		out = append(out, Rect{MinX: b.MinX, MinY: b.MinY, MaxX: a.MinX - 1, MaxY: b.MaxY})
	}
	if b.MaxX > a.MaxX {
		out = append(out, Rect{MinX: a.MaxX + 1, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY})
	}
	return out
}
