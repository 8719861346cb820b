package rect

// Normalize ensures Min <= Max on both axes.
func Normalize(r Rect) Rect {
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}
	return r
}

// Inset shrinks r by padding on all sides. A padding that would invert the
// rectangle collapses it to its center line instead.
func Inset(r Rect, padding int) Rect {
	if padding <= 0 {
		return r
	}
	out := Rect{MinX: r.MinX + padding, MinY: r.MinY + padding, MaxX: r.MaxX - padding, MaxY: r.MaxY - padding}
	if out.MinX > out.MaxX {
		mid := r.MinX + (r.MaxX-r.MinX)/2
		out.MinX, out.MaxX = mid, mid
	}
	if out.MinY > out.MaxY {
		mid := r.MinY + (r.MaxY-r.MinY)/2
		out.MinY, out.MaxY = mid, mid
	}
	return out
}

// Center positions hero within frame and returns the placed rect, which has
// hero's size. Horizontally hero is centered. Vertically it is centered, or
// with upperQuarter set its top sits a quarter of the way down the frame when
// it fits there (used for about boxes and dialogs).
func Center(frame, hero Rect, upperQuarter bool) Rect {
	heroW := hero.MaxX - hero.MinX
	heroH := hero.MaxY - hero.MinY
	frameH := frame.MaxY - frame.MinY

	var out Rect
	out.MinX = (frame.MaxX-frame.MinX-heroW)/2 + frame.MinX
	out.MaxX = out.MinX + heroW

	placed := false
	if upperQuarter {
		top := frame.MinY + frameH/4
		if top+heroH <= frame.MaxY {
			out.MinY = top
			placed = true
		}
	}
	if !placed {
		out.MinY = (frameH-heroH)/2 + frame.MinY
	}
	out.MaxY = out.MinY + heroH
	return out
}
