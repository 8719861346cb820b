package bitmap

import "fmt"

// DefaultFillLimit bounds the pending work of the flood fills. Each pending
// entry is one pixel whose neighbors have not been examined yet.
const DefaultFillLimit = 1 << 16

// FloodFill recolors the 4-connected region of pixels sharing the color at
// (x, y) to c, using DefaultFillLimit.
func (s *Surface) FloodFill(x, y int, c uint8) error {
	return s.FloodFillLimit(x, y, c, DefaultFillLimit)
}

// FloodFillLimit is FloodFill with an explicit bound on pending work. The fill
// keeps an explicit worklist instead of recursing; when the worklist would
// exceed limit the fill stops with ErrFillOverflow, leaving the region
// partially recolored. Seeds off the surface are rejected with ErrOutOfBounds.
func (s *Surface) FloodFillLimit(x, y int, c uint8, limit int) error {
	if err := s.checkStart("flood fill", x, y); err != nil {
		return err
	}
	target := s.mem[s.addr(x, y)]
	if target == c {
		return nil
	}
	return s.fill(x, y, c, limit, func(p uint8) bool { return p == target })
}

// FloodFillBoundary recolors every pixel 4-connected to (x, y) that is not
// already c, stopping only at pixels of color c. Whatever lies inside the
// boundary is painted over, patterns included. It uses DefaultFillLimit.
func (s *Surface) FloodFillBoundary(x, y int, c uint8) error {
	return s.FloodFillBoundaryLimit(x, y, c, DefaultFillLimit)
}

// FloodFillBoundaryLimit is FloodFillBoundary with an explicit bound on
// pending work, failing with ErrFillOverflow like FloodFillLimit.
func (s *Surface) FloodFillBoundaryLimit(x, y int, c uint8, limit int) error {
	if err := s.checkStart("boundary fill", x, y); err != nil {
		return err
	}
	return s.fill(x, y, c, limit, func(p uint8) bool { return p != c })
}

// fill recolors the 4-connected region around (x, y) whose pixels satisfy
// match. Pixels are recolored when queued, so match must reject c.
func (s *Surface) fill(x, y int, c uint8, limit int, match func(uint8) bool) error {
	if limit < 1 {
		return fmt.Errorf("%w: fill limit %d", ErrInvalidArgument, limit)
	}
	if !match(s.mem[s.addr(x, y)]) {
		return nil
	}

	type point struct{ x, y int }
	stack := make([]point, 0, min(limit, 256))

	s.mem[s.addr(x, y)] = c
	stack = append(stack, point{x, y})

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range [4]point{{p.x - 1, p.y}, {p.x + 1, p.y}, {p.x, p.y - 1}, {p.x, p.y + 1}} {
			if !s.inBounds(n.x, n.y) {
				continue
			}
			off := s.addr(n.x, n.y)
			if !match(s.mem[off]) {
				continue
			}
			if len(stack) == limit {
				logger().Errorf("bitmap", "flood fill from (%d, %d) exceeded limit %d", x, y, limit)
				return fmt.Errorf("%w: limit %d", ErrFillOverflow, limit)
			}
			s.mem[off] = c
			stack = append(stack, n)
		}
	}
	return nil
}
