package bitmap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rook-computer/bitmapfb/internal/rect"
)

// numbered returns a surface whose pixel (x, y) holds a value unique to its
// position, modulo 256.
func numbered(t *testing.T, w, h int) *Surface {
	t.Helper()
	s := mustNew(t, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_ = s.SetPixel(x, y, uint8(y*w+x))
		}
	}
	return s
}

func TestBlitBetweenSurfaces(t *testing.T) {
	src := numbered(t, 8, 8)
	dst := mustNew(t, 12, 6)

	ok, err := Blit(src, 2, 1, dst, 5, 2, 4, 3)
	if err != nil || !ok {
		t.Fatalf("Blit = %v, %v; want true, nil", ok, err)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 12; x++ {
			want := uint8(0)
			if x >= 5 && x < 9 && y >= 2 && y < 5 {
				want = pixel(t, src, x-5+2, y-2+1)
			}
			if got := pixel(t, dst, x, y); got != want {
				t.Errorf("dst (%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestBlitSelfIdentity(t *testing.T) {
	s := numbered(t, 10, 10)
	want := bytes.Clone(s.Pix())
	ok, err := Blit(s, 0, 0, s, 0, 0, 10, 10)
	if err != nil || !ok {
		t.Fatalf("Blit = %v, %v; want true, nil", ok, err)
	}
	if !bytes.Equal(s.Pix(), want) {
		t.Errorf("self blit onto itself changed the surface")
	}
}

func TestBlitClipsAtDestinationCorner(t *testing.T) {
	const w, h = 20, 16
	src := mustNew(t, 10, 10)
	_ = src.Clear(9)

	mem := make([]byte, w*h+32)
	dst, _ := NewAliased(w, h)
	if err := dst.Bind(mem, 0); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	ok, err := Blit(src, 0, 0, dst, w-5, h-5, 10, 10)
	if err != nil || !ok {
		t.Fatalf("Blit = %v, %v; want true, nil", ok, err)
	}
	if n := countColor(dst, 9); n != 25 {
		t.Errorf("blit wrote %d pixels, want 25", n)
	}
	for i, b := range mem[w*h:] {
		if b != 0 {
			t.Fatalf("byte %d past the surface = %d, want 0", w*h+i, b)
		}
	}
}

func TestBlitNegativeCoordinates(t *testing.T) {
	tests := []struct {
		name                   string
		sx, sy, dx, dy, bw, bh int
		// first destination pixel written and the source pixel it holds
		firstDst, firstSrc [2]int
		n                  int
	}{
		{"negative source", -2, -3, 0, 0, 5, 5, [2]int{2, 3}, [2]int{0, 0}, 3 * 2},
		{"negative destination", 0, 0, -2, -3, 5, 5, [2]int{0, 0}, [2]int{2, 3}, 3 * 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := numbered(t, 8, 8)
			dst := mustNew(t, 8, 8)
			_ = dst.Clear(0xFF)
			ok, err := Blit(src, tt.sx, tt.sy, dst, tt.dx, tt.dy, tt.bw, tt.bh)
			if err != nil || !ok {
				t.Fatalf("Blit = %v, %v; want true, nil", ok, err)
			}
			got := pixel(t, dst, tt.firstDst[0], tt.firstDst[1])
			want := pixel(t, src, tt.firstSrc[0], tt.firstSrc[1])
			if got != want {
				t.Errorf("dst %v = %d, want src %v = %d", tt.firstDst, got, tt.firstSrc, want)
			}
			if n := len(dst.Pix()) - countColor(dst, 0xFF); n != tt.n {
				t.Errorf("blit wrote %d pixels, want %d", n, tt.n)
			}
		})
	}
}

func TestBlitNothingVisible(t *testing.T) {
	src := mustNew(t, 8, 8)
	dst := mustNew(t, 8, 8)
	_ = src.Clear(1)

	for _, c := range [][4]int{{0, 0, 8, 0}, {0, 0, -10, 3}, {8, 0, 0, 0}, {0, 0, 0, 20}} {
		ok, err := Blit(src, c[0], c[1], dst, c[2], c[3], 4, 4)
		if err != nil || ok {
			t.Errorf("Blit(%v) = %v, %v; want false, nil", c, ok, err)
		}
	}
	if n := countColor(dst, 1); n != 0 {
		t.Errorf("no-op blits wrote %d pixels", n)
	}
	if _, err := Blit(src, 0, 0, dst, 0, 0, 0, 4); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero width Blit err = %v, want ErrInvalidArgument", err)
	}
}

func TestBlitOverlappingSelf(t *testing.T) {
	tests := []struct {
		name           string
		sx, sy, dx, dy int
	}{
		{"down", 0, 0, 0, 3},
		{"up", 0, 3, 0, 0},
		{"right", 0, 0, 2, 0},
		{"left", 2, 0, 0, 0},
		{"down right", 1, 1, 3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := numbered(t, 10, 10)
			ref := numbered(t, 10, 10)
			if _, err := Blit(s, tt.sx, tt.sy, s, tt.dx, tt.dy, 6, 6); err != nil {
				t.Fatalf("Blit: %v", err)
			}
			for y := 0; y < 6; y++ {
				for x := 0; x < 6; x++ {
					got := pixel(t, s, tt.dx+x, tt.dy+y)
					want := pixel(t, ref, tt.sx+x, tt.sy+y)
					if got != want {
						t.Fatalf("(%d, %d) = %d, want %d", tt.dx+x, tt.dy+y, got, want)
					}
				}
			}
		})
	}
}

func TestBlitSharedMemory(t *testing.T) {
	mem := make([]byte, 200)
	for i := range mem {
		mem[i] = byte(i)
	}
	want := bytes.Clone(mem)

	upper, _ := NewAliased(10, 10)
	lower, _ := NewAliased(10, 10)
	_ = upper.Bind(mem, 0)
	_ = lower.Bind(mem, 30)

	// lower's row 0 is upper's row 3, so this shifts rows down by three.
	if _, err := Blit(upper, 0, 0, lower, 0, 0, 10, 5); err != nil {
		t.Fatalf("Blit: %v", err)
	}
	for i := 0; i < 50; i++ {
		if mem[30+i] != want[i] {
			t.Fatalf("mem[%d] = %d, want %d", 30+i, mem[30+i], want[i])
		}
	}
}

func TestBlitRect(t *testing.T) {
	src := numbered(t, 8, 8)
	dst := mustNew(t, 8, 8)
	if _, err := BlitRect(src, rect.New(1, 1, 2, 3), dst, 4, 4); err != nil {
		t.Fatalf("BlitRect: %v", err)
	}
	if got, want := pixel(t, dst, 5, 6), pixel(t, src, 2, 3); got != want {
		t.Errorf("dst (5, 6) = %d, want %d", got, want)
	}
	if pixel(t, dst, 6, 4) != 0 {
		t.Errorf("BlitRect copied past the inclusive rectangle")
	}
}

func TestTileCoversDestination(t *testing.T) {
	src := mustNew(t, 16, 16)
	_ = src.Clear(0xEE)
	// 2x2 checkerboard tile at (4, 6).
	_ = src.SetPixel(4, 6, 1)
	_ = src.SetPixel(5, 6, 2)
	_ = src.SetPixel(4, 7, 2)
	_ = src.SetPixel(5, 7, 1)

	dst := mustNew(t, 13, 9)
	_ = dst.Clear(0xEE)
	if err := Tile(src, 4, 6, dst, 2, 2); err != nil {
		t.Fatalf("Tile: %v", err)
	}
	for y := 0; y < 9; y++ {
		for x := 0; x < 13; x++ {
			want := uint8(1)
			if (x+y)%2 == 1 {
				want = 2
			}
			if got := pixel(t, dst, x, y); got != want {
				t.Fatalf("dst (%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestTileLargerThanDestination(t *testing.T) {
	src := numbered(t, 10, 10)
	dst := mustNew(t, 4, 3)
	if err := Tile(src, 0, 0, dst, 10, 10); err != nil {
		t.Fatalf("Tile: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got, want := pixel(t, dst, x, y), pixel(t, src, x, y); got != want {
				t.Errorf("dst (%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestTileOutOfBounds(t *testing.T) {
	src := mustNew(t, 8, 8)
	dst := mustNew(t, 8, 8)
	for _, c := range [][4]int{{7, 0, 2, 2}, {0, 7, 2, 2}, {-1, 0, 2, 2}, {0, 0, 9, 1}} {
		if err := Tile(src, c[0], c[1], dst, c[2], c[3]); !errors.Is(err, ErrTileOutOfBounds) {
			t.Errorf("Tile(%v) err = %v, want ErrTileOutOfBounds", c, err)
		}
	}
}
