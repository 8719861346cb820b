package bitmap

import (
	"bytes"
	"errors"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func mustNew(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return s
}

func TestNewDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		ok   bool
	}{
		{"smallest", MinDimension, MinDimension, true},
		{"largest", MaxWidth, MaxHeight, true},
		{"too narrow", 1, 10, false},
		{"too short", 10, 1, false},
		{"too wide", MaxWidth + 1, 10, false},
		{"too tall", 10, MaxHeight + 1, false},
		{"negative", -4, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.w, tt.h)
			if tt.ok {
				if err != nil {
					t.Fatalf("New: %v", err)
				}
				if len(s.Pix()) != tt.w*tt.h {
					t.Errorf("len(Pix) = %d, want %d", len(s.Pix()), tt.w*tt.h)
				}
				if !s.Owned() {
					t.Errorf("Owned() = false, want true")
				}
				return
			}
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("New err = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestPixelRoundTrip(t *testing.T) {
	s := mustNew(t, 16, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			if err := s.SetPixel(x, y, uint8(x*8+y)); err != nil {
				t.Fatalf("SetPixel(%d, %d): %v", x, y, err)
			}
		}
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			got, err := s.GetPixel(x, y)
			if err != nil {
				t.Fatalf("GetPixel(%d, %d): %v", x, y, err)
			}
			if want := uint8(x*8 + y); got != want {
				t.Errorf("GetPixel(%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestOutOfBoundsDoesNotMutate(t *testing.T) {
	s := mustNew(t, 10, 10)
	_ = s.Clear(3)
	before := bytes.Clone(s.Pix())

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}, {10, 10}, {-5, -5}} {
		if err := s.SetPixel(p[0], p[1], 9); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("SetPixel(%d, %d) err = %v, want ErrOutOfBounds", p[0], p[1], err)
		}
		if _, err := s.GetPixel(p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("GetPixel(%d, %d) err = %v, want ErrOutOfBounds", p[0], p[1], err)
		}
		if _, err := s.Offset(p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Offset(%d, %d) err = %v, want ErrOutOfBounds", p[0], p[1], err)
		}
	}
	if !bytes.Equal(before, s.Pix()) {
		t.Errorf("out of bounds writes changed the surface")
	}
}

func TestNilSurface(t *testing.T) {
	var s *Surface
	if err := s.SetPixel(0, 0, 1); !errors.Is(err, ErrNilSurface) {
		t.Errorf("SetPixel err = %v, want ErrNilSurface", err)
	}
	if err := s.Clear(0); !errors.Is(err, ErrNilSurface) {
		t.Errorf("Clear err = %v, want ErrNilSurface", err)
	}
	if err := s.Destroy(); !errors.Is(err, ErrNilSurface) {
		t.Errorf("Destroy err = %v, want ErrNilSurface", err)
	}
	if _, err := Blit(s, 0, 0, s, 0, 0, 1, 1); !errors.Is(err, ErrNilSurface) {
		t.Errorf("Blit err = %v, want ErrNilSurface", err)
	}
}

func TestAliasedAddressing(t *testing.T) {
	mem := make([]byte, 100)
	s, err := NewAliased(4, 3)
	if err != nil {
		t.Fatalf("NewAliased: %v", err)
	}
	if err := s.SetPixel(0, 0, 1); !errors.Is(err, ErrNoStorage) {
		t.Fatalf("SetPixel before Bind err = %v, want ErrNoStorage", err)
	}
	if err := s.Bind(mem, 10); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	_ = s.SetPixel(3, 2, 0xAB)
	if mem[10+4*2+3] != 0xAB {
		t.Errorf("mem[%d] = %#x, want 0xab", 10+4*2+3, mem[10+4*2+3])
	}
	off, _ := s.Offset(3, 2)
	if off != 21 {
		t.Errorf("Offset(3, 2) = %d, want 21", off)
	}
	if s.Owned() {
		t.Errorf("Owned() = true for aliased surface")
	}
}

func TestBindTooSmall(t *testing.T) {
	s, _ := NewAliased(10, 10)
	if err := s.Bind(make([]byte, 99), 0); !errors.Is(err, ErrStorageTooSmall) {
		t.Errorf("Bind err = %v, want ErrStorageTooSmall", err)
	}
	if err := s.Bind(make([]byte, 100), 1); !errors.Is(err, ErrStorageTooSmall) {
		t.Errorf("Bind with offset err = %v, want ErrStorageTooSmall", err)
	}
	owned := mustNew(t, 4, 4)
	if err := owned.Bind(make([]byte, 16), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Bind on owned surface err = %v, want ErrInvalidArgument", err)
	}
}

func TestAliasedResizeAndDestroyKeepMemory(t *testing.T) {
	mem := make([]byte, 64)
	for i := range mem {
		mem[i] = byte(i)
	}
	want := bytes.Clone(mem)

	s, _ := NewAliased(4, 4)
	if err := s.Bind(mem, 8); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := s.Resize(8, 7); err != nil {
		t.Fatalf("Resize(8, 7): %v", err)
	}
	if &s.Memory()[0] != &mem[0] {
		t.Errorf("Resize replaced aliased memory")
	}
	if err := s.Resize(8, 8); !errors.Is(err, ErrStorageTooSmall) {
		t.Errorf("Resize(8, 8) err = %v, want ErrStorageTooSmall", err)
	}
	if s.Width() != 8 || s.Height() != 7 {
		t.Errorf("failed Resize changed size to %dx%d", s.Width(), s.Height())
	}
	if err := s.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if s.Memory() != nil {
		t.Errorf("Memory() after Destroy is not nil")
	}
	if !bytes.Equal(mem, want) {
		t.Errorf("aliased memory changed by Resize or Destroy")
	}
}

func TestOwnedResize(t *testing.T) {
	s := mustNew(t, 10, 10)
	_ = s.SetPixel(1, 1, 5)
	first := s.Memory()

	if err := s.Resize(5, 5); err != nil {
		t.Fatalf("Resize shrink: %v", err)
	}
	if &s.Memory()[0] != &first[0] {
		t.Errorf("shrinking reallocated storage")
	}
	if len(s.Pix()) != 25 {
		t.Errorf("len(Pix) = %d, want 25", len(s.Pix()))
	}

	if err := s.Resize(20, 20); err != nil {
		t.Fatalf("Resize grow: %v", err)
	}
	if len(s.Memory()) != 400 {
		t.Errorf("len(Memory) = %d, want 400", len(s.Memory()))
	}
	for i, b := range s.Pix() {
		if b != 0 {
			t.Fatalf("grown storage byte %d = %d, want 0", i, b)
		}
	}

	if err := s.Resize(1, 20); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(1, 20) err = %v, want ErrInvalidDimensions", err)
	}

	_ = s.Destroy()
	if err := s.Resize(10, 10); !errors.Is(err, ErrNoStorage) {
		t.Errorf("Resize after Destroy err = %v, want ErrNoStorage", err)
	}
}

func TestClear(t *testing.T) {
	mem := make([]byte, 30)
	s, _ := NewAliased(3, 3)
	_ = s.Bind(mem, 5)
	if err := s.Clear(7); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for i, b := range mem {
		inside := i >= 5 && i < 14
		if inside && b != 7 {
			t.Errorf("mem[%d] = %d, want 7", i, b)
		}
		if !inside && b != 0 {
			t.Errorf("mem[%d] = %d outside the surface, want 0", i, b)
		}
	}
}

func TestPen(t *testing.T) {
	s := mustNew(t, 20, 20)
	if err := s.MoveTo(20, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("MoveTo(20, 0) err = %v, want ErrOutOfBounds", err)
	}
	if err := s.MoveTo(-3, 2); err != nil {
		t.Errorf("MoveTo(-3, 2): %v", err)
	}

	_ = s.MoveTo(0, 0)
	s.SetColor(4)
	if err := s.LineTo(5, 0); err != nil {
		t.Fatalf("LineTo: %v", err)
	}
	if x, y := s.Pen(); x != 5 || y != 0 {
		t.Errorf("Pen() = (%d, %d), want (5, 0)", x, y)
	}
	for x := 0; x <= 5; x++ {
		if c, _ := s.GetPixel(x, 0); c != 4 {
			t.Errorf("pixel (%d, 0) = %d, want 4", x, c)
		}
	}

	if err := s.SetFont(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetFont(nil) err = %v, want ErrInvalidArgument", err)
	}
	if err := s.SetFont(basicfont.Face7x13); err != nil {
		t.Errorf("SetFont: %v", err)
	}
	_ = s.Destroy()
	if s.Font() != nil {
		t.Errorf("Font() after Destroy is not nil")
	}
}
