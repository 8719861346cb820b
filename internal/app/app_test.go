package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"golang.org/x/image/font/basicfont"

	"github.com/rook-computer/bitmapfb/internal/display"
	"github.com/rook-computer/bitmapfb/internal/rect"
	"github.com/rook-computer/bitmapfb/internal/state"
	"github.com/rook-computer/bitmapfb/internal/web"
)

func testScene(t *testing.T, cfg Config) *Scene {
	t.Helper()
	s, err := NewScene(cfg, basicfont.Face7x13, nil)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	if _, err := s.Compositor.Redraw(); err != nil {
		t.Fatalf("Redraw: %v", err)
	}
	return s
}

func TestSceneBackdrops(t *testing.T) {
	for _, p := range []string{PatternChecker, PatternStripes, PatternQR} {
		t.Run(p, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Pattern = p
			s := testScene(t, cfg)
			if len(s.Layers()) != 3 {
				t.Fatalf("scene has %d layers, want 3", len(s.Layers()))
			}
			// The top-left corner is backdrop unless the badge starts there.
			if s.Compositor.LayerAt(0, 0) == nil {
				want, _ := s.Compositor.Backdrop.GetPixel(0, 0)
				if got, _ := s.Screen.GetPixel(0, 0); got != want {
					t.Errorf("screen corner = %d, want backdrop %d", got, want)
				}
			}
		})
	}
}

func TestSceneStep(t *testing.T) {
	s := testScene(t, DefaultConfig())
	ticker := s.ticker.Surface
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	_, _ = s.Compositor.Redraw()
	before, _ := ticker.GetPixel(ticker.Width()-1, 3)
	if before != ColorForeground {
		t.Fatalf("fed column = %d, want the first stripe color %d", before, ColorForeground)
	}
	oldBadge := s.badge.Bounds()

	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got, _ := ticker.GetPixel(ticker.Width()-2, 3); got != before {
		t.Errorf("ticker did not scroll left: got %d, want %d", got, before)
	}
	if s.badge.Bounds() == oldBadge {
		t.Errorf("badge did not move")
	}

	damage := s.Compositor.Damage()
	covers := func(r rect.Rect) bool {
		for _, d := range damage {
			if rect.Contains(r, d) {
				return true
			}
		}
		return false
	}
	if !covers(s.badge.Bounds()) {
		t.Errorf("new badge rect %v not damaged: %v", s.badge.Bounds(), damage)
	}
	if !covers(s.ticker.Bounds()) {
		t.Errorf("ticker rect %v not damaged: %v", s.ticker.Bounds(), damage)
	}

	painted, err := s.Compositor.Redraw()
	if err != nil {
		t.Fatalf("Redraw: %v", err)
	}
	if len(painted) == 0 {
		t.Errorf("Redraw after Step painted nothing")
	}
}

func TestPanelFrameInset(t *testing.T) {
	p, err := newPanel(basicfont.Face7x13)
	if err != nil {
		t.Fatalf("newPanel: %v", err)
	}
	s := p.Surface
	// The rounded frame's top edge runs 4 pixels inside the border.
	if c, _ := s.GetPixel(panelWidth/2, 4); c != ColorForeground {
		t.Errorf("frame top edge = %d, want %d", c, ColorForeground)
	}
	if c, _ := s.GetPixel(panelWidth/2, 2); c != ColorPanel {
		t.Errorf("gap between border and frame = %d, want %d", c, ColorPanel)
	}
	if c, _ := s.GetPixel(10, 10); c != ColorAccent {
		t.Errorf("guide line corner = %d, want %d", c, ColorAccent)
	}
}

func TestOrbitStaysOnScreen(t *testing.T) {
	s := testScene(t, DefaultConfig())
	screen := rect.New(0, 0, s.Screen.Width()-1, s.Screen.Height()-1-tickerHeight)
	for n := 0; n < s.period; n++ {
		x, y := s.orbit(n)
		r := rect.FromSize(x, y, s.badge.Surface.Width(), s.badge.Surface.Height())
		if !rect.Contains(r, screen) {
			t.Fatalf("badge at frame %d is %v, outside %v", n, r, screen)
		}
	}
}

func TestAppRunsUntilCancelled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FPS = MaxFPS
	store := state.NewStore()
	presenter := display.NewImagePresenter(cfg.Width*2, cfg.Height*2)
	a := New(store, presenter, web.NoopServer{}, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for store.Seq() < 3 {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("only %d frames published", store.Seq())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if err := a.RequestRedraw(ctx); err != nil {
		t.Errorf("RequestRedraw: %v", err)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}

	f := store.Snapshot()
	if f.Phase != state.STOPPED {
		t.Errorf("phase = %v, want stopped", f.Phase)
	}
	if f.Width != cfg.Width || f.Height != cfg.Height || len(f.Layers) != 3 {
		t.Errorf("frame %dx%d with %d layers", f.Width, f.Height, len(f.Layers))
	}
	if got := presenter.Image.(*image.RGBA).RGBAAt(0, 0); got == (color.RGBA{}) {
		t.Errorf("presenter never drew")
	}
}

func TestAppExit(t *testing.T) {
	cfg := DefaultConfig()
	a := New(state.NewStore(), nil, nil, cfg)
	want := errors.New("exit key")
	a.Exit(want)
	a.Exit(errors.New("ignored"))

	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()
	select {
	case err := <-done:
		if !errors.Is(err, want) {
			t.Errorf("Start returned %v, want %v", err, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Exit")
	}
	if a.Store.Snapshot().Phase != state.ERROR {
		t.Errorf("phase = %v, want error", a.Store.Snapshot().Phase)
	}
}

func TestAppRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern = "plaid"
	a := New(state.NewStore(), nil, nil, cfg)
	if err := a.Start(context.Background()); err == nil {
		t.Fatal("Start accepted an unknown pattern")
	}
	if a.Store.Snapshot().Phase != state.ERROR {
		t.Errorf("phase = %v, want error", a.Store.Snapshot().Phase)
	}
}

func TestRequestRedrawMergesPending(t *testing.T) {
	a := New(state.NewStore(), nil, nil, DefaultConfig())
	for i := 0; i < 3; i++ {
		if err := a.RequestRedraw(context.Background()); err != nil {
			t.Fatalf("RequestRedraw #%d: %v", i, err)
		}
	}
	if len(a.redrawCh) != 1 {
		t.Errorf("%d redraws pending, want 1", len(a.redrawCh))
	}
}
