package app

import (
	"fmt"
	"math"

	"golang.org/x/image/font"

	"github.com/rook-computer/bitmapfb/internal/bitmap"
	"github.com/rook-computer/bitmapfb/internal/compose"
	"github.com/rook-computer/bitmapfb/internal/logging"
	"github.com/rook-computer/bitmapfb/internal/pattern"
	"github.com/rook-computer/bitmapfb/internal/rect"
	"github.com/rook-computer/bitmapfb/internal/state"
)

const (
	panelWidth   = 120
	panelHeight  = 90
	badgeHeight  = 32
	badgeRadius  = 8
	badgePadding = 12
	tickerHeight = 16
	stripeWidth  = 4
	title        = "bitmapfb"
)

// Scene is the demo screen: a patterned backdrop, a static panel, a badge
// orbiting the panel and a ticker strip scrolling along the bottom.
type Scene struct {
	Screen     *bitmap.Surface
	Compositor *compose.Compositor

	panel  *compose.Layer
	badge  *compose.Layer
	ticker *compose.Layer
	// stripes feeds the ticker one column per frame.
	stripes *bitmap.Surface

	frame  int
	period int
}

func NewScene(cfg Config, face font.Face, l logging.Logger) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	screen, err := bitmap.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	backdrop, err := newBackdrop(cfg)
	if err != nil {
		return nil, fmt.Errorf("backdrop: %w", err)
	}

	c := compose.New(screen, backdrop)
	c.Background = ColorBackdropA
	c.Logger = l
	s := &Scene{Screen: screen, Compositor: c, period: cfg.FPS * 4}

	if s.panel, err = newPanel(face); err != nil {
		return nil, fmt.Errorf("panel: %w", err)
	}
	at := rect.Center(screen.Bounds(), s.panel.Surface.Bounds(), true)
	if err := c.Add(s.panel, at.MinX, at.MinY); err != nil {
		return nil, err
	}

	if s.badge, err = newBadge(face); err != nil {
		return nil, fmt.Errorf("badge: %w", err)
	}
	x, y := s.orbit(0)
	if err := c.Add(s.badge, x, y); err != nil {
		return nil, err
	}

	tickerSurface, err := bitmap.New(cfg.Width, tickerHeight)
	if err != nil {
		return nil, err
	}
	_ = tickerSurface.Clear(ColorBlack)
	s.ticker = &compose.Layer{Name: "ticker", Surface: tickerSurface}
	if err := c.Add(s.ticker, 0, cfg.Height-tickerHeight); err != nil {
		return nil, err
	}
	s.stripes, err = pattern.Stripes(4*stripeWidth, tickerHeight, stripeWidth, ColorForeground, ColorBackground, ColorAccent, ColorBlack)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newBackdrop(cfg Config) (*bitmap.Surface, error) {
	var tile *bitmap.Surface
	var err error
	switch cfg.Pattern {
	case PatternStripes:
		tile, err = pattern.Stripes(24, 24, 6, ColorBackdropA, ColorBackdropB, ColorBackdropA, ColorForeground)
	case PatternQR:
		tile, err = pattern.QRCode(cfg.QRPayload, 2, ColorBlack, ColorWhite)
	default:
		tile, err = pattern.Checkerboard(16, 16, 8, ColorBackdropA, ColorBackdropB)
	}
	if err != nil {
		return nil, err
	}
	defer tile.Destroy()

	backdrop, err := bitmap.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if err := bitmap.Tile(tile, 0, 0, backdrop, tile.Width(), tile.Height()); err != nil {
		return nil, err
	}
	return backdrop, nil
}

// newPanel draws the static panel: a framed card with crossed guide lines, a
// filled disc and the title.
func newPanel(face font.Face) (*compose.Layer, error) {
	s, err := bitmap.New(panelWidth, panelHeight)
	if err != nil {
		return nil, err
	}
	_ = s.Clear(ColorPanel)
	if err := s.DrawBox(0, 0, panelWidth, panelHeight, ColorBlack, false); err != nil {
		return nil, err
	}
	frame := rect.Inset(s.Bounds(), 4)
	if err := s.DrawRoundBox(frame.MinX, frame.MinY, frame.Width(), frame.Height(), 6, ColorForeground, false); err != nil {
		return nil, err
	}
	guide := rect.Inset(s.Bounds(), 10)
	_ = s.DrawLine(guide.MinX, guide.MinY, guide.MaxX, guide.MaxY, ColorAccent)
	_ = s.DrawLine(guide.MaxX, guide.MinY, guide.MinX, guide.MaxY, ColorAccent)

	cx, cy := panelWidth/2, panelHeight/2
	if err := s.DrawCircle(cx, cy, 18, ColorForeground); err != nil {
		return nil, err
	}
	// The guide lines cross at the center; fill the quarters between them.
	for _, p := range [][2]int{{cx, cy - 8}, {cx, cy + 8}, {cx - 8, cy}, {cx + 8, cy}} {
		if err := s.FloodFill(p[0], p[1], ColorBackground); err != nil {
			return nil, err
		}
	}

	if err := s.SetFont(face); err != nil {
		return nil, err
	}
	s.SetColor(ColorBlack)
	if err := s.MoveTo((panelWidth-s.MeasureString(title))/2, panelHeight-6-face.Metrics().Height.Ceil()); err != nil {
		return nil, err
	}
	if _, err := s.DrawString(title); err != nil {
		return nil, err
	}
	return &compose.Layer{Name: "panel", Surface: s}, nil
}

func newBadge(face font.Face) (*compose.Layer, error) {
	width := font.MeasureString(face, title).Ceil() + 2*badgePadding
	s, err := bitmap.New(max(width, 2*badgeRadius+1), badgeHeight)
	if err != nil {
		return nil, err
	}
	_ = s.Clear(ColorBackdropA)
	if err := s.DrawRoundBox(0, 0, s.Width(), s.Height(), badgeRadius, ColorForeground, true); err != nil {
		return nil, err
	}
	if err := s.SetFont(face); err != nil {
		return nil, err
	}
	s.SetColor(ColorWhite)
	textTop := (badgeHeight - face.Metrics().Height.Ceil()) / 2
	if err := s.MoveTo(badgePadding, textTop); err != nil {
		return nil, err
	}
	if _, err := s.DrawString(title); err != nil {
		return nil, err
	}
	return &compose.Layer{Name: "badge", Surface: s}, nil
}

// orbit returns the badge position for frame n: an ellipse around the screen
// center that keeps the badge on screen above the ticker.
func (s *Scene) orbit(n int) (x, y int) {
	w, h := s.Screen.Width(), s.Screen.Height()-tickerHeight
	bw, bh := s.badge.Surface.Width(), s.badge.Surface.Height()
	rx := float64(max(w-bw, 0)) / 2
	ry := float64(max(h-bh, 0)) / 2
	angle := 2 * math.Pi * float64(n%s.period) / float64(s.period)
	x = int(math.Round(rx + rx*math.Cos(angle)))
	y = int(math.Round(ry + ry*math.Sin(angle)))
	return x, y
}

// Step advances the animation by one frame and records the resulting damage
// with the compositor.
func (s *Scene) Step() error {
	s.frame++

	x, y := s.orbit(s.frame)
	if err := s.Compositor.Move(s.badge, x, y); err != nil {
		return err
	}

	// Scroll the ticker left by one pixel within its own surface, then feed
	// the next stripe column in at the right edge.
	t := s.ticker.Surface
	if _, err := bitmap.Blit(t, 1, 0, t, 0, 0, t.Width()-1, t.Height()); err != nil {
		return err
	}
	col := s.frame % s.stripes.Width()
	if _, err := bitmap.Blit(s.stripes, col, 0, t, t.Width()-1, 0, 1, t.Height()); err != nil {
		return err
	}
	return s.Compositor.Invalidate(s.ticker, t.Bounds())
}

// Layers describes the stack for the frame store.
func (s *Scene) Layers() []state.LayerInfo {
	layers := s.Compositor.Layers()
	out := make([]state.LayerInfo, 0, len(layers))
	for _, l := range layers {
		out = append(out, state.LayerInfo{Name: l.Name, Bounds: l.Bounds()})
	}
	return out
}
