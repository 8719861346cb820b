package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rook-computer/bitmapfb/internal/bitmap"
)

const (
	EnvFBDevice = "BITMAPFB_FB_DEVICE"
	EnvFPS      = "BITMAPFB_FPS"
	EnvPattern  = "BITMAPFB_PATTERN"
	EnvQR       = "BITMAPFB_QR"
	EnvSize     = "BITMAPFB_SIZE"
)

// Backdrop patterns.
const (
	PatternChecker = "checker"
	PatternStripes = "stripes"
	PatternQR      = "qr"
)

const (
	MinScreenWidth  = 160
	MinScreenHeight = 120
	MaxFPS          = 120
)

type Config struct {
	FBDevice string
	FPS      int
	Pattern  string
	// QRPayload is encoded when Pattern is PatternQR.
	QRPayload string
	Width     int
	Height    int
	FontSize  float64
}

func DefaultConfig() Config {
	return Config{
		FBDevice:  "/dev/fb0",
		FPS:       30,
		Pattern:   PatternChecker,
		QRPayload: "http://192.168.4.1/",
		Width:     320,
		Height:    240,
		FontSize:  12,
	}
}

// ConfigFromEnv overrides base with any BITMAPFB_ variables that are set.
func ConfigFromEnv(base Config) (Config, error) {
	cfg := base
	if v := os.Getenv(EnvFBDevice); v != "" {
		cfg.FBDevice = v
	}
	if raw := os.Getenv(EnvFPS); raw != "" {
		fps, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be an integer (got %q): %w", EnvFPS, raw, err)
		}
		cfg.FPS = fps
	}
	if v := os.Getenv(EnvPattern); v != "" {
		cfg.Pattern = NormalizePattern(v)
	}
	if v := os.Getenv(EnvQR); v != "" {
		cfg.QRPayload = v
	}
	if raw := os.Getenv(EnvSize); raw != "" {
		w, h, err := ParseSize(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSize, err)
		}
		cfg.Width, cfg.Height = w, h
	}
	return cfg, cfg.Validate()
}

// NormalizePattern folds a pattern name from a flag or the environment to
// the form Validate accepts.
func NormalizePattern(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseSize parses "WIDTHxHEIGHT".
func ParseSize(raw string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(raw)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size must look like 320x240 (got %q)", raw)
	}
	if width, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("size width %q: %w", ws, err)
	}
	if height, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("size height %q: %w", hs, err)
	}
	return width, height, nil
}

func (cfg Config) Validate() error {
	if cfg.FPS < 1 || cfg.FPS > MaxFPS {
		return fmt.Errorf("fps %d outside 1..%d", cfg.FPS, MaxFPS)
	}
	switch cfg.Pattern {
	case PatternChecker, PatternStripes:
	case PatternQR:
		if cfg.QRPayload == "" {
			return fmt.Errorf("pattern %q needs a payload", PatternQR)
		}
	default:
		return fmt.Errorf("unknown pattern %q", cfg.Pattern)
	}
	if cfg.Width < MinScreenWidth || cfg.Width > bitmap.MaxWidth || cfg.Height < MinScreenHeight || cfg.Height > bitmap.MaxHeight {
		return fmt.Errorf("screen %dx%d outside %dx%d..%dx%d", cfg.Width, cfg.Height,
			MinScreenWidth, MinScreenHeight, bitmap.MaxWidth, bitmap.MaxHeight)
	}
	return nil
}
