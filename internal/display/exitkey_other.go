//go:build !linux

package display

import (
	"context"

	"github.com/rook-computer/bitmapfb/internal/logging"
)

const (
	KeyEsc = 1
	KeyF4  = 62
)

// WatchExitKey needs evdev; elsewhere it only logs.
func WatchExitKey(ctx context.Context, l logging.Logger, key uint16, onExit func()) {
	logging.OrNoop(l).Infof("input", "exit key watching is only supported on linux")
}
