//go:build !linux

package display

import (
	"errors"

	"github.com/rook-computer/bitmapfb/internal/logging"
)

var errNoConsole = errors.New("tty: console control is only supported on linux")

func SetGraphicsMode(l logging.Logger) error { return errNoConsole }
func RestoreTextMode(l logging.Logger) error { return errNoConsole }
func HideCursor(l logging.Logger) error      { return errNoConsole }
func ShowCursor(l logging.Logger) error      { return errNoConsole }
