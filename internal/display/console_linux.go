//go:build linux

package display

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/rook-computer/bitmapfb/internal/logging"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// consoles are tried in order: the controlling VT, then the active one.
var consoles = []string{"/dev/tty", "/dev/tty0"}

func setConsoleMode(mode int, name string) error {
	var lastErr error
	for _, p := range consoles {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("%s on %s: %w", name, p, err)
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("%s failed: unknown error", name)
}

// SetGraphicsMode switches the console to graphics mode so the kernel stops
// drawing its text console over the framebuffer.
func SetGraphicsMode(l logging.Logger) error {
	return logResult(l, "KD_GRAPHICS set", setConsoleMode(kdGraphics, "KD_GRAPHICS"))
}

// RestoreTextMode puts the console back into text mode.
func RestoreTextMode(l logging.Logger) error {
	return logResult(l, "KD_TEXT set", setConsoleMode(kdText, "KD_TEXT"))
}

func HideCursor(l logging.Logger) error { return logResult(l, "cursor hidden", writeVT("\x1b[?25l")) }
func ShowCursor(l logging.Logger) error { return logResult(l, "cursor shown", writeVT("\x1b[?25h")) }

func writeVT(s string) error {
	var lastErr error
	for _, p := range consoles {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return fmt.Errorf("write VT failed: %w", lastErr)
	}
	return fmt.Errorf("write VT failed: unknown error")
}

func logResult(l logging.Logger, ok string, err error) error {
	l = logging.OrNoop(l)
	if err != nil {
		l.Errorf("tty", "%v", err)
		return err
	}
	l.Infof("tty", "%s", ok)
	return nil
}
