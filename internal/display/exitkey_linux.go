//go:build linux

package display

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/rook-computer/bitmapfb/internal/logging"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	KeyEsc = 1
	KeyF4  = 62
)

// keyEvent decodes one input_event record: timeval, u16 type, u16 code,
// s32 value.
type keyEvent struct {
	typ, code uint16
	value     int32
}

func eventSize() (tv, total int) {
	tv = binary.Size(unix.Timeval{})
	if tv <= 0 {
		return 16, 24
	}
	return tv, tv + 2 + 2 + 4
}

func parseEvents(buf []byte, tv, size int) []keyEvent {
	var out []keyEvent
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off : off+size]
		out = append(out, keyEvent{
			typ:   binary.LittleEndian.Uint16(rec[tv : tv+2]),
			code:  binary.LittleEndian.Uint16(rec[tv+2 : tv+4]),
			value: int32(binary.LittleEndian.Uint32(rec[tv+4 : tv+8])),
		})
	}
	return out
}

// WatchExitKey reads every evdev device under /dev/input and calls onExit
// once when key is pressed. It returns immediately; the readers stop with
// ctx. Without input devices it logs and does nothing.
func WatchExitKey(ctx context.Context, l logging.Logger, key uint16, onExit func()) {
	l = logging.OrNoop(l)
	if onExit == nil {
		return
	}
	tv, size := eventSize()

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		l.Infof("input", "no evdev devices found for exit key %d", key)
		return
	}

	var once sync.Once
	trigger := func() {
		once.Do(func() {
			l.Infof("input", "exit key %d pressed", key)
			onExit()
		})
	}

	for _, p := range paths {
		go watchDevice(ctx, p, key, tv, size, trigger)
	}
}

func watchDevice(ctx context.Context, path string, key uint16, tv, size int, trigger func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 64*size)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, ev := range parseEvents(buf[:n], tv, size) {
			if ev.typ == evKey && ev.code == key && ev.value == 1 {
				trigger()
				return
			}
		}
	}
}
