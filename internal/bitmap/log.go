package bitmap

import (
	"sync/atomic"

	"github.com/rook-computer/bitmapfb/internal/logging"
)

type loggerBox struct{ l logging.Logger }

var pkgLogger atomic.Pointer[loggerBox]

func init() {
	pkgLogger.Store(&loggerBox{l: logging.Noop{}})
}

// SetLogger installs the logger used for rejected calls and skipped blits.
// Pass nil to silence the package again. Safe for concurrent use.
func SetLogger(l logging.Logger) {
	pkgLogger.Store(&loggerBox{l: logging.OrNoop(l)})
}

func logger() logging.Logger {
	return pkgLogger.Load().l
}
