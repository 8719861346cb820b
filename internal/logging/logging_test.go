package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestFileLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)

	l.Infof("bitmap", "created %dx%d", 10, 20)
	l.Errorf("blit", "no storage")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], " [INFO] bitmap: created 10x20") {
		t.Errorf("info line = %q", lines[0])
	}
	if !strings.Contains(lines[1], " [ERROR] blit: no storage") {
		t.Errorf("error line = %q", lines[1])
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(Noop); !ok {
		t.Error("OrNoop(nil) is not Noop")
	}
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	if _, ok := OrNoop(l).(FileLogger); !ok {
		t.Error("OrNoop dropped a real logger")
	}
}
