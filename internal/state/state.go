// Package state holds the last composed frame for readers outside the render
// loop, such as the web server.
package state

import (
	"slices"
	"sync"

	"github.com/rook-computer/bitmapfb/internal/bitmap"
	"github.com/rook-computer/bitmapfb/internal/rect"
)

type Phase int

const (
	BOOTING Phase = iota
	RUNNING
	STOPPED
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case RUNNING:
		return "running"
	case STOPPED:
		return "stopped"
	case ERROR:
		return "error"
	}
	return "unknown"
}

type LayerInfo struct {
	Name   string
	Bounds rect.Rect
}

// Frame is a copy of the screen after one redraw.
type Frame struct {
	Phase  Phase
	Seq    uint64
	Width  int
	Height int
	Pix    []byte
	// Damage lists the rects repainted by the redraw that produced Pix.
	Damage []rect.Rect
	Layers []LayerInfo
	Err    string
}

// Surface returns an owned surface holding a copy of the frame pixels.
func (f Frame) Surface() (*bitmap.Surface, error) {
	s, err := bitmap.New(f.Width, f.Height)
	if err != nil {
		return nil, err
	}
	copy(s.Pix(), f.Pix)
	return s, nil
}

type Store struct {
	mu    sync.RWMutex
	frame Frame
}

func NewStore() *Store {
	return &Store{frame: Frame{Phase: BOOTING}}
}

// Snapshot returns a deep copy of the current frame; callers may keep and
// modify it.
func (store *Store) Snapshot() Frame {
	store.mu.RLock()
	defer store.mu.RUnlock()
	f := store.frame
	f.Pix = slices.Clone(f.Pix)
	f.Damage = slices.Clone(f.Damage)
	f.Layers = slices.Clone(f.Layers)
	return f
}

// Publish copies the pixels of s as the next frame and returns its sequence
// number. The store never keeps a reference to s, so the caller may go on
// drawing into it.
func (store *Store) Publish(s *bitmap.Surface, damage []rect.Rect) (uint64, error) {
	if s == nil {
		return 0, bitmap.ErrNilSurface
	}
	pix := s.Pix()
	if pix == nil {
		return 0, bitmap.ErrNoStorage
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.frame.Seq++
	store.frame.Width = s.Width()
	store.frame.Height = s.Height()
	// Snapshots clone, so the buffers can be reused.
	store.frame.Pix = append(store.frame.Pix[:0], pix...)
	store.frame.Damage = append(store.frame.Damage[:0], damage...)
	return store.frame.Seq, nil
}

// Seq returns the sequence number of the latest frame, 0 before the first.
func (store *Store) Seq() uint64 {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.frame.Seq
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.frame.Phase = phase
	store.mu.Unlock()
}

func (store *Store) SetLayers(layers []LayerInfo) {
	store.mu.Lock()
	store.frame.Layers = slices.Clone(layers)
	store.mu.Unlock()
}

// SetError records err and moves to the ERROR phase.
func (store *Store) SetError(err error) {
	store.mu.Lock()
	store.frame.Phase = ERROR
	store.frame.Err = err.Error()
	store.mu.Unlock()
}
