//go:build !tinygo

package hal

import (
	"image/color"
	"sync"
)

type hostStrip struct {
	mu     sync.Mutex
	colors []color.RGBA
}

func newHostStrip(n int) *hostStrip {
	return &hostStrip{colors: make([]color.RGBA, n)}
}

func (s *hostStrip) Len() int { return len(s.colors) }

func (s *hostStrip) SetColor(i int, c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.colors) {
		return
	}
	s.colors[i] = c
}

func (s *hostStrip) Show() error { return nil }

func (s *hostStrip) snapshot(dst []color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(dst, s.colors)
}
