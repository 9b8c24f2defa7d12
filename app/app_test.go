package app

import (
	"image/color"
	"sync"
	"testing"
	"time"

	"racedash/hal"
)

type nopLogger struct{}

func (nopLogger) WriteLineString(s string) {}

type countDisplay struct {
	mu    sync.Mutex
	blits int
}

func (d *countDisplay) Size() (w, h int)                      { return 320, 240 }
func (d *countDisplay) FillRect(x, y, w, h int, c color.RGBA) {}
func (d *countDisplay) Invert(on bool)                        {}
func (d *countDisplay) Flush() error                          { return nil }

func (d *countDisplay) Blit(x, y, w, h int, pix []byte) {
	d.mu.Lock()
	d.blits++
	d.mu.Unlock()
}

func (d *countDisplay) blitCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.blits
}

type nopStrip struct{ n int }

func (s nopStrip) Len() int                     { return s.n }
func (s nopStrip) SetColor(i int, c color.RGBA) {}
func (s nopStrip) Show() error                  { return nil }

// scriptSerial hands out its lines one Read at a time, then reports empty
// non-blocking reads, the way a drained UART ring buffer does.
type scriptSerial struct {
	mu    sync.Mutex
	lines [][]byte
	reads int
}

func (s *scriptSerial) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if len(s.lines) == 0 {
		return 0, nil
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return copy(p, line), nil
}

func (s *scriptSerial) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

type fakeHAL struct {
	disp   *countDisplay
	serial *scriptSerial
}

func newFakeHAL(lines ...string) *fakeHAL {
	s := &scriptSerial{}
	for _, l := range lines {
		s.lines = append(s.lines, []byte(l))
	}
	return &fakeHAL{disp: &countDisplay{}, serial: s}
}

func (h *fakeHAL) Logger() hal.Logger   { return nopLogger{} }
func (h *fakeHAL) Display() hal.Display { return h.disp }
func (h *fakeHAL) Strip() hal.LEDStrip  { return nopStrip{n: 16} }
func (h *fakeHAL) Serial() hal.Serial   { return h.serial }

func TestPumpIdlesWhenSerialEmpty(t *testing.T) {
	h := newFakeHAL()
	_, stop := New(h, Config{})
	defer stop()

	// An empty serial must not be hammered: each (0, nil) read is followed by
	// a sleep, so the read count over this window stays small.
	time.Sleep(120 * time.Millisecond)
	if got := h.serial.readCount(); got > 50 {
		t.Fatalf("pump spun through %d empty reads in 120ms", got)
	}
}

func TestStepRendersDecodedFrame(t *testing.T) {
	h := newFakeHAL("6000,120,3,2,0,65000,64000,-500,8000,0,0,0,0\n")
	step, stop := New(h, Config{})
	defer stop()

	deadline := time.Now().Add(time.Second)
	for h.disp.blitCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("no widget drawn from a decoded frame")
		}
		if err := step(); err != nil {
			t.Fatalf("step: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
