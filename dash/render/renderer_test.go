package render

import (
	"image/color"
	"testing"
	"time"

	"racedash/dash/mode"
	"racedash/dash/telemetry"
	"racedash/hal"
)

type blitCall struct {
	x, y, w, h int
	pix        []byte
}

type fakeDisplay struct {
	fills   int
	blits   []blitCall
	inverts []bool
	flushes int
}

func (f *fakeDisplay) Size() (w, h int) { return 320, 240 }

func (f *fakeDisplay) FillRect(x, y, w, h int, c color.RGBA) { f.fills++ }

func (f *fakeDisplay) Blit(x, y, w, h int, pix []byte) {
	cp := make([]byte, len(pix))
	copy(cp, pix)
	f.blits = append(f.blits, blitCall{x: x, y: y, w: w, h: h, pix: cp})
}

func (f *fakeDisplay) Invert(on bool) { f.inverts = append(f.inverts, on) }

func (f *fakeDisplay) Flush() error {
	f.flushes++
	return nil
}

func (f *fakeDisplay) lastBlitAt(x, y int) *blitCall {
	for i := len(f.blits) - 1; i >= 0; i-- {
		if f.blits[i].x == x && f.blits[i].y == y {
			return &f.blits[i]
		}
	}
	return nil
}

var testRecord = telemetry.Record{
	EngineSpeed:  6000,
	Speed:        120,
	Gear:         3,
	Position:     2,
	LapMillis:    65000,
	BestMillis:   64000,
	DeltaMillis:  -500,
	RevReference: 8000,
	Lap:          12,
	TotalLaps:    43,
}

func TestRenderIdempotent(t *testing.T) {
	disp := &fakeDisplay{}
	r := New(disp)
	t0 := time.Unix(1000, 0)

	r.Render(t0, testRecord, mode.Normal)
	if got := len(disp.blits); got != int(widgetCount) {
		t.Fatalf("first render blits=%d, want %d", got, widgetCount)
	}
	if disp.fills != 1 {
		t.Fatalf("fills=%d", disp.fills)
	}

	// Same record again: zero drawing work.
	blits, flushes := len(disp.blits), disp.flushes
	r.Render(t0.Add(100*time.Millisecond), testRecord, mode.Normal)
	if len(disp.blits) != blits || disp.flushes != flushes {
		t.Fatalf("redundant render touched device: blits %d->%d", blits, len(disp.blits))
	}
}

func TestRenderOnlyChangedWidget(t *testing.T) {
	disp := &fakeDisplay{}
	r := New(disp)
	t0 := time.Unix(1000, 0)
	r.Render(t0, testRecord, mode.Normal)

	rec := testRecord
	rec.Speed = 121
	before := len(disp.blits)
	r.Render(t0.Add(100*time.Millisecond), rec, mode.Normal)
	if got := len(disp.blits) - before; got != 1 {
		t.Fatalf("changed speed redrew %d widgets, want 1", got)
	}
	b := layout[wSpeed]
	if disp.blits[before].x != b.x || disp.blits[before].y != b.y {
		t.Fatalf("redraw at (%d,%d), want speed box (%d,%d)",
			disp.blits[before].x, disp.blits[before].y, b.x, b.y)
	}
}

func TestRenderRateLimitSuppressesThenCatchesUp(t *testing.T) {
	disp := &fakeDisplay{}
	r := New(disp)
	t0 := time.Unix(1000, 0)
	r.Render(t0, testRecord, mode.Normal)

	rec := testRecord
	rec.Speed = 140
	before := len(disp.blits)
	r.Render(t0.Add(10*time.Millisecond), rec, mode.Normal)
	if len(disp.blits) != before {
		t.Fatalf("redraw within the min interval was not suppressed")
	}
	r.Render(t0.Add(60*time.Millisecond), rec, mode.Normal)
	if len(disp.blits) != before+1 {
		t.Fatalf("suppressed redraw did not catch up")
	}
}

func TestInvalidateAllRepaints(t *testing.T) {
	disp := &fakeDisplay{}
	r := New(disp)
	t0 := time.Unix(1000, 0)
	r.Render(t0, testRecord, mode.Normal)

	r.InvalidateAll()
	before := len(disp.blits)
	r.Render(t0.Add(time.Second), testRecord, mode.Normal)
	if got := len(disp.blits) - before; got != int(widgetCount) {
		t.Fatalf("repaint blits=%d, want %d", got, widgetCount)
	}
	if disp.fills != 2 {
		t.Fatalf("fills=%d, want background repainted", disp.fills)
	}
}

func TestSignalLostCardDrawnOnce(t *testing.T) {
	disp := &fakeDisplay{}
	r := New(disp)
	t0 := time.Unix(1000, 0)

	r.Render(t0, testRecord, mode.SignalLost)
	if disp.fills != 1 || len(disp.blits) != 1 {
		t.Fatalf("fills=%d blits=%d", disp.fills, len(disp.blits))
	}
	r.Render(t0.Add(time.Second), testRecord, mode.SignalLost)
	if disp.fills != 1 || len(disp.blits) != 1 {
		t.Fatalf("signal-lost card redrawn every tick")
	}
}

func TestDeltaGainingColor(t *testing.T) {
	disp := &fakeDisplay{}
	r := New(disp)
	r.Render(time.Unix(1000, 0), testRecord, mode.Normal)

	b := layout[wDelta]
	call := disp.lastBlitAt(b.x, b.y)
	if call == nil {
		t.Fatalf("no delta blit")
	}
	// Negative delta composes in the "good" color.
	want := hal.PackRGB565(colorGood)
	if !containsPixel(call.pix, want) {
		t.Fatalf("gaining delta not drawn in good color")
	}
	bad := hal.PackRGB565(colorBad)
	if containsPixel(call.pix, bad) {
		t.Fatalf("gaining delta contains bad color")
	}
}

func containsPixel(pix []byte, want uint16) bool {
	for i := 0; i+1 < len(pix); i += 2 {
		if uint16(pix[i])|uint16(pix[i+1])<<8 == want {
			return true
		}
	}
	return false
}

func TestLapCounterInfinityFallback(t *testing.T) {
	disp := &fakeDisplay{}
	r := New(disp)
	t0 := time.Unix(1000, 0)

	rec := testRecord
	rec.TotalLaps = 0
	r.Render(t0, rec, mode.Normal)
	b := layout[wLapCounter]
	if disp.lastBlitAt(b.x, b.y) == nil {
		t.Fatalf("lap counter not drawn")
	}

	// A known total is a different value and must trigger a redraw.
	before := len(disp.blits)
	rec.TotalLaps = 43
	r.Render(t0.Add(100*time.Millisecond), rec, mode.Normal)
	if len(disp.blits) != before+1 {
		t.Fatalf("total-laps change did not redraw the counter")
	}
}

func TestPitLimiterGearBlink(t *testing.T) {
	disp := &fakeDisplay{}
	r := New(disp)

	// 800ms into the epoch the blink phase is "on" (literal P); one
	// half-period later it shows the live gear again.
	tOn := time.UnixMilli(800)
	r.Render(tOn, testRecord, mode.PitLimiter)
	before := len(disp.blits)

	r.Render(time.UnixMilli(1200), testRecord, mode.PitLimiter)
	if got := len(disp.blits) - before; got != 1 {
		t.Fatalf("blink phase change redrew %d widgets, want just the gear", got)
	}
	b := layout[wGear]
	if disp.blits[before].x != b.x || disp.blits[before].y != b.y {
		t.Fatalf("blink redraw hit the wrong widget")
	}
}
