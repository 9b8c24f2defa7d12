// Package render draws the dashboard widgets differentially: a widget is
// redrawn if and only if its semantic value changed since the last draw.
package render

import (
	"fmt"
	"image/color"
	"strconv"
	"time"

	"racedash/dash/mode"
	"racedash/dash/telemetry"
	"racedash/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/freesans"
)

const marginPx = 4

var (
	colorBG      = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	colorPanelBG = color.RGBA{R: 0x08, G: 0x08, B: 0x08, A: 0xff}
	colorFG      = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorDim     = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	colorGood    = color.RGBA{R: 0x4a, G: 0xdf, B: 0x6a, A: 0xff}
	colorBad     = color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}
	colorWarn    = color.RGBA{R: 0xff, G: 0xb0, B: 0x20, A: 0xff}
	colorCold    = color.RGBA{R: 0x58, G: 0x9a, B: 0xff, A: 0xff}
)

var (
	fontGear  = fontSpec{font: &freesans.Bold24pt7b, height: 48, offset: 34}
	fontBig   = fontSpec{font: &freesans.Bold12pt7b, height: 26, offset: 18}
	fontMono  = fontSpec{font: &freemono.Bold9pt7b, height: 18, offset: 13}
	fontSmall = fontSpec{font: &tinyfont.Org01, height: 7, offset: 5}
)

type widgetID int

const (
	wSpeed widgetID = iota
	wRev
	wGear
	wPosition
	wLapCounter
	wLapTime
	wBestTime
	wDelta
	wTyres
	widgetCount
)

type box struct{ x, y, w, h int }

// layout assumes the 320x240 landscape panel.
var layout = [widgetCount]box{
	wSpeed:      {0, 0, 120, 60},
	wRev:        {200, 0, 120, 60},
	wGear:       {120, 0, 80, 100},
	wPosition:   {0, 60, 120, 40},
	wLapCounter: {200, 60, 120, 40},
	wLapTime:    {0, 100, 160, 45},
	wBestTime:   {160, 100, 160, 45},
	wDelta:      {0, 145, 160, 50},
	wTyres:      {160, 145, 160, 50},
}

var captions = [widgetCount]string{
	wSpeed:      "SPEED",
	wRev:        "RPM",
	wPosition:   "POS",
	wLapCounter: "LAP",
	wLapTime:    "TIME",
	wBestTime:   "BEST",
	wDelta:      "DELTA",
	wTyres:      "TYRE C",
}

// snapshot is the last content actually drawn per widget. The empty string is
// the invalidation sentinel: no widget legitimately draws nothing.
type snapshot struct {
	text      [widgetCount]string
	bgDrawn   bool
	lostDrawn bool
}

type Renderer struct {
	disp    hal.Display
	width   int
	height  int
	scratch []byte

	snap      snapshot
	lastDraw  [widgetCount]time.Time
	minRedraw time.Duration
	blinkHalf time.Duration

	flushNeeded bool
}

func New(disp hal.Display) *Renderer {
	w, h := disp.Size()
	max := 0
	for _, b := range layout {
		if n := b.w * b.h * 2; n > max {
			max = n
		}
	}
	if n := w * 60 * 2; n > max { // signal-lost card
		max = n
	}
	return &Renderer{
		disp:      disp,
		width:     w,
		height:    h,
		scratch:   make([]byte, max),
		minRedraw: 50 * time.Millisecond,
		blinkHalf: 400 * time.Millisecond,
	}
}

// InvalidateAll resets every snapshot so the next Render repaints the whole
// screen. Called on full-screen mode transitions.
func (r *Renderer) InvalidateAll() {
	r.snap = snapshot{}
	r.lastDraw = [widgetCount]time.Time{}
}

// Render draws whatever changed. Within one call every widget sees the same
// record and mode; device writes happen only for changed widgets, followed by
// a single flush.
func (r *Renderer) Render(now time.Time, rec telemetry.Record, m mode.Mode) {
	if m == mode.SignalLost {
		r.renderSignalLost()
		return
	}

	if !r.snap.bgDrawn {
		r.disp.FillRect(0, 0, r.width, r.height, colorBG)
		r.snap.bgDrawn = true
		r.flushNeeded = true
	}

	r.drawText(now, wSpeed, strconv.Itoa(int(rec.Speed)), fontBig, colorFG)
	r.drawText(now, wRev, strconv.Itoa(int(rec.EngineSpeed)), fontBig, colorFG)
	r.drawGear(now, rec, m)
	r.drawText(now, wPosition, PositionText(rec.Position), fontBig, colorFG)
	r.drawLapCounter(now, rec)
	r.drawText(now, wLapTime, FormatLapTime(rec.LapMillis), fontMono, colorFG)
	r.drawText(now, wBestTime, FormatLapTime(rec.BestMillis), fontMono, colorFG)
	r.drawDelta(now, rec)
	r.drawTyres(now, rec)

	if r.flushNeeded {
		_ = r.disp.Flush()
		r.flushNeeded = false
	}
}

func (r *Renderer) renderSignalLost() {
	if r.snap.lostDrawn {
		return
	}
	r.disp.FillRect(0, 0, r.width, r.height, colorBG)
	c := newCanvas(r.scratch, r.width, 60)
	c.fill(colorBG)
	c.writeCentered(fontBig, "NO SIGNAL", colorBad)
	r.disp.Blit(0, (r.height-60)/2, r.width, 60, c.pix)
	r.snap.lostDrawn = true
	_ = r.disp.Flush()
}

// drawGear also carries the pit-limiter blink: the box alternates between a
// literal "P" and the live gear on a fixed half-period.
func (r *Renderer) drawGear(now time.Time, rec telemetry.Record, m mode.Mode) {
	text := GearText(rec.Gear)
	col := colorFG
	if m == mode.PitLimiter {
		col = colorWarn
		if r.blinkOn(now) {
			text = "P"
		}
	}
	r.draw(now, wGear, text, func(c canvas) {
		c.writeCentered(fontGear, text, col)
	})
}

func (r *Renderer) drawLapCounter(now time.Time, rec telemetry.Record) {
	if rec.TotalLaps > 0 {
		r.drawText(now, wLapCounter, fmt.Sprintf("%d/%d", rec.Lap, rec.TotalLaps), fontBig, colorFG)
		return
	}
	// Unknown total: "<current>/" plus a drawn infinity glyph. The fonts have
	// no such character, so it is two overlapping circles.
	text := fmt.Sprintf("%d/", rec.Lap)
	key := text + "inf"
	r.draw(now, wLapCounter, key, func(c canvas) {
		f := fontBig
		_, tw := tinyfont.LineWidth(f.font, text)
		const rad = int16(6)
		infW := rad*4 + 2
		x := (c.w - (int16(tw) + infW)) / 2
		if x < marginPx {
			x = marginPx
		}
		y := (c.h-f.height)/2 + f.offset
		tinyfont.WriteLine(c, f.font, x, y, text, colorFG)
		cy := y - rad - 2
		cx := x + int16(tw) + rad + 1
		c.circle(cx, cy, rad, colorFG)
		c.circle(cx+rad*2-2, cy, rad, colorFG)
	})
}

// drawDelta colors by sign: gaining (negative) is good, losing is bad.
func (r *Renderer) drawDelta(now time.Time, rec telemetry.Record) {
	text := FormatDelta(rec.DeltaMillis)
	col := colorFG
	if rec.DeltaMillis < 0 {
		col = colorGood
	} else if rec.DeltaMillis > 0 {
		col = colorBad
	}
	r.draw(now, wDelta, text, func(c canvas) {
		c.writeCentered(fontMono, text, col)
	})
}

func (r *Renderer) drawTyres(now time.Time, rec telemetry.Record) {
	t := rec.TyreTemps
	key := fmt.Sprintf("%d,%d,%d,%d", t[0], t[1], t[2], t[3])
	r.draw(now, wTyres, key, func(c canvas) {
		labels := [4]string{"FL", "FR", "RL", "RR"}
		cw := c.w / 2
		ch := (c.h - 10) / 2
		for i := 0; i < 4; i++ {
			x := int16(i%2) * cw
			y := int16(10) + int16(i/2)*ch
			s := labels[i] + " " + strconv.Itoa(int(t[i]))
			tinyfont.WriteLine(c, fontMono.font, x+marginPx, y+fontMono.offset, s, tyreColor(t[i]))
		}
	})
}

func tyreColor(temp int16) color.RGBA {
	switch {
	case temp < 60:
		return colorCold
	case temp > 100:
		return colorBad
	default:
		return colorGood
	}
}

// drawText composes centered text for a widget through the differential path.
func (r *Renderer) drawText(now time.Time, id widgetID, text string, f fontSpec, col color.RGBA) {
	r.draw(now, id, text, func(c canvas) {
		c.writeCentered(f, text, col)
	})
}

// draw is the differential core: skip when the key matches the snapshot, rate
// limit device traffic, otherwise compose off-device and blit once.
func (r *Renderer) draw(now time.Time, id widgetID, key string, compose func(canvas)) {
	if r.snap.text[id] == key {
		return
	}
	if !r.lastDraw[id].IsZero() && now.Sub(r.lastDraw[id]) < r.minRedraw {
		return
	}
	b := layout[id]
	c := newCanvas(r.scratch, b.w, b.h)
	c.fill(colorPanelBG)
	if caption := captions[id]; caption != "" {
		tinyfont.WriteLine(c, fontSmall.font, marginPx, fontSmall.offset+1, caption, colorDim)
	}
	compose(c)
	r.disp.Blit(b.x, b.y, b.w, b.h, c.pix)
	r.snap.text[id] = key
	r.lastDraw[id] = now
	r.flushNeeded = true
}

func (r *Renderer) blinkOn(now time.Time) bool {
	return (now.UnixMilli()/int64(r.blinkHalf/time.Millisecond))%2 == 0
}
