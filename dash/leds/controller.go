// Package leds animates the rev bar on its own schedule, decoupled from the
// display refresh path so LED timing is never starved by panel transactions.
package leds

import (
	"image/color"
	"sync"
	"time"

	"racedash/dash/telemetry"
	"racedash/hal"
)

var (
	ledOff    = color.RGBA{A: 0xff}
	ledGreen  = color.RGBA{R: 0x00, G: 0xc8, B: 0x20, A: 0xff}
	ledAmber  = color.RGBA{R: 0xff, G: 0x90, B: 0x00, A: 0xff}
	ledRed    = color.RGBA{R: 0xe0, G: 0x10, B: 0x10, A: 0xff}
	ledBlue   = color.RGBA{R: 0x20, G: 0x40, B: 0xff, A: 0xff}
	ledWarn   = color.RGBA{R: 0xff, G: 0x60, B: 0x00, A: 0xff}
	ledYellow = color.RGBA{R: 0xe8, G: 0xd0, B: 0x00, A: 0xff}
)

const (
	lostBlinkHalf = 500 * time.Millisecond // ~1 Hz
	flagBlinkHalf = 250 * time.Millisecond // ~4 Hz
)

// Controller owns the strip. The main cycle publishes desired state through
// SetDesired/RequestClear; the LED task calls Tick on its own ticker. The two
// run concurrently, so the desired state sits behind a mutex: the only state
// shared between the concurrency units.
type Controller struct {
	strip hal.LEDStrip

	mu         sync.Mutex
	target     int
	flags      telemetry.FlagMask
	signalLost bool
	clearReq   bool

	lit     int // displayed lit count, eases toward target
	next    []color.RGBA
	applied []color.RGBA
	shown   bool
}

func New(strip hal.LEDStrip) *Controller {
	n := strip.Len()
	return &Controller{
		strip:   strip,
		next:    make([]color.RGBA, n),
		applied: make([]color.RGBA, n),
	}
}

// SetDesired publishes the main cycle's view: rev-bar target lit count, flag
// mask, and whether signal is lost.
func (c *Controller) SetDesired(target int, flags telemetry.FlagMask, signalLost bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if target < 0 {
		target = 0
	}
	if target > len(c.next) {
		target = len(c.next)
	}
	c.target = target
	c.flags = flags
	c.signalLost = signalLost
}

// RequestClear forces all LEDs off on the next tick, bypassing the other
// rules; the request clears itself once honored.
func (c *Controller) RequestClear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearReq = true
}

// Tick computes one animation frame and writes the strip only when at least
// one LED actually changed.
func (c *Controller) Tick(now time.Time) {
	c.mu.Lock()
	target := c.target
	flags := c.flags
	lost := c.signalLost
	wipe := c.clearReq
	c.clearReq = false
	c.mu.Unlock()

	n := len(c.next)
	for i := range c.next {
		c.next[i] = ledOff
	}

	switch {
	case wipe:
		c.lit = 0
	case lost:
		// Only the endpoints blink: enough to say "alive but deaf" without
		// lighting the whole bar in the pits.
		if blinkOn(now, lostBlinkHalf) && n > 0 {
			c.next[0] = ledWarn
			c.next[n-1] = ledWarn
		}
	case flags != 0:
		if blinkOn(now, flagBlinkHalf) {
			col := flagColor(flags)
			for i := range c.next {
				c.next[i] = col
			}
		}
	default:
		if c.lit < target {
			c.lit++
		} else if c.lit > target {
			c.lit--
		}
		for i := 0; i < c.lit && i < n; i++ {
			c.next[i] = zoneColor(i, n)
		}
	}

	c.apply()
}

// Run drives Tick on a fixed-rate ticker until stop closes.
func (c *Controller) Run(interval time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-t.C:
			c.Tick(now)
		}
	}
}

func (c *Controller) apply() {
	changed := !c.shown
	for i := range c.next {
		if c.next[i] != c.applied[i] {
			changed = true
			break
		}
	}
	if !changed {
		return
	}
	for i := range c.next {
		c.strip.SetColor(i, c.next[i])
	}
	if err := c.strip.Show(); err != nil {
		return
	}
	copy(c.applied, c.next)
	c.shown = true
}

// TargetLit maps the engine-speed ratio through the start/end percentage
// window onto a lit-LED count in [0, n].
func TargetLit(engine, ref int32, startPct, endPct float64, n int) int {
	if ref <= 0 || n <= 0 || endPct <= startPct {
		return 0
	}
	ratio := float64(engine) / float64(ref)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	if ratio <= startPct {
		return 0
	}
	if ratio >= endPct {
		return n
	}
	return int((ratio - startPct) / (endPct - startPct) * float64(n))
}

// flagColor picks the highest-priority flag color: red > yellow > blue > green.
func flagColor(m telemetry.FlagMask) color.RGBA {
	switch {
	case m&telemetry.FlagMaskRed != 0:
		return ledRed
	case m&telemetry.FlagMaskYellow != 0:
		return ledYellow
	case m&telemetry.FlagMaskBlue != 0:
		return ledBlue
	default:
		return ledGreen
	}
}

// zoneColor is fixed by position regardless of how many LEDs are lit: a green
// opening quarter, an amber quarter, red through the top, blue shift lights
// on the final pair.
func zoneColor(i, n int) color.RGBA {
	if i >= n-2 {
		return ledBlue
	}
	q := n / 4
	if q < 1 {
		q = 1
	}
	switch {
	case i < q:
		return ledGreen
	case i < 2*q:
		return ledAmber
	default:
		return ledRed
	}
}

func blinkOn(now time.Time, half time.Duration) bool {
	return (now.UnixMilli()/int64(half/time.Millisecond))%2 == 0
}
