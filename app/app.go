// Package app wires the decoder, store, mode machine, renderer and LED
// controller onto a HAL and runs the main cycle.
package app

import (
	"strconv"
	"sync"
	"time"

	"racedash/dash/leds"
	"racedash/dash/mode"
	"racedash/dash/render"
	"racedash/dash/telemetry"
	"racedash/hal"
	"racedash/internal/buildinfo"
)

// Config tunes the dashboard; zero values take the defaults.
type Config struct {
	SignalTimeout time.Duration // silence before SignalLost
	LEDInterval   time.Duration // LED task tick period
	RevStartPct   float64       // rev ratio where the bar starts lighting
	RevEndPct     float64       // rev ratio where the bar is fully lit
	StatsInterval time.Duration // decode statistics log period
}

func (c *Config) applyDefaults() {
	if c.SignalTimeout <= 0 {
		c.SignalTimeout = 2000 * time.Millisecond
	}
	if c.LEDInterval <= 0 {
		c.LEDInterval = 25 * time.Millisecond
	}
	if c.RevStartPct <= 0 {
		c.RevStartPct = 0.50
	}
	if c.RevEndPct <= 0 || c.RevEndPct <= c.RevStartPct {
		c.RevEndPct = 0.95
	}
	if c.StatsInterval <= 0 {
		c.StatsInterval = 10 * time.Second
	}
}

type dashboard struct {
	h   hal.HAL
	cfg Config

	store    *telemetry.Store
	machine  *mode.Machine
	renderer *render.Renderer
	leds     *leds.Controller

	feed chan []byte
	stop chan struct{}
	once sync.Once

	lastStats time.Time
}

// New builds the dashboard and starts its background units: the serial pump
// and the LED task. The returned step function is the main cycle; the caller
// drives it at its tick rate (window TPS, headless ticker, or firmware loop).
func New(h hal.HAL, cfg Config) (step func() error, stop func()) {
	cfg.applyDefaults()

	now := time.Now()
	d := &dashboard{
		h:         h,
		cfg:       cfg,
		store:     telemetry.NewStore(now),
		renderer:  render.New(h.Display()),
		leds:      leds.New(h.Strip()),
		feed:      make(chan []byte, 64),
		stop:      make(chan struct{}),
		lastStats: now,
	}
	d.machine = mode.New(cfg.SignalTimeout, d)

	h.Logger().WriteLineString("racedash " + buildinfo.Short() + " up")

	go d.pump()
	go d.leds.Run(cfg.LEDInterval, d.stop)

	return d.step, d.shutdown
}

// Run starts the dashboard and blocks forever (firmware entrypoint).
func Run(h hal.HAL) {
	step, _ := New(h, Config{})
	for {
		if err := step(); err != nil {
			h.Logger().WriteLineString("step: " + err.Error())
		}
		time.Sleep(16 * time.Millisecond)
	}
}

// step is one main-cycle pass: ingest available bytes, advance the mode
// machine, render, publish LED desired state. Each stage sees fully updated
// upstream state.
func (d *dashboard) step() error {
	now := time.Now()

	// Bounded drain: whatever the pump buffered, up to a fixed chunk budget.
drain:
	for i := 0; i < 64; i++ {
		select {
		case p := <-d.feed:
			d.store.Ingest(p, now)
		default:
			break drain
		}
	}

	rec := d.store.Latest()
	m := d.machine.Step(mode.Input{
		Silence:    d.store.SinceLastByte(now),
		Frames:     d.store.Frames(),
		PitLimiter: rec.PitLimiter,
	})

	d.renderer.Render(now, rec, m)

	target := leds.TargetLit(rec.EngineSpeed, rec.RevReference,
		d.cfg.RevStartPct, d.cfg.RevEndPct, d.h.Strip().Len())
	d.leds.SetDesired(target, rec.Flags(), m == mode.SignalLost)

	if now.Sub(d.lastStats) >= d.cfg.StatsInterval {
		d.lastStats = now
		accepted, dropped := d.store.Stats()
		d.h.Logger().WriteLineString("feed: " +
			strconv.FormatUint(accepted, 10) + " frames, " +
			strconv.FormatUint(dropped, 10) + " dropped")
	}
	return nil
}

func (d *dashboard) shutdown() {
	d.once.Do(func() { close(d.stop) })
}

// pump blocks on the serial device and hands byte chunks to the main cycle.
func (d *dashboard) pump() {
	buf := make([]byte, 256)
	for {
		select {
		case <-d.stop:
			return
		default:
		}
		n, _ := d.h.Serial().Read(buf)
		if n > 0 {
			p := make([]byte, n)
			copy(p, buf[:n])
			select {
			case d.feed <- p:
			case <-d.stop:
				return
			}
		}
		// An empty read must not spin: some Serial backends return (0, nil)
		// when idle instead of blocking.
		if n == 0 {
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// mode.Actions: edge-triggered effects, each firing once per transition.

func (d *dashboard) EnterSignalLost() {
	d.renderer.InvalidateAll()
	d.h.Logger().WriteLineString("mode: signal lost")
}

func (d *dashboard) LeaveSignalLost() {
	d.renderer.InvalidateAll()
	d.leds.RequestClear()
	d.h.Logger().WriteLineString("mode: signal recovered")
}

func (d *dashboard) EnterPitLimiter() {
	d.h.Display().Invert(true)
	d.renderer.InvalidateAll()
	d.h.Logger().WriteLineString("mode: pit limiter on")
}

func (d *dashboard) LeavePitLimiter() {
	d.h.Display().Invert(false)
	d.renderer.InvalidateAll()
	d.h.Logger().WriteLineString("mode: pit limiter off")
}
