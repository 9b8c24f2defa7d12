// Package mode decides which of the mutually exclusive presentations is
// active: normal telemetry, signal-lost, or pit-limiter.
package mode

import "time"

type Mode uint8

const (
	Normal Mode = iota
	SignalLost
	PitLimiter
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case SignalLost:
		return "signal-lost"
	case PitLimiter:
		return "pit-limiter"
	}
	return "unknown"
}

// Input is the per-tick view of the telemetry store the machine decides on.
type Input struct {
	Silence    time.Duration // time since the last feed byte
	Frames     uint64        // decoded-frame sequence number
	PitLimiter bool          // pit-limiter flag from the latest record
}

// Actions receives edge-triggered entry/exit effects. Each fires exactly once
// per transition, never once per tick a state is held.
type Actions interface {
	EnterSignalLost()
	LeaveSignalLost()
	EnterPitLimiter()
	LeavePitLimiter()
}

type Machine struct {
	mode    Mode
	timeout time.Duration
	acts    Actions

	// frames observed when signal was declared lost; recovery requires the
	// sequence to advance, byte noise alone is not enough.
	lostAt uint64
}

func New(timeout time.Duration, acts Actions) *Machine {
	return &Machine{mode: Normal, timeout: timeout, acts: acts}
}

func (m *Machine) Current() Mode { return m.mode }

// Step evaluates the transition rules once. Signal loss dominates the pit
// limiter: no data implies no reliable pit flag either.
func (m *Machine) Step(in Input) Mode {
	switch m.mode {
	case Normal:
		if in.Silence > m.timeout {
			m.toSignalLost(in)
		} else if in.PitLimiter {
			m.mode = PitLimiter
			m.acts.EnterPitLimiter()
		}
	case PitLimiter:
		if in.Silence > m.timeout {
			m.acts.LeavePitLimiter()
			m.toSignalLost(in)
		} else if !in.PitLimiter {
			m.mode = Normal
			m.acts.LeavePitLimiter()
		}
	case SignalLost:
		if in.Frames > m.lostAt {
			m.mode = Normal
			m.acts.LeaveSignalLost()
		}
	}
	return m.mode
}

func (m *Machine) toSignalLost(in Input) {
	m.mode = SignalLost
	m.lostAt = in.Frames
	m.acts.EnterSignalLost()
}
