package telemetry

// Record is one decoded telemetry frame.
//
// The wire format is a comma-separated line; the first 13 fields are required,
// the rest are optional and default to zero when the feed omits them:
//
//	engine-speed, vehicle-speed, gear, position, (reserved), lap-ms, best-ms,
//	delta-ms, rev-reference, flag-yellow, flag-blue, flag-red, flag-green,
//	[current-lap, total-laps, tyre-FL, tyre-FR, tyre-RL, tyre-RR, pit-limiter]
type Record struct {
	EngineSpeed  int32 // rpm
	Speed        int32 // vehicle speed
	Gear         int8  // negative = reverse, 0 = neutral
	Position     int16 // track position rank
	LapMillis    int32 // current lap elapsed, ms
	BestMillis   int32 // best lap, ms
	DeltaMillis  int32 // delta to best, ms; may be negative
	RevReference int32 // rev-limit reference for the rev bar

	FlagYellow bool
	FlagBlue   bool
	FlagRed    bool
	FlagGreen  bool

	Lap        int16    // current lap index
	TotalLaps  int16    // 0 = unknown/unlimited
	TyreTemps  [4]int16 // FL, FR, RL, RR
	PitLimiter bool
}

// FlagMask packs the track-condition flags into controller priority order.
type FlagMask uint8

const (
	FlagMaskGreen FlagMask = 1 << iota
	FlagMaskBlue
	FlagMaskYellow
	FlagMaskRed
)

// Flags returns the record's track-condition flags as a mask.
func (r Record) Flags() FlagMask {
	var m FlagMask
	if r.FlagGreen {
		m |= FlagMaskGreen
	}
	if r.FlagBlue {
		m |= FlagMaskBlue
	}
	if r.FlagYellow {
		m |= FlagMaskYellow
	}
	if r.FlagRed {
		m |= FlagMaskRed
	}
	return m
}
