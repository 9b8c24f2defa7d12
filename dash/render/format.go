package render

import (
	"fmt"
	"strconv"
)

// timePlaceholder stands in for "no time recorded yet" (non-positive raw
// values) instead of a misleading 0:00.000.
const timePlaceholder = "-:--.---"

// deltaLimitMillis clamps the delta display range to +/-99.999s.
const deltaLimitMillis = 99999

// GearText renders a signed gear: negative is reverse, zero is neutral.
func GearText(g int8) string {
	switch {
	case g < 0:
		return "R"
	case g == 0:
		return "N"
	default:
		return strconv.Itoa(int(g))
	}
}

// FormatLapTime renders milliseconds as m:ss.mmm.
func FormatLapTime(ms int32) string {
	if ms <= 0 {
		return timePlaceholder
	}
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, (ms%60000)/1000, ms%1000)
}

// FormatDelta renders a signed delta clamped to the display range. The
// neutral prefix for an exact zero is '=' (the 7-bit fonts carry no plus-minus
// glyph). Sign encodes gaining/losing; the caller colors accordingly.
func FormatDelta(ms int32) string {
	// Clamp on the signed value first; negating math.MinInt32 overflows.
	if ms > deltaLimitMillis {
		ms = deltaLimitMillis
	} else if ms < -deltaLimitMillis {
		ms = -deltaLimitMillis
	}
	prefix := "="
	if ms > 0 {
		prefix = "+"
	} else if ms < 0 {
		prefix = "-"
		ms = -ms
	}
	return fmt.Sprintf("%s%d.%03d", prefix, ms/1000, ms%1000)
}

// PositionText renders a track position rank.
func PositionText(p int16) string {
	if p <= 0 {
		return "P-"
	}
	return "P" + strconv.Itoa(int(p))
}
