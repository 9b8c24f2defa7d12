package telemetry

import (
	"strconv"
	"strings"
)

const (
	// maxLineBytes caps the line buffer; longer unterminated input is
	// discarded rather than allowed to grow.
	maxLineBytes = 1024

	// maxFields bounds tokenization; anything past this is ignored.
	maxFields = 24

	// minFields is the required leading field count for a valid frame.
	minFields = 13
)

// FeedStatus reports what one input byte produced.
type FeedStatus uint8

const (
	FeedNone    FeedStatus = iota // mid-line, nothing decoded
	FeedFrame                     // a complete record was decoded
	FeedDropped                   // a line terminated but did not parse
)

// Decoder accumulates feed bytes into lines and decodes complete frames.
// Malformed input never surfaces as an error: a bad line is dropped and the
// previous record stays in effect upstream.
type Decoder struct {
	buf      [maxLineBytes]byte
	n        int
	overflow bool
}

// Feed consumes one byte. When the byte terminates a line, the line is either
// decoded into a Record (FeedFrame) or discarded (FeedDropped).
func (d *Decoder) Feed(b byte) (Record, FeedStatus) {
	if b == '\n' {
		line := d.buf[:d.n]
		over := d.overflow
		empty := d.n == 0
		d.n = 0
		d.overflow = false
		if over || empty {
			return Record{}, FeedDropped
		}
		return parseLine(string(line))
	}
	if d.n >= maxLineBytes {
		d.overflow = true
		return Record{}, FeedNone
	}
	d.buf[d.n] = b
	d.n++
	return Record{}, FeedNone
}

func parseLine(line string) (Record, FeedStatus) {
	tokens := strings.SplitN(line, ",", maxFields)
	if len(tokens) < minFields {
		return Record{}, FeedDropped
	}

	var v [maxFields]int32
	for i, tok := range tokens {
		n, ok := parseNumber(tok)
		if !ok {
			if i < minFields {
				return Record{}, FeedDropped
			}
			continue // optional field, tolerated independently
		}
		v[i] = n
	}

	rec := Record{
		EngineSpeed:  v[0],
		Speed:        v[1],
		Gear:         int8(v[2]),
		Position:     int16(v[3]),
		LapMillis:    v[5],
		BestMillis:   v[6],
		DeltaMillis:  v[7],
		RevReference: v[8],
		FlagYellow:   v[9] != 0,
		FlagBlue:     v[10] != 0,
		FlagRed:      v[11] != 0,
		FlagGreen:    v[12] != 0,
		Lap:          int16(v[13]),
		TotalLaps:    int16(v[14]),
		TyreTemps:    [4]int16{int16(v[15]), int16(v[16]), int16(v[17]), int16(v[18])},
		PitLimiter:   v[19] != 0,
	}
	return rec, FeedFrame
}

// parseNumber parses a field as float when dotted (truncating) or integer
// otherwise, tolerating surrounding whitespace and CR noise.
func parseNumber(tok string) (int32, bool) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, false
	}
	if strings.ContainsRune(tok, '.') {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, false
		}
		return int32(f), true
	}
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}
