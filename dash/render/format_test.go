package render

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

func TestGearText(t *testing.T) {
	cases := []struct {
		gear int8
		want string
	}{
		{-1, "R"},
		{-2, "R"},
		{0, "N"},
		{1, "1"},
		{3, "3"},
		{7, "7"},
	}
	for _, c := range cases {
		if got := GearText(c.gear); got != c.want {
			t.Fatalf("GearText(%d)=%q, want %q", c.gear, got, c.want)
		}
	}
}

func TestFormatLapTime(t *testing.T) {
	cases := []struct {
		ms   int32
		want string
	}{
		{65000, "1:05.000"},
		{64000, "1:04.000"},
		{31257, "0:31.257"},
		{5999999, "99:59.999"},
		{0, "-:--.---"},
		{-100, "-:--.---"},
	}
	for _, c := range cases {
		if got := FormatLapTime(c.ms); got != c.want {
			t.Fatalf("FormatLapTime(%d)=%q, want %q", c.ms, got, c.want)
		}
	}
}

// parseLapTime reverses FormatLapTime's m:ss.mmm for the round-trip check.
func parseLapTime(t *testing.T, s string) int32 {
	t.Helper()
	colon := strings.IndexByte(s, ':')
	dot := strings.IndexByte(s, '.')
	if colon < 0 || dot < colon {
		t.Fatalf("bad time %q", s)
	}
	m, err1 := strconv.Atoi(s[:colon])
	sec, err2 := strconv.Atoi(s[colon+1 : dot])
	ms, err3 := strconv.Atoi(s[dot+1:])
	if err1 != nil || err2 != nil || err3 != nil {
		t.Fatalf("bad time %q", s)
	}
	return int32(m*60000 + sec*1000 + ms)
}

func TestFormatLapTimeRoundTrip(t *testing.T) {
	for ms := int32(1); ms < 6000000; ms += 997 {
		got := parseLapTime(t, FormatLapTime(ms))
		if got != ms {
			t.Fatalf("round trip %d -> %q -> %d", ms, FormatLapTime(ms), got)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	cases := []struct {
		ms   int32
		want string
	}{
		{-500, "-0.500"},
		{1500, "+1.500"},
		{0, "=0.000"},
		{-99999, "-99.999"},
		{200000, "+99.999"},        // clamped
		{-200000, "-99.999"},       // clamped
		{math.MaxInt32, "+99.999"}, // clamped at the extreme
		{math.MinInt32, "-99.999"}, // negation of the minimum must not overflow
	}
	for _, c := range cases {
		if got := FormatDelta(c.ms); got != c.want {
			t.Fatalf("FormatDelta(%d)=%q, want %q", c.ms, got, c.want)
		}
	}
}

func TestPositionText(t *testing.T) {
	if got := PositionText(2); got != "P2" {
		t.Fatalf("got %q", got)
	}
	if got := PositionText(0); got != "P-" {
		t.Fatalf("got %q", got)
	}
}
