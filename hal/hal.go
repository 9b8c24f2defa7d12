package hal

import (
	"errors"
	"image/color"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
}

var ErrNotImplemented = errors.New("not implemented")

// Display is a fixed-size RGB565 panel addressed in device pixel coordinates.
//
// Blit expects w*h little-endian RGB565 pixels with a stride of w*2 bytes.
// Invert flips the panel's color polarity (INVON/INVOFF class operation);
// it affects the whole panel, not individual pixels.
type Display interface {
	Size() (w, h int)
	FillRect(x, y, w, h int, c color.RGBA)
	Blit(x, y, w, h int, pix []byte)
	Invert(on bool)
	Flush() error
}

// LEDStrip is a fixed-length addressable strip. Writes take effect on Show.
type LEDStrip interface {
	Len() int
	SetColor(i int, c color.RGBA)
	Show() error
}

// Serial delivers raw telemetry feed bytes. Read blocks until data arrives.
type Serial interface {
	Read(p []byte) (int, error)
}

// HAL provides the only contact point between the dashboard and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Strip() LEDStrip
	Serial() Serial
}
