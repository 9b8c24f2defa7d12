//go:build tinygo

package hal

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

type ws2812Strip struct {
	dev    ws2812.Device
	colors []color.RGBA
}

func newWS2812Strip(pin machine.Pin, n int) *ws2812Strip {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &ws2812Strip{
		dev:    ws2812.New(pin),
		colors: make([]color.RGBA, n),
	}
}

func (s *ws2812Strip) Len() int { return len(s.colors) }

func (s *ws2812Strip) SetColor(i int, c color.RGBA) {
	if i < 0 || i >= len(s.colors) {
		return
	}
	s.colors[i] = c
}

func (s *ws2812Strip) Show() error {
	return s.dev.WriteColors(s.colors)
}
