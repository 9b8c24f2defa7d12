package render

import (
	"image/color"

	"racedash/hal"

	"tinygo.org/x/tinyfont"
)

// canvas is an off-device RGB565 pixel buffer sized to one widget's bounding
// box. Widgets are composed here and transferred to the display in a single
// blit, so the panel never shows a partially drawn widget.
//
// canvas implements drivers.Displayer so tinyfont can render into it.
type canvas struct {
	w, h int16
	pix  []byte
}

// newCanvas returns a canvas viewing the first w*h*2 bytes of scratch.
func newCanvas(scratch []byte, w, h int) canvas {
	return canvas{w: int16(w), h: int16(h), pix: scratch[:w*h*2]}
}

func (c canvas) Size() (x, y int16) { return c.w, c.h }

func (c canvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	pixel := hal.PackRGB565(col)
	off := (int(y)*int(c.w) + int(x)) * 2
	c.pix[off] = byte(pixel)
	c.pix[off+1] = byte(pixel >> 8)
}

func (c canvas) Display() error { return nil }

func (c canvas) fill(col color.RGBA) {
	pixel := hal.PackRGB565(col)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(c.pix); i += 2 {
		c.pix[i] = lo
		c.pix[i+1] = hi
	}
}

// circle draws a midpoint-algorithm outline, 2px thick so it reads at panel
// distance.
func (c canvas) circle(cx, cy, r int16, col color.RGBA) {
	x := r
	y := int16(0)
	err := int16(1) - r
	for x >= y {
		c.plot8(cx, cy, x, y, col)
		c.plot8(cx, cy, x-1, y, col)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func (c canvas) plot8(cx, cy, x, y int16, col color.RGBA) {
	c.SetPixel(cx+x, cy+y, col)
	c.SetPixel(cx+y, cy+x, col)
	c.SetPixel(cx-y, cy+x, col)
	c.SetPixel(cx-x, cy+y, col)
	c.SetPixel(cx-x, cy-y, col)
	c.SetPixel(cx-y, cy-x, col)
	c.SetPixel(cx+y, cy-x, col)
	c.SetPixel(cx+x, cy-y, col)
}

// fontSpec pairs a font with its cell metrics, the way terminal rendering
// configures FontHeight/FontOffset.
type fontSpec struct {
	font   tinyfont.Fonter
	height int16 // cell height
	offset int16 // baseline distance from cell top
}

// writeCentered draws s centered in the canvas, positioned from measured
// glyph bounds rather than assumed character cells.
func (c canvas) writeCentered(f fontSpec, s string, col color.RGBA) {
	_, outboxWidth := tinyfont.LineWidth(f.font, s)
	x := (c.w - int16(outboxWidth)) / 2
	if x < marginPx {
		x = marginPx
	}
	y := (c.h-f.height)/2 + f.offset
	tinyfont.WriteLine(c, f.font, x, y, s, col)
}
