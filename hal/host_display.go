//go:build !tinygo

package hal

import (
	"image/color"
	"sync"
)

type hostDisplay struct {
	mu       sync.Mutex
	width    int
	height   int
	stride   int
	buf      []byte
	inverted bool
}

func newHostDisplay(width, height int) *hostDisplay {
	stride := width * 2
	return &hostDisplay{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (d *hostDisplay) Size() (w, h int) { return d.width, d.height }

func (d *hostDisplay) FillRect(x, y, w, h int, c color.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()

	x0 := clampInt(x, 0, d.width)
	y0 := clampInt(y, 0, d.height)
	x1 := clampInt(x+w, 0, d.width)
	y1 := clampInt(y+h, 0, d.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	pixel := PackRGB565(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for py := y0; py < y1; py++ {
		row := py * d.stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			d.buf[off] = lo
			d.buf[off+1] = hi
		}
	}
}

func (d *hostDisplay) Blit(x, y, w, h int, pix []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	srcStride := w * 2
	for row := 0; row < h; row++ {
		py := y + row
		if py < 0 || py >= d.height {
			continue
		}
		src := row * srcStride
		if src+srcStride > len(pix) {
			break
		}
		for col := 0; col < w; col++ {
			px := x + col
			if px < 0 || px >= d.width {
				continue
			}
			off := py*d.stride + px*2
			d.buf[off] = pix[src+col*2]
			d.buf[off+1] = pix[src+col*2+1]
		}
	}
}

func (d *hostDisplay) Invert(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inverted = on
}

func (d *hostDisplay) Flush() error { return nil }

// snapshotRGBA converts the framebuffer into 8-bit RGBA for the window,
// applying the panel polarity the way INVON does (bitwise complement).
func (d *hostDisplay) snapshotRGBA(dst []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := 0; i+1 < len(d.buf) && i/2*4+3 < len(dst); i += 2 {
		p := uint16(d.buf[i]) | uint16(d.buf[i+1])<<8
		if d.inverted {
			p = ^p
		}
		c := UnpackRGB565(p)
		j := (i / 2) * 4
		dst[j+0] = c.R
		dst[j+1] = c.G
		dst[j+2] = c.B
		dst[j+3] = 0xFF
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
