//go:build tinygo

package hal

import (
	"errors"
	"image/color"
	"machine"
	"time"
)

// ili9341 drives a 320x240 ILI9341-class panel over raw SPI. The panel wants
// big-endian RGB565; internal buffers are little-endian, so pushPixels swaps.
type ili9341 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	txBuf []byte
}

func initILI9341() (*ili9341, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	})

	lcd := &ili9341{
		spi:   *machine.SPI1,
		cs:    machine.GP13,
		dc:    machine.GP14,
		rst:   machine.GP15,
		txBuf: make([]byte, 2048),
	}

	lcd.cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.dc.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.rst.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.cs.High()
	lcd.dc.High()
	lcd.rst.High()

	lcd.reset()
	lcd.init()

	return lcd, nil
}

func (d *ili9341) reset() {
	d.rst.Low()
	time.Sleep(64 * time.Millisecond)
	d.rst.High()
	time.Sleep(140 * time.Millisecond)
}

func (d *ili9341) init() {
	d.cmd(0xC0, 0x23)       // PWCTRL1
	d.cmd(0xC1, 0x10)       // PWCTRL2
	d.cmd(0xC5, 0x3E, 0x28) // VMCTRL1

	// Pixel format: 16bpp.
	d.cmd(0x3A, 0x55) // COLMOD

	d.cmd(0xB1, 0x00, 0x18)       // FRMCTRL1
	d.cmd(0xB6, 0x08, 0x82, 0x27) // DISCTRL

	// Memory access control: landscape + BGR panel order.
	d.cmd(0x36, 0x20|0x08) // MV|BGR

	d.cmd(0x11) // SLPOUT
	time.Sleep(120 * time.Millisecond)
	d.cmd(0x29) // DISPON
}

func (d *ili9341) cmd(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

func (d *ili9341) setWindow(x0, y0, x1, y1 uint16) {
	d.cmd(0x2A, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)) // CASET
	d.cmd(0x2B, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)) // PASET
	d.cmd(0x2C)                                               // RAMWR
}

// pushPixels streams little-endian RGB565 pixels to an already-open RAMWR
// window, swapping to the panel's byte order.
func (d *ili9341) pushPixels(pix []byte) {
	d.cs.Low()
	d.dc.High()
	n := 0
	for i := 0; i+1 < len(pix); i += 2 {
		d.txBuf[n] = pix[i+1]
		d.txBuf[n+1] = pix[i]
		n += 2
		if n == len(d.txBuf) {
			d.spi.Tx(d.txBuf[:n], nil)
			n = 0
		}
	}
	if n > 0 {
		d.spi.Tx(d.txBuf[:n], nil)
	}
	d.cs.High()
}

func (d *ili9341) Size() (w, h int) { return 320, 240 }

func (d *ili9341) FillRect(x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	d.setWindow(uint16(x), uint16(y), uint16(x+w-1), uint16(y+h-1))

	pixel := PackRGB565(c)
	hi := byte(pixel >> 8)
	lo := byte(pixel)
	for i := 0; i+1 < len(d.txBuf); i += 2 {
		d.txBuf[i] = hi
		d.txBuf[i+1] = lo
	}

	d.cs.Low()
	d.dc.High()
	remain := w * h * 2
	for remain > 0 {
		n := remain
		if n > len(d.txBuf) {
			n = len(d.txBuf)
		}
		d.spi.Tx(d.txBuf[:n], nil)
		remain -= n
	}
	d.cs.High()
}

func (d *ili9341) Blit(x, y, w, h int, pix []byte) {
	if w <= 0 || h <= 0 || len(pix) < w*h*2 {
		return
	}
	d.setWindow(uint16(x), uint16(y), uint16(x+w-1), uint16(y+h-1))
	d.pushPixels(pix[:w*h*2])
}

func (d *ili9341) Invert(on bool) {
	if on {
		d.cmd(0x21) // INVON
	} else {
		d.cmd(0x20) // INVOFF
	}
}

func (d *ili9341) Flush() error { return nil }

// nullDisplay keeps the dashboard alive when the panel fails to init.
type nullDisplay struct{}

func (nullDisplay) Size() (w, h int)                      { return 320, 240 }
func (nullDisplay) FillRect(x, y, w, h int, c color.RGBA) {}
func (nullDisplay) Blit(x, y, w, h int, pix []byte)       {}
func (nullDisplay) Invert(on bool)                        {}
func (nullDisplay) Flush() error                          { return nil }
