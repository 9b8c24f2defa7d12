//go:build !tinygo

package hal

import (
	"image/color"

	"racedash/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const ledBarHeight = 22

// RunWindow starts a desktop window that shows the panel framebuffer with the
// simulated LED bar painted underneath, and drives the main cycle at 60 TPS.
// It blocks until the window closes.
func RunWindow(h HAL, step func() error) error {
	hh, ok := h.(*hostHAL)
	if !ok {
		return ErrNotImplemented
	}

	g := &hostGame{h: hh, step: step}
	ebiten.SetWindowTitle("racedash (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(hh.disp.width*2, (hh.disp.height+ledBarHeight)*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h    *hostHAL
	img  *ebiten.Image
	pix  []byte
	leds []color.RGBA
	step func() error
}

func (g *hostGame) Update() error {
	if g.step != nil {
		return g.step()
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	disp := g.h.disp
	w := disp.width
	h := disp.height + ledBarHeight

	if g.img == nil {
		g.img = ebiten.NewImage(w, h)
		g.pix = make([]byte, w*h*4)
		g.leds = make([]color.RGBA, g.h.strip.Len())
	}

	disp.snapshotRGBA(g.pix[:w*disp.height*4])
	g.h.strip.snapshot(g.leds)
	g.drawLEDBar(w, disp.height)

	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *hostGame) drawLEDBar(w, top int) {
	n := len(g.leds)
	if n == 0 {
		return
	}
	cell := w / n
	for y := top; y < top+ledBarHeight; y++ {
		for x := 0; x < w; x++ {
			i := x / cell
			if i >= n {
				i = n - 1
			}
			c := g.leds[i]
			// A 2px gutter between LEDs keeps neighbors distinguishable.
			off := (y*w + x) * 4
			if x%cell < 2 || y < top+2 {
				g.pix[off], g.pix[off+1], g.pix[off+2], g.pix[off+3] = 0x10, 0x10, 0x10, 0xFF
				continue
			}
			g.pix[off], g.pix[off+1], g.pix[off+2], g.pix[off+3] = c.R, c.G, c.B, 0xFF
		}
	}
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.disp.width, g.h.disp.height + ledBarHeight
}
