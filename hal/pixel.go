package hal

import "image/color"

// PackRGB565 packs an 8-bit color into the panel's native pixel value.
// Exported so renderers composing off-device buffers share one packing.
func PackRGB565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// UnpackRGB565 expands a native pixel back to 8-bit channels, scaling each
// component over its full range.
func UnpackRGB565(p uint16) color.RGBA {
	return color.RGBA{
		R: uint8((p >> 11 & 0x1F) * 255 / 31),
		G: uint8((p >> 5 & 0x3F) * 255 / 63),
		B: uint8((p & 0x1F) * 255 / 31),
		A: 0xFF,
	}
}
