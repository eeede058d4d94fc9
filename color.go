package gl2d

import "image/color"

// Color is an 8-bit-per-channel RGBA draw color.
type Color struct {
	R, G, B, A uint8
}

// Packed returns the color as a packed 0xAARRGGBB key. The executor
// compares packed values to decide whether a color change must be
// re-issued, so two colors are interchangeable exactly when their
// packed keys are equal.
func (c Color) Packed() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Color converts to the standard library color type.
func (c Color) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Common draw colors.
var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)
