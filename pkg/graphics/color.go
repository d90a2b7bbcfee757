package graphics

import (
	"image/color"
	"math"
)

const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return Color(0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Components returns the red, green, blue and alpha bytes.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// Alpha returns the alpha component as a value from 0.0 (transparent) to 1.0 (opaque).
func (c Color) Alpha() float64 {
	return float64(uint8(c>>24)) / maxByte
}

// WithAlpha returns a copy of the color with the given alpha (0-1).
func (c Color) WithAlpha(a float64) Color {
	return Color(uint32(alpha01ToByte(a))<<24 | uint32(c)&0x00FFFFFF)
}

// Over composites c onto an opaque background, returning an opaque color.
// Terminal cells have no alpha, so faded cards are pre-blended.
func (c Color) Over(bg Color) Color {
	a := c.Alpha()
	r1, g1, b1, _ := c.Components()
	r0, g0, b0, _ := bg.Components()
	mix := func(fg, bg uint8) uint8 {
		return uint8(math.Round(float64(fg)*a + float64(bg)*(1-a)))
	}
	return RGB(mix(r1, r0), mix(g1, g0), mix(b1, b0))
}

// NRGBA converts to the image/color non-premultiplied form.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// alpha01ToByte converts a 0-1 alpha to 0-255 with proper rounding.
func alpha01ToByte(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
)

// CardPalette cycles through card face colors by index.
var CardPalette = []Color{
	RGB(0xE5, 0x73, 0x73),
	RGB(0x64, 0xB5, 0xF6),
	RGB(0x81, 0xC7, 0x84),
	RGB(0xFF, 0xB7, 0x4D),
	RGB(0xBA, 0x68, 0xC8),
	RGB(0x4D, 0xD0, 0xE1),
}

// CardColor returns the palette color for a card index.
func CardColor(index int) Color {
	if index < 0 {
		index = -index
	}
	return CardPalette[index%len(CardPalette)]
}
