package graphics

import (
	"image/color"
	"testing"
)

func TestColor_Components(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	r, g, b, a := c.Components()
	if r != 0x12 || g != 0x34 || b != 0x56 || a != 0xFF {
		t.Errorf("Components() = %x %x %x %x", r, g, b, a)
	}
	if got := c.NRGBA(); got != (color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF}) {
		t.Errorf("NRGBA() = %+v", got)
	}
}

func TestColor_WithAlpha(t *testing.T) {
	tests := []struct {
		alpha float64
		want  uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{-3, 0},
		{7, 255},
	}
	for _, tt := range tests {
		_, _, _, a := ColorWhite.WithAlpha(tt.alpha).Components()
		if a != tt.want {
			t.Errorf("WithAlpha(%v) alpha = %d, want %d", tt.alpha, a, tt.want)
		}
	}
}

func TestColor_Over(t *testing.T) {
	if got := ColorWhite.Over(ColorBlack); got != ColorWhite {
		t.Errorf("opaque over = %x", uint32(got))
	}
	if got := ColorWhite.WithAlpha(0).Over(ColorBlack); got != ColorBlack {
		t.Errorf("transparent over = %x", uint32(got))
	}
	r, _, _, a := ColorWhite.WithAlpha(0.5).Over(ColorBlack).Components()
	if r != 128 || a != 255 {
		t.Errorf("half over black = %d alpha %d", r, a)
	}
}

func TestCardColor(t *testing.T) {
	if CardColor(0) != CardColor(len(CardPalette)) {
		t.Error("palette should cycle")
	}
	if CardColor(-1) != CardColor(1) {
		t.Error("negative indexes should not panic")
	}
}
