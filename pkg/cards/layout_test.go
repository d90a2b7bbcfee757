package cards

import (
	"math"
	"testing"
)

func TestLayout_Pitch(t *testing.T) {
	cfg := DefaultConfig()
	stacked := NewLayout(cfg, 336)
	if stacked.Pitch() != 75 {
		t.Errorf("stacked pitch = %v, want 75", stacked.Pitch())
	}
	if want := 9*336.0/16 + 75; stacked.CardHeight != want {
		t.Errorf("card height = %v, want %v", stacked.CardHeight, want)
	}

	cfg.Layout = Sequential
	seq := NewLayout(cfg, 336)
	if seq.Pitch() != seq.CardHeight {
		t.Errorf("sequential pitch = %v, want card height %v", seq.Pitch(), seq.CardHeight)
	}
}

func TestLayout_BaseYAndFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopPadding = 12
	cfg.SidePadding = 8
	l := NewLayout(cfg, 336)

	if got := l.BaseY(4); got != 12+4*75 {
		t.Errorf("BaseY(4) = %v", got)
	}
	if got := l.RestingOffset(4); got != 300 {
		t.Errorf("RestingOffset(4) = %v, want 300", got)
	}
	f := l.Frame(2)
	if f.Left != 8 || f.Top != 162 || f.Width() != 320 || math.Abs(f.Height()-l.CardHeight) > 1e-12 {
		t.Errorf("Frame(2) = %+v", f)
	}
	if len(l.Frames(5)) != 5 {
		t.Error("Frames(5) should return five rects")
	}
}

func TestLayout_Ready(t *testing.T) {
	cfg := DefaultConfig()
	if NewLayout(cfg, 0).Ready() {
		t.Error("zero width should not be ready")
	}
	cfg.SidePadding = 200
	if NewLayout(cfg, 320).Ready() {
		t.Error("padding wider than the viewport should not be ready")
	}
	if (Layout{}).Ready() {
		t.Error("zero layout should not be ready")
	}
}

func TestLayout_ContentAndMaxOffset(t *testing.T) {
	l := NewLayout(DefaultConfig(), 320)
	if l.ContentHeight(0, 600) != 0 || l.MaxOffset(0) != 0 {
		t.Error("empty card set should have no content")
	}
	want := l.CardHeight + 75*9 + (600 - l.CardHeight)
	if got := l.ContentHeight(10, 600); math.Abs(got-want) > 1e-9 {
		t.Errorf("ContentHeight = %v, want %v", got, want)
	}
	if got := l.MaxOffset(10); got != 75*9+37.5 {
		t.Errorf("MaxOffset = %v", got)
	}
}

func TestParseLayoutMode(t *testing.T) {
	tests := []struct {
		in      string
		want    LayoutMode
		wantErr bool
	}{
		{"stacked", Stacked, false},
		{"Sequential", Sequential, false},
		{"", Stacked, false},
		{"grid", Stacked, true},
	}
	for _, tt := range tests {
		got, err := ParseLayoutMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLayoutMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if Sequential.String() != "sequential" || LayoutMode(7).String() != "LayoutMode(7)" {
		t.Error("unexpected LayoutMode strings")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	mutations := map[string]func(*Config){
		"zero power":        func(c *Config) { c.RolloffPower = 0 },
		"negative constant": func(c *Config) { c.RolloffConstant = -3 },
		"nan padding":       func(c *Config) { c.TopPadding = math.NaN() },
		"negative pad":      func(c *Config) { c.VisibilityPad = -1 },
		"zero pitch":        func(c *Config) { c.FooterHeight, c.SeparatorHeight = 0, 0 },
		"bad layout":        func(c *Config) { c.Layout = LayoutMode(9) },
	}
	for name, mutate := range mutations {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
