package cards

import (
	"fmt"
	"strings"

	"github.com/go-drift/cardscroller/pkg/errors"
	"github.com/go-drift/cardscroller/pkg/graphics"
)

// LayoutMode selects how far apart consecutive cards rest.
type LayoutMode int

const (
	// Stacked overlaps cards heavily; only each card's footer is exposed.
	Stacked LayoutMode = iota
	// Sequential places cards end to end with no overlap.
	Sequential
)

func (m LayoutMode) String() string {
	switch m {
	case Stacked:
		return "stacked"
	case Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("LayoutMode(%d)", int(m))
	}
}

// ParseLayoutMode parses "stacked" or "sequential" (case-insensitive).
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stacked":
		return Stacked, nil
	case "sequential":
		return Sequential, nil
	}
	return Stacked, errors.Newf("cards.ParseLayoutMode", errors.KindConfig, "unknown layout %q: %w", s, errors.ErrInvalidParameter)
}

// Layout describes the resting geometry of a card set.
// The zero Layout is not Ready.
type Layout struct {
	Mode            LayoutMode
	CardWidth       float64
	CardHeight      float64
	TopPadding      float64
	SidePadding     float64
	FooterHeight    float64
	SeparatorHeight float64
}

// NewLayout derives card dimensions from the viewport width: cards fill the
// width less side padding, with a 16:9 image area above the footer.
func NewLayout(cfg Config, viewportWidth float64) Layout {
	l := Layout{
		Mode:            cfg.Layout,
		TopPadding:      cfg.TopPadding,
		SidePadding:     cfg.SidePadding,
		FooterHeight:    cfg.FooterHeight,
		SeparatorHeight: cfg.SeparatorHeight,
	}
	l.CardWidth = viewportWidth - 2*cfg.SidePadding
	if l.CardWidth > 0 {
		l.CardHeight = 9*l.CardWidth/16 + cfg.SeparatorHeight + cfg.FooterHeight
	}
	return l
}

// Pitch is the vertical distance between consecutive resting cards.
func (l Layout) Pitch() float64 {
	if l.Mode == Sequential {
		return l.CardHeight
	}
	return l.FooterHeight + l.SeparatorHeight
}

// Ready reports whether the dimensions allow geometry to be computed.
func (l Layout) Ready() bool {
	return l.CardWidth > 0 && l.CardHeight > 0 && l.Pitch() > 0
}

// BaseY is the untransformed top edge of card index.
func (l Layout) BaseY(index int) float64 {
	return l.TopPadding + float64(index)*l.Pitch()
}

// RestingOffset is the scroll offset that puts card index at the top.
func (l Layout) RestingOffset(index int) float64 {
	return l.BaseY(index) - l.TopPadding
}

// Frame is the untransformed rect of card index in content coordinates.
func (l Layout) Frame(index int) graphics.Rect {
	return graphics.RectFromLTWH(l.SidePadding, l.BaseY(index), l.CardWidth, l.CardHeight)
}

// Frames returns the resting frames of count cards.
func (l Layout) Frames(count int) []graphics.Rect {
	frames := make([]graphics.Rect, count)
	for i := range frames {
		frames[i] = l.Frame(i)
	}
	return frames
}

// ContentHeight is the scrollable height needed so that every card but the
// last can scroll off the top.
func (l Layout) ContentHeight(count int, viewportHeight float64) float64 {
	if count == 0 {
		return 0
	}
	bottomPad := viewportHeight - (l.CardHeight + l.TopPadding)
	return l.CardHeight + l.Pitch()*float64(count-1) + bottomPad
}

// MaxOffset bounds overscroll at the bottom so that half a pitch of the last
// card stays in view.
func (l Layout) MaxOffset(count int) float64 {
	if count == 0 {
		return 0
	}
	return l.Pitch()*float64(count-1) + l.Pitch()/2
}
