package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/cardscroller/pkg/cards"
	"github.com/go-drift/cardscroller/pkg/graphics"
)

var background = graphics.RGB(0x10, 0x10, 0x14)

// Draw renders the current frame and the status line.
func (h *Host) Draw() {
	h.screen.Clear()
	cols, rows := h.screen.Size()
	fill(h.screen, 0, 0, cols, rows-1, background)

	if h.scroller.Ready() {
		geometry := h.scroller.Geometry()
		window := h.scroller.Window(false)
		for i := window.Last; i >= window.First; i-- {
			if i >= len(geometry) || h.hidden[i] {
				continue
			}
			h.drawCard(i, geometry[i], rows-1)
		}
	}

	h.drawStatus(cols, rows-1)
	h.screen.Show()
}

func (h *Host) drawCard(index int, g cards.Geometry, maxRow int) {
	l := h.scroller.Layout()
	frame := l.Frame(index).Translate(0, g.Displacement+h.extraOffset(index)-h.scroller.Offset())
	card := h.scroller.Cards()[index]

	face := graphics.CardColor(index).WithAlpha(g.Opacity).Over(background)
	footer := graphics.CardColor(index).WithAlpha(0.55).Over(graphics.ColorBlack).WithAlpha(g.Opacity).Over(background)

	body, footerRect := frame.SplitTop(frame.Height() - l.FooterHeight)
	left, right := h.cols(frame)
	top, mid := h.rows(body)
	_, bottom := h.rows(footerRect)
	fill(h.screen, left, max(top, 0), right, min(mid, maxRow), face)
	fill(h.screen, left, max(mid, 0), right, min(bottom, maxRow), footer)

	textStyle := tcell.StyleDefault.Background(tcellColor(footer)).Foreground(tcell.ColorWhite)
	if mid >= 0 && mid < maxRow {
		drawText(h.screen, left+2, mid, right-1, card.Title, textStyle.Bold(true))
	}
	if mid+1 >= 0 && mid+1 < maxRow && card.Subtitle != "" {
		drawText(h.screen, left+2, mid+1, right-1, card.Subtitle, textStyle)
	}
}

func (h *Host) cols(r graphics.Rect) (left, right int) {
	return int(math.Floor(r.Left / h.scale.X)), int(math.Ceil(r.Right / h.scale.X))
}

// rows maps a rect to the half-open row range it covers.
func (h *Host) rows(r graphics.Rect) (top, bottom int) {
	return int(math.Floor(r.Top / h.scale.Y)), int(math.Ceil(r.Bottom / h.scale.Y))
}

func (h *Host) drawStatus(cols, row int) {
	s := h.scroller
	window := s.Window(false)
	line := fmt.Sprintf(" offset %.0f  top %d  window [%d,%d]  pulses %d  flipped %d  drop %s  %s",
		s.Offset(), s.TopCard(), window.First, window.Last, h.pulses, h.lastFlips, s.DropState(), h.status)
	style := tcell.StyleDefault.Reverse(true)
	fill(h.screen, 0, row, cols, row+1, graphics.ColorBlack)
	drawText(h.screen, 0, row, cols, line, style)
}

func fill(screen tcell.Screen, left, top, right, bottom int, c graphics.Color) {
	style := tcell.StyleDefault.Background(tcellColor(c))
	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func drawText(screen tcell.Screen, x, y, limit int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= limit {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func tcellColor(c graphics.Color) tcell.Color {
	r, g, b, _ := c.Components()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
