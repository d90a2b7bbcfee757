// Package term is an interactive terminal host for the card engine. It maps
// keys, wheel and mouse drags to engine inputs, executes the engine's
// transition plans with animation controllers and draws every frame.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/cardscroller/internal/pulse"
	"github.com/go-drift/cardscroller/pkg/animation"
	"github.com/go-drift/cardscroller/pkg/cards"
	"github.com/go-drift/cardscroller/pkg/errors"
	"github.com/go-drift/cardscroller/pkg/graphics"
)

// Scale is the number of layout points covered by one terminal cell.
type Scale struct {
	X, Y float64
}

// DefaultScale keeps an 80 column terminal close to a phone-width viewport.
var DefaultScale = Scale{X: 4, Y: 16}

const (
	frameInterval  = 16 * time.Millisecond
	settleDuration = 350 * time.Millisecond

	// projection approximates how far a fling travels, in milliseconds of
	// release velocity.
	projection = 325.0
)

// Host owns a scroller and a screen. All methods run on the host's event
// thread; none are safe for concurrent use.
type Host struct {
	screen   tcell.Screen
	scroller *cards.Scroller
	scale    Scale
	sink     pulse.Sink

	settle *animation.AnimationController
	extra  map[int]*animation.AnimationController
	hidden map[int]bool

	drag      dragState
	status    string
	pulses    int
	lastFlips int
}

type dragState struct {
	active      bool
	moved       bool
	startRow    int
	startOffset float64
	lastRow     int
	lastTime    time.Time
	velocity    float64
	point       graphics.Offset
}

// New creates a host drawing to screen. The screen must already be
// initialized. sink may be nil.
func New(screen tcell.Screen, cfg cards.Config, deck []cards.Card, sink pulse.Sink) (*Host, error) {
	h := &Host{
		screen: screen,
		scale:  DefaultScale,
		sink:   sink,
		extra:  make(map[int]*animation.AnimationController),
		hidden: make(map[int]bool),
	}
	s, err := cards.NewScroller(cfg, h)
	if err != nil {
		return nil, err
	}
	h.scroller = s
	s.Configure(deck)
	h.Resize()
	return h, nil
}

// Scroller returns the engine session.
func (h *Host) Scroller() *cards.Scroller { return h.scroller }

// Status returns the text of the status line.
func (h *Host) Status() string { return h.status }

// CardSelected implements cards.Delegate.
func (h *Host) CardSelected(index int, card cards.Card) {
	h.status = fmt.Sprintf("selected %q", card.Title)
}

// ScrollMoved implements cards.Delegate.
func (h *Host) ScrollMoved(offset float64) {}

// CardsFlipped implements cards.Delegate.
func (h *Host) CardsFlipped(count int) {
	h.lastFlips = count
}

// Resize matches the viewport to the screen, keeping the last row for the
// status line.
func (h *Host) Resize() {
	cols, rows := h.screen.Size()
	size := graphics.Size{
		Width:  float64(cols) * h.scale.X,
		Height: float64(max(rows-1, 0)) * h.scale.Y,
	}
	out := h.scroller.SetViewport(size)
	if !h.scroller.Ready() {
		return
	}
	if len(out.DropIn) > 0 {
		h.runDropIn(out.DropIn)
	}
	h.scrollTo(h.scroller.Offset())
}

// Run processes events and frames until ctx is done or the user quits.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse()
	defer h.screen.DisableMouse()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	h.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !h.HandleEvent(ev) {
				return nil
			}
			h.Draw()
		case <-ticker.C:
			if animation.HasActiveTickers() {
				h.Step()
				h.Draw()
			}
		}
	}
}

// Step advances running animations by one frame.
func (h *Host) Step() {
	animation.StepTickers()
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	defer errors.Recover("term.Host.HandleEvent")

	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
		h.Resize()
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	pitch := h.scroller.Layout().Pitch()
	page := h.scroller.Viewport().Height
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyDown:
		h.fling(pitch, 1)
	case tcell.KeyUp:
		h.fling(-pitch, -1)
	case tcell.KeyPgDn:
		h.fling(page, 1)
	case tcell.KeyPgUp:
		h.fling(-page, -1)
	case tcell.KeyHome:
		h.animateTo(0)
	case tcell.KeyEnd:
		h.animateTo(h.scroller.Layout().RestingOffset(h.scroller.Len() - 1))
	case tcell.KeyEnter:
		h.tapTopCard()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'j':
			h.fling(pitch, 1)
		case 'k':
			h.fling(-pitch, -1)
		case ' ':
			h.tapTopCard()
		case 'd':
			h.toggleDrop()
		case 's':
			h.stopSettle()
			if _, err := h.scroller.StopImmediately(); err != nil {
				h.report("term.Host.StopImmediately", err)
			}
		case 'l':
			h.toggleLayout()
		}
	}
	return true
}

// fling scrolls by delta as if released at velocity, letting the engine
// pick the stop.
func (h *Host) fling(delta, velocity float64) {
	h.stopSettle()
	rel := h.scroller.EndDrag(h.scroller.Offset()+delta, velocity)
	h.animateTo(rel.Target)
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelDown != 0:
		h.fling(h.scroller.Layout().Pitch(), 1)
	case buttons&tcell.WheelUp != 0:
		h.fling(-h.scroller.Layout().Pitch(), -1)
	case buttons&tcell.Button1 != 0:
		if !h.drag.active {
			h.beginDrag(col, row)
			return
		}
		h.moveDrag(row)
	case buttons == tcell.ButtonNone && h.drag.active:
		h.endDrag()
	}
}

// contentPoint maps a cell to content coordinates at the current offset.
func (h *Host) contentPoint(col, row int) graphics.Offset {
	return graphics.Offset{
		X: (float64(col) + 0.5) * h.scale.X,
		Y: (float64(row)+0.5)*h.scale.Y + h.scroller.Offset(),
	}
}

func (h *Host) beginDrag(col, row int) {
	h.stopSettle()
	point := h.contentPoint(col, row)
	h.drag = dragState{
		active:      true,
		startRow:    row,
		startOffset: h.scroller.Offset(),
		lastRow:     row,
		lastTime:    animation.Now(),
		point:       point,
	}
	h.scroller.BeginDrag(point)
}

func (h *Host) moveDrag(row int) {
	if row == h.drag.lastRow {
		return
	}
	now := animation.Now()
	delta := float64(h.drag.lastRow-row) * h.scale.Y
	if ms := float64(now.Sub(h.drag.lastTime)) / float64(time.Millisecond); ms > 0 {
		h.drag.velocity = delta / ms
	}
	h.drag.moved = true
	h.drag.lastRow = row
	h.drag.lastTime = now
	h.scrollTo(h.drag.startOffset + float64(h.drag.startRow-row)*h.scale.Y)
}

func (h *Host) endDrag() {
	d := h.drag
	h.drag = dragState{}
	if !d.moved {
		h.tap(d.point)
		return
	}
	offset := h.scroller.Offset()
	rel := h.scroller.EndDrag(offset+d.velocity*projection, d.velocity)
	h.animateTo(rel.Target)
}

func (h *Host) tapTopCard() {
	top := h.scroller.TopCard()
	if top == cards.NoCard {
		return
	}
	frame := h.scroller.Layout().Frame(top)
	g := h.scroller.Geometry()[top]
	h.tap(graphics.Offset{X: frame.Left + 1, Y: frame.Bottom + g.Displacement - 1})
}

func (h *Host) tap(point graphics.Offset) {
	sel := h.scroller.Tap(point)
	if sel.Kind == cards.SelectScroll {
		h.status = fmt.Sprintf("bringing up %q", sel.Card.Title)
		h.animateTo(sel.Target)
	}
}

// animateTo eases the scroll offset to target and reports the settle.
func (h *Host) animateTo(target float64) {
	h.stopSettle()
	from := h.scroller.Offset()
	if from == target {
		h.settled()
		return
	}
	c := animation.NewAnimationController(from, target, settleDuration)
	c.Curve = animation.EaseOut
	c.AddListener(func() { h.scrollTo(c.Value) })
	c.OnComplete = h.settled
	h.settle = c
	c.Start()
}

func (h *Host) stopSettle() {
	if h.settle != nil {
		h.settle.Stop()
		h.settle = nil
	}
}

func (h *Host) settled() {
	h.settle = nil
	if _, err := h.scroller.Refresh(); err != nil {
		h.report("term.Host.settled", err)
	}
	h.scroller.EndDecelerating()
}

func (h *Host) scrollTo(offset float64) {
	frame, err := h.scroller.ScrollTo(offset)
	if err != nil {
		h.report("term.Host.scrollTo", err)
		return
	}
	h.pulses += len(frame.Pulses)
	pulse.Emit(h.sink, frame.Pulses)
}

func (h *Host) toggleLayout() {
	next := cards.Sequential
	if h.scroller.Layout().Mode == cards.Sequential {
		next = cards.Stacked
	}
	h.stopSettle()
	h.scroller.SetLayoutMode(next)
	h.scrollTo(h.scroller.Offset())
	h.status = "layout " + next.String()
}

func (h *Host) report(op string, err error) {
	errors.ReportError(op, err)
	h.status = err.Error()
}
