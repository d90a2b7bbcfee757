package cards

import (
	"errors"
	"fmt"
	"testing"

	cserrors "github.com/go-drift/cardscroller/pkg/errors"
	"github.com/go-drift/cardscroller/pkg/graphics"
)

type recordingDelegate struct {
	selected []int
	moved    []float64
	flipped  []int
}

func (d *recordingDelegate) CardSelected(index int, card Card) {
	d.selected = append(d.selected, index)
}

func (d *recordingDelegate) ScrollMoved(offset float64) {
	d.moved = append(d.moved, offset)
}

func (d *recordingDelegate) CardsFlipped(count int) {
	d.flipped = append(d.flipped, count)
}

func testCards(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Card{ID: fmt.Sprintf("card-%d", i), Title: fmt.Sprintf("Card %d", i)}
	}
	return cards
}

func newTestScroller(t *testing.T, cfg Config, n int) (*Scroller, *recordingDelegate) {
	t.Helper()
	d := &recordingDelegate{}
	s, err := NewScroller(cfg, d)
	if err != nil {
		t.Fatalf("NewScroller: %v", err)
	}
	s.Configure(testCards(n))
	s.SetViewport(graphics.Size{Width: 375, Height: 667})
	return s, d
}

func mustScroll(t *testing.T, s *Scroller, offset float64) Frame {
	t.Helper()
	f, err := s.ScrollTo(offset)
	if err != nil {
		t.Fatalf("ScrollTo(%v): %v", offset, err)
	}
	return f
}

func TestScroller_InitialWindow(t *testing.T) {
	s, d := newTestScroller(t, DefaultConfig(), 12)
	if s.Layout().Pitch() != 75 {
		t.Fatalf("pitch = %v, want 75", s.Layout().Pitch())
	}
	f := mustScroll(t, s, 0)
	for i := 0; i <= 3; i++ {
		if !f.Window.Contains(i) {
			t.Errorf("window %+v should contain %d", f.Window, i)
		}
	}
	for i, g := range f.Geometry {
		if !g.Identity() {
			t.Errorf("card %d should rest at offset 0, got %+v", i, g)
		}
	}
	if len(f.Pulses) != 0 {
		t.Errorf("no pulses expected at rest, got %v", f.Pulses)
	}
	if len(d.moved) != 1 || d.moved[0] != 0 {
		t.Errorf("ScrollMoved calls = %v", d.moved)
	}
	if got := s.ContentSize().Height; got != 1492 {
		t.Errorf("content height = %v, want 1492", got)
	}
}

func TestScroller_NotLaidOut(t *testing.T) {
	s, err := NewScroller(DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Configure(testCards(3))
	if _, err := s.ScrollTo(10); !errors.Is(err, cserrors.ErrNotLaidOut) {
		t.Errorf("ScrollTo before layout: err = %v, want ErrNotLaidOut", err)
	}
	if cserrors.KindOf(func() error { _, err := s.ScrollTo(0); return err }()) != cserrors.KindLayout {
		t.Error("expected a layout error kind")
	}
	if _, ok := s.Drop(); ok {
		t.Error("Drop before layout should be a no-op")
	}
}

func TestScroller_ClampsBottom(t *testing.T) {
	s, _ := newTestScroller(t, DefaultConfig(), 12)
	f := mustScroll(t, s, 10000)
	if f.Offset != 862.5 {
		t.Errorf("offset = %v, want 862.5", f.Offset)
	}
	f = mustScroll(t, s, -40)
	if f.Offset != -40 {
		t.Errorf("top overscroll should pass through, got %v", f.Offset)
	}
}

func TestScroller_Pulses(t *testing.T) {
	s, _ := newTestScroller(t, DefaultConfig(), 12)
	mustScroll(t, s, 0)
	f := mustScroll(t, s, 80)
	if len(f.Pulses) != 1 || f.Pulses[0].Index != 0 || f.Pulses[0].Direction != PulseExit {
		t.Fatalf("scrolling past card 0: pulses = %+v", f.Pulses)
	}
	if f := mustScroll(t, s, 81); len(f.Pulses) != 0 {
		t.Errorf("staying past the threshold should not pulse, got %+v", f.Pulses)
	}
	f = mustScroll(t, s, 0)
	if len(f.Pulses) != 1 || f.Pulses[0].Index != 0 || f.Pulses[0].Direction != PulseEnter {
		t.Errorf("scrolling back: pulses = %+v", f.Pulses)
	}
}

func TestScroller_DragSnapBack(t *testing.T) {
	s, _ := newTestScroller(t, DefaultConfig(), 12)
	mustScroll(t, s, 0)
	if got := s.BeginDrag(graphics.Offset{X: 100, Y: 10}); got != 0 {
		t.Fatalf("BeginDrag hit %d, want 0", got)
	}
	f := mustScroll(t, s, 30)
	if !f.Geometry[0].Identity() {
		t.Errorf("dragged card should not roll off, got %+v", f.Geometry[0])
	}
	r := s.EndDrag(40, 0.05)
	if !r.Snapped || r.Target != 0 {
		t.Errorf("release = %+v, want snap to 0", r)
	}
	if s.Dragged() != NoCard {
		t.Error("snap release should clear drag tracking")
	}
}

func TestScroller_DragFastQuantizes(t *testing.T) {
	s, _ := newTestScroller(t, DefaultConfig(), 12)
	mustScroll(t, s, 0)
	s.BeginDrag(graphics.Offset{X: 100, Y: 10})
	mustScroll(t, s, 30)
	r := s.EndDrag(170, 1.2)
	if !r.Snapped || r.Target != 150 {
		t.Errorf("release = %+v, want snap to 150", r)
	}
}

func TestScroller_Continuous(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Continuous = true
	s, _ := newTestScroller(t, cfg, 12)
	mustScroll(t, s, 0)

	if got := s.BeginDrag(graphics.Offset{X: 100, Y: 450}); got != 3 {
		t.Fatalf("BeginDrag hit %d, want 3", got)
	}
	r := s.EndDrag(123, 2)
	if r.Snapped || r.Target != 123 {
		t.Errorf("continuous release = %+v, want target untouched", r)
	}
	if r.Dragged != NoCard || s.Dragged() != NoCard {
		t.Error("a non-top dragged card should stop tracking")
	}

	s.BeginDrag(graphics.Offset{X: 100, Y: 10})
	r = s.EndDrag(50, 2)
	if r.Dragged != 0 || s.Dragged() != 0 {
		t.Errorf("the top card should keep tracking, got %+v", r)
	}
}

func TestScroller_Tap(t *testing.T) {
	s, d := newTestScroller(t, DefaultConfig(), 12)
	mustScroll(t, s, 0)

	sel := s.Tap(graphics.Offset{X: 100, Y: 10})
	if sel.Kind != SelectCard || sel.Index != 0 || sel.Card.ID != "card-0" {
		t.Errorf("tap on top card = %+v", sel)
	}
	if len(d.selected) != 1 || d.selected[0] != 0 {
		t.Errorf("CardSelected calls = %v", d.selected)
	}

	sel = s.Tap(graphics.Offset{X: 100, Y: 450})
	if sel.Kind != SelectScroll || sel.Index != 3 || sel.Target != 225 {
		t.Errorf("tap on card 3 = %+v, want scroll request to 225", sel)
	}
	if len(d.selected) != 1 {
		t.Error("a scroll request should not select")
	}

	if sel := s.Tap(graphics.Offset{X: 100, Y: 5000}); sel.Kind != SelectNone || sel.Index != NoCard {
		t.Errorf("tap outside = %+v", sel)
	}
}

func TestScroller_TapSelectAnyPosition(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SelectAnyPosition = true
	s, d := newTestScroller(t, cfg, 12)
	mustScroll(t, s, 0)
	if sel := s.Tap(graphics.Offset{X: 100, Y: 450}); sel.Kind != SelectCard || sel.Index != 3 {
		t.Errorf("tap = %+v, want selection of card 3", sel)
	}
	if len(d.selected) != 1 || d.selected[0] != 3 {
		t.Errorf("CardSelected calls = %v", d.selected)
	}
}

func TestScroller_DropInOnce(t *testing.T) {
	s, err := NewScroller(DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if c := s.Configure(testCards(12)); len(c.DropIn) != 0 {
		t.Error("no drop-in before the viewport is known")
	}
	if s.DropInState() != DropInNotYetShown {
		t.Errorf("state = %v", s.DropInState())
	}
	c := s.SetViewport(graphics.Size{Width: 375, Height: 667})
	if len(c.DropIn) != 12 {
		t.Fatalf("drop-in steps = %d, want 12", len(c.DropIn))
	}
	if s.DropInState() != DropInShowing {
		t.Errorf("state = %v, want showing", s.DropInState())
	}
	if c := s.Configure(testCards(4)); len(c.DropIn) != 0 {
		t.Error("drop-in must be emitted only once")
	}
	s.DropInCompleted()
	if s.DropInState() != DropInShown {
		t.Errorf("state = %v, want shown", s.DropInState())
	}

	cfg := DefaultConfig()
	cfg.AnimateDropIn = false
	s, _ = newTestScroller(t, cfg, 3)
	if s.DropInState() != DropInShown {
		t.Error("disabled drop-in should start shown")
	}
}

func TestScroller_EndDecelerating(t *testing.T) {
	s, d := newTestScroller(t, DefaultConfig(), 12)
	// Card 7 has rolled off at 610 and card 8 is on top.
	mustScroll(t, s, 610)
	if got := s.TopCard(); got != 8 {
		t.Fatalf("top card = %d, want 8", got)
	}
	if got := s.EndDecelerating(); got != 8 {
		t.Errorf("flipped = %d, want 8", got)
	}
	mustScroll(t, s, 310)
	if got := s.EndDecelerating(); got != 4 {
		t.Errorf("flipped = %d, want 4", got)
	}
	if len(d.flipped) != 2 {
		t.Errorf("CardsFlipped calls = %v", d.flipped)
	}
}

func TestScroller_StopImmediately(t *testing.T) {
	s, _ := newTestScroller(t, DefaultConfig(), 12)
	mustScroll(t, s, 190)
	f, err := s.StopImmediately()
	if err != nil {
		t.Fatal(err)
	}
	if f.Offset != 225 {
		t.Errorf("offset = %v, want 225", f.Offset)
	}
}

func TestScroller_DropRestore(t *testing.T) {
	s, _ := newTestScroller(t, DefaultConfig(), 12)
	mustScroll(t, s, 0)
	strict := s.Window(true)
	plan, ok := s.Drop()
	if !ok {
		t.Fatal("expected a drop plan")
	}
	if plan.Window != strict || !strict.Within(s.Window(false)) {
		t.Errorf("drop window %+v, strict %+v", plan.Window, strict)
	}
	if len(plan.Steps)+len(plan.Hidden) != 12 {
		t.Errorf("steps %d + hidden %d should cover every card", len(plan.Steps), len(plan.Hidden))
	}
	for _, st := range plan.Steps {
		if st.To != 667 {
			t.Errorf("card %d drops by %v, want viewport height", st.Index, st.To)
		}
	}
	if _, ok := s.Drop(); ok {
		t.Error("second drop should be a no-op")
	}
	s.DropCompleted()
	if s.DropState() != DropDropped {
		t.Errorf("state = %v", s.DropState())
	}
	restore, ok := s.Restore()
	if !ok || restore.Window != strict {
		t.Errorf("restore = %+v, %v", restore, ok)
	}
	s.RestoreCompleted()
	if s.DropState() != DropResting {
		t.Errorf("state = %v", s.DropState())
	}
}

func TestScroller_RelayoutClearsState(t *testing.T) {
	s, _ := newTestScroller(t, DefaultConfig(), 12)
	mustScroll(t, s, 80)
	s.BeginDrag(graphics.Offset{X: 100, Y: 300})
	c := s.SetLayoutMode(Sequential)
	if s.Dragged() != NoCard {
		t.Error("relayout should clear drag tracking")
	}
	if s.Layout().Pitch() != s.Layout().CardHeight {
		t.Error("sequential pitch should equal card height")
	}
	if c.Window.Empty() {
		t.Error("relayout should report a window")
	}
	// Feedback history is gone, so being past the threshold pulses again.
	f := mustScroll(t, s, s.Layout().CardHeight+10)
	if len(f.Pulses) == 0 {
		t.Error("expected a fresh exit pulse after relayout")
	}
}

func TestScroller_RelayoutClampsOffset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout = Sequential
	s, _ := newTestScroller(t, cfg, 12)
	mustScroll(t, s, 2500)

	c := s.SetLayoutMode(Stacked)
	if max := s.Layout().MaxOffset(s.Len()); s.Offset() != max {
		t.Fatalf("offset = %v, want %v", s.Offset(), max)
	}
	if c.Window.Empty() {
		t.Error("loose window should not be empty after the switch")
	}
	if s.Window(true).Empty() {
		t.Error("strict window should not be empty after the switch")
	}
	if top := s.TopCard(); top != 11 {
		t.Errorf("TopCard() = %d, want 11", top)
	}
	if plan, ok := s.Drop(); !ok || len(plan.Steps) == 0 {
		t.Errorf("Drop() = %d steps, %v; want a plan", len(plan.Steps), ok)
	}
}

func TestScroller_TransformErrorDropsGeometry(t *testing.T) {
	s, _ := newTestScroller(t, DefaultConfig(), 4)
	if len(s.Geometry()) != 4 {
		t.Fatalf("len(Geometry()) = %d, want 4", len(s.Geometry()))
	}
	s.layout = Layout{}
	if _, err := s.transform(); cserrors.KindOf(err) != cserrors.KindLayout {
		t.Errorf("transform() err = %v, want a layout error", err)
	}
	if s.Geometry() != nil {
		t.Error("stale geometry kept after a failed transform")
	}
}

func TestScroller_SetRolloff(t *testing.T) {
	s, _ := newTestScroller(t, DefaultConfig(), 4)
	if err := s.SetRolloff(0, 3); !errors.Is(err, cserrors.ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
	if err := s.SetRolloff(2, 2); err != nil {
		t.Fatal(err)
	}
	if s.Config().RolloffPower != 2 || s.Config().RolloffConstant != 2 {
		t.Errorf("config = %+v", s.Config())
	}
}

func TestNewScroller_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RolloffConstant = -1
	if _, err := NewScroller(cfg, nil); cserrors.KindOf(err) != cserrors.KindConfig {
		t.Errorf("err = %v, want a config error", err)
	}
}
