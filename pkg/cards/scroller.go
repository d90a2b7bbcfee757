package cards

import (
	"math"

	"github.com/go-drift/cardscroller/pkg/animation"
	"github.com/go-drift/cardscroller/pkg/errors"
	"github.com/go-drift/cardscroller/pkg/graphics"
)

// Card is the content record behind one card. The engine only carries it
// through to selection events.
type Card struct {
	ID       string
	Title    string
	Subtitle string
}

// Delegate receives the scroller's notifications. Any method may be a no-op.
type Delegate interface {
	// CardSelected is called when a tap selects a card.
	CardSelected(index int, card Card)
	// ScrollMoved is called after every ScrollTo.
	ScrollMoved(offset float64)
	// CardsFlipped reports how many positions the top card moved between
	// two settled scrolls.
	CardsFlipped(count int)
}

// Frame is the result of one scroll event.
type Frame struct {
	Offset   float64
	Geometry []Geometry
	// Window is the loose visible window; hosts materialize only these cards.
	Window IndexWindow
	// Pulses lists threshold crossings in this event, in index order.
	Pulses []Pulse
}

// Release is the outcome of a drag release.
type Release struct {
	// Target is where the host should let the scroll settle.
	Target float64
	// Snapped is false in continuous mode, where Target is the host's own.
	Snapped bool
	// Dragged is the card still tracking after release, or NoCard.
	Dragged int
}

// SelectionKind says what a tap did.
type SelectionKind int

const (
	// SelectNone means the tap hit no card.
	SelectNone SelectionKind = iota
	// SelectCard means the card was selected and the delegate notified.
	SelectCard
	// SelectScroll means the host should scroll to Target to bring the card up.
	SelectScroll
)

// Selection is the outcome of a tap.
type Selection struct {
	Kind   SelectionKind
	Index  int
	Card   Card
	Target float64
}

// Configured is the outcome of installing a card set.
type Configured struct {
	// Window is the loose visible window of the new set.
	Window IndexWindow
	// DropIn is non-empty only the first time a laid-out card set is shown
	// with drop-in enabled.
	DropIn []DropInStep
}

// Scroller is one card-stack session: a card set, its layout, and the
// stateful pieces (drag tracking, feedback history, drop state).
type Scroller struct {
	cfg      Config
	curve    *animation.RolloffCurve
	layout   Layout
	viewport graphics.Size
	delegate Delegate

	cards    []Card
	geometry []Geometry
	offset   float64
	dragged  int
	lastTop  int

	feedback *FeedbackTracker
	drop     *DropSequencer
	dropIn   DropInState
}

// NewScroller validates cfg and returns an empty scroller. delegate may be nil.
func NewScroller(cfg Config, delegate Delegate) (*Scroller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	curve, err := animation.NewRolloffCurve(cfg.RolloffPower, cfg.RolloffConstant)
	if err != nil {
		return nil, err
	}
	s := &Scroller{
		cfg:      cfg,
		curve:    curve,
		delegate: delegate,
		dragged:  NoCard,
		feedback: NewFeedbackTracker(),
		drop:     NewDropSequencer(cfg.Timing),
	}
	if !cfg.AnimateDropIn {
		s.dropIn = DropInShown
	}
	return s, nil
}

// Config returns the active configuration.
func (s *Scroller) Config() Config { return s.cfg }

// Layout returns the current layout.
func (s *Scroller) Layout() Layout { return s.layout }

// Ready reports whether the scroller has usable dimensions.
func (s *Scroller) Ready() bool { return s.layout.Ready() && !s.viewport.IsEmpty() }

// Cards returns the current card set.
func (s *Scroller) Cards() []Card { return s.cards }

// Len returns the number of cards.
func (s *Scroller) Len() int { return len(s.cards) }

// Offset returns the last scroll offset passed to ScrollTo.
func (s *Scroller) Offset() float64 { return s.offset }

// Geometry returns the per-card geometry of the last transform pass.
func (s *Scroller) Geometry() []Geometry { return s.geometry }

// Dragged returns the drag-tracked card, or NoCard.
func (s *Scroller) Dragged() int { return s.dragged }

// DropInState returns the entrance animation lifecycle.
func (s *Scroller) DropInState() DropInState { return s.dropIn }

// DropState returns the drop/restore lifecycle.
func (s *Scroller) DropState() DropState { return s.drop.State() }

// Viewport returns the last viewport size.
func (s *Scroller) Viewport() graphics.Size { return s.viewport }

// ContentSize is the scrollable content size for the current card set.
func (s *Scroller) ContentSize() graphics.Size {
	return graphics.Size{
		Width:  s.viewport.Width,
		Height: s.layout.ContentHeight(len(s.cards), s.viewport.Height),
	}
}

// SetViewport updates the viewport. A width change resizes the cards and
// relays out the whole set.
func (s *Scroller) SetViewport(size graphics.Size) Configured {
	widthChanged := size.Width != s.viewport.Width
	s.viewport = size
	if widthChanged || !s.layout.Ready() {
		return s.relayout()
	}
	return Configured{Window: s.Window(false)}
}

// SetLayoutMode switches between stacked and sequential and relays out.
func (s *Scroller) SetLayoutMode(mode LayoutMode) Configured {
	s.cfg.Layout = mode
	return s.relayout()
}

// SetRolloff changes the rolloff curve parameters.
func (s *Scroller) SetRolloff(power, constant float64) error {
	if err := s.curve.SetParams(power, constant); err != nil {
		return err
	}
	s.cfg.RolloffPower, s.cfg.RolloffConstant = power, constant
	return nil
}

// Configure replaces the card set. Card indexes are reassigned, feedback
// history is dropped, and drag tracking is cleared. If the viewport is not
// known yet, the cards are kept and laid out once it is.
func (s *Scroller) Configure(cards []Card) Configured {
	s.cards = append([]Card(nil), cards...)
	return s.relayout()
}

func (s *Scroller) relayout() Configured {
	s.layout = NewLayout(s.cfg, s.viewport.Width)
	s.feedback.Reset()
	s.dragged = NoCard
	s.geometry = nil
	if !s.Ready() {
		return Configured{Window: EmptyWindow()}
	}
	// A shorter layout can leave the old offset past the new bottom.
	s.offset = math.Min(s.offset, s.layout.MaxOffset(len(s.cards)))
	if _, err := s.transform(); err != nil {
		return Configured{Window: EmptyWindow()}
	}
	out := Configured{Window: s.Window(false)}
	if len(s.cards) > 0 && s.dropIn == DropInNotYetShown {
		out.DropIn = planDropIn(s.layout, out.Window, s.viewport.Height, s.cfg.Timing)
		s.dropIn = DropInShowing
	}
	return out
}

// DropInCompleted marks the entrance animation as done.
func (s *Scroller) DropInCompleted() {
	if s.dropIn == DropInShowing {
		s.dropIn = DropInShown
	}
}

// ScrollTo recomputes every card for offset. Offsets beyond the bottom
// bounce limit are clamped. Transforms are computed first, then pulses from
// the same raw offsets, then the visible window.
func (s *Scroller) ScrollTo(offset float64) (Frame, error) {
	if !s.Ready() {
		return Frame{}, errors.New("cards.Scroller.ScrollTo", errors.KindLayout, errors.ErrNotLaidOut)
	}
	if limit := s.layout.MaxOffset(len(s.cards)); offset > limit {
		offset = limit
	}
	s.offset = offset
	pulses, err := s.transform()
	if err != nil {
		return Frame{}, err
	}
	frame := Frame{Offset: offset, Pulses: pulses}
	frame.Geometry = s.geometry
	frame.Window = s.Window(false)
	if s.delegate != nil {
		s.delegate.ScrollMoved(offset)
	}
	return frame, nil
}

// Refresh recomputes the current offset, e.g. after a drag ends.
func (s *Scroller) Refresh() (Frame, error) {
	return s.ScrollTo(s.offset)
}

// transform recomputes geometry at the current offset and feeds the feedback
// tracker. On error the previous geometry is discarded rather than kept stale.
func (s *Scroller) transform() ([]Pulse, error) {
	t := Transformer{Curve: s.curve, Layout: s.layout, FadeWithScroll: s.cfg.FadeWithScroll}
	geometry, computed, err := t.TransformAll(len(s.cards), s.offset, s.dragged)
	if err != nil {
		s.geometry = nil
		return nil, err
	}
	s.geometry = geometry
	var pulses []Pulse
	for i := 0; i < computed; i++ {
		if p, ok := s.feedback.Observe(i, geometry[i].RawOffset); ok {
			pulses = append(pulses, p)
		}
	}
	return pulses, nil
}

// Window returns the loose or strict visible window for the current geometry.
func (s *Scroller) Window(strict bool) IndexWindow {
	pad := s.cfg.VisibilityPad
	if strict {
		pad = 0
	}
	return VisibleWindow(s.offset, s.viewport, s.layout, s.geometry, strict, pad)
}

// TopCard returns the first card whose current (transformed) frame still
// reaches below the current offset, or NoCard.
func (s *Scroller) TopCard() int {
	for i := range s.cards {
		if s.currentFrame(i).Bottom > s.offset {
			return i
		}
	}
	return NoCard
}

// currentFrame is the resting frame of index moved by its displacement.
func (s *Scroller) currentFrame(index int) graphics.Rect {
	frame := s.layout.Frame(index)
	if index < len(s.geometry) {
		frame = frame.Translate(0, s.geometry[index].Displacement)
	}
	return frame
}

// CardAt returns the topmost card whose current (transformed) frame contains
// point, in content coordinates, or NoCard.
func (s *Scroller) CardAt(point graphics.Offset) int {
	for i := range s.geometry {
		if s.currentFrame(i).Contains(point) {
			return i
		}
	}
	return NoCard
}

// BeginDrag starts tracking the card under point. It returns the tracked
// card, or NoCard.
func (s *Scroller) BeginDrag(point graphics.Offset) int {
	s.dragged = s.CardAt(point)
	return s.dragged
}

// EndDrag handles a release with the host's deceleration target and velocity.
//
// In snap mode the target is replaced by ResolveStop and tracking ends. In
// continuous mode the target is left alone; tracking ends unless the dragged
// card is the top card, which keeps tracking so it does not jump on release.
func (s *Scroller) EndDrag(target, velocity float64) Release {
	if s.cfg.Continuous {
		if s.dragged != s.TopCard() {
			s.dragged = NoCard
		}
		return Release{Target: target, Dragged: s.dragged}
	}
	stop := ResolveStop(s.stopInput(target, velocity))
	s.dragged = NoCard
	return Release{Target: stop, Snapped: true, Dragged: NoCard}
}

func (s *Scroller) stopInput(target, velocity float64) StopInput {
	return StopInput{
		CurrentOffset:     s.offset,
		TargetOffset:      target,
		Velocity:          velocity,
		Dragged:           s.dragged,
		TopCard:           s.TopCard(),
		Pitch:             s.layout.Pitch(),
		LastIndex:         len(s.cards) - 1,
		TopPadding:        s.layout.TopPadding,
		VelocityThreshold: s.cfg.VelocityThreshold,
	}
}

// StopImmediately snaps the current offset to the nearest stop with zero
// velocity and applies it. Hosts call it before disappearing or dropping.
func (s *Scroller) StopImmediately() (Frame, error) {
	if !s.Ready() {
		return Frame{}, errors.New("cards.Scroller.StopImmediately", errors.KindLayout, errors.ErrNotLaidOut)
	}
	return s.ScrollTo(ResolveStop(s.stopInput(s.offset, 0)))
}

// EndDecelerating is called when a scroll settles. It returns how many
// positions the top card moved since the previous settle and tells the
// delegate.
func (s *Scroller) EndDecelerating() int {
	top := s.TopCard()
	if top == NoCard {
		return 0
	}
	flipped := top - s.lastTop
	if flipped < 0 {
		flipped = -flipped
	}
	s.lastTop = top
	if s.delegate != nil {
		s.delegate.CardsFlipped(flipped)
	}
	return flipped
}

// Tap resolves a tap at point (content coordinates). The top card, or any
// card when SelectAnyPosition is set, is selected; any other card yields a
// scroll request bringing it to the top.
func (s *Scroller) Tap(point graphics.Offset) Selection {
	index := s.CardAt(point)
	if index == NoCard {
		return Selection{Kind: SelectNone, Index: NoCard}
	}
	card := s.cards[index]
	if index == s.TopCard() || s.cfg.SelectAnyPosition {
		if s.delegate != nil {
			s.delegate.CardSelected(index, card)
		}
		return Selection{Kind: SelectCard, Index: index, Card: card}
	}
	return Selection{Kind: SelectScroll, Index: index, Card: card, Target: s.layout.RestingOffset(index)}
}

// Drop plans dropping the strictly visible cards off the bottom edge.
// It returns false if a drop is already in progress or nothing is visible.
func (s *Scroller) Drop() (TransitionPlan, bool) {
	if !s.Ready() {
		return TransitionPlan{}, false
	}
	return s.drop.Drop(s.Window(true), len(s.cards), s.viewport.Height)
}

// DropCompleted marks the drop plan as executed.
func (s *Scroller) DropCompleted() { s.drop.DropCompleted() }

// Restore plans returning the cards captured by Drop.
func (s *Scroller) Restore() (TransitionPlan, bool) { return s.drop.Restore() }

// RestoreCompleted marks the restore plan as executed.
func (s *Scroller) RestoreCompleted() { s.drop.RestoreCompleted() }

// ResetTransitions abandons drop state after the host interrupted a plan.
func (s *Scroller) ResetTransitions() { s.drop.Reset() }
