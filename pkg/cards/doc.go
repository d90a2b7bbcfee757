// Package cards implements the scroll-to-geometry engine behind a vertically
// scrolling stack of overlapping cards.
//
// Given a scroll offset the engine computes, for every card, how far it has
// been pushed up by the rolloff curve and how opaque it is; which contiguous
// range of cards is worth rendering; where a drag release should come to rest;
// and when a card crosses fully off the top of the viewport (a pulse, used for
// haptic feedback). It never draws and never runs timers. A host feeds it
// offsets and drag events and applies the returned numbers to its own views.
//
// # Pieces
//
//   - [Layout]: resting card positions and the per-mode pitch.
//   - [Transformer]: per-card displacement, opacity and raw rolloff value.
//   - [VisibleWindow]: loose (padded, resting frames) or strict (exposed
//     transformed slices) index windows.
//   - [ResolveStop]: the snap stop after a drag release.
//   - [FeedbackTracker]: detects raw offsets crossing 1.0.
//   - [DropSequencer]: staggered drop and restore plans.
//   - [Scroller]: the session tying these together for one card set.
//
// # Usage
//
//	s, err := cards.NewScroller(cards.DefaultConfig(), delegate)
//	s.SetViewport(graphics.Size{Width: 375, Height: 667})
//	s.Configure(deck)
//	frame, err := s.ScrollTo(offset) // per scroll event
//	for _, p := range frame.Pulses { haptics.Tick() }
//
// All methods must be called from a single goroutine, typically the host's
// UI thread.
package cards
