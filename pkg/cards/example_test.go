package cards_test

import (
	"fmt"

	"github.com/go-drift/cardscroller/pkg/cards"
	"github.com/go-drift/cardscroller/pkg/graphics"
)

func ExampleScroller() {
	s, err := cards.NewScroller(cards.DefaultConfig(), nil)
	if err != nil {
		panic(err)
	}
	s.Configure(make([]cards.Card, 12))
	s.SetViewport(graphics.Size{Width: 375, Height: 667})

	frame, _ := s.ScrollTo(0)
	fmt.Println("window", frame.Window.First, frame.Window.Last)

	release := s.EndDrag(170, 1.2)
	fmt.Println("settle", release.Target)
	// Output:
	// window 0 11
	// settle 150
}

func ExampleResolveStop() {
	stop := cards.ResolveStop(cards.StopInput{
		CurrentOffset: 200,
		TargetOffset:  430,
		Velocity:      1.5,
		Dragged:       cards.NoCard,
		TopCard:       2,
		Pitch:         100,
		LastIndex:     5,
	})
	fmt.Println(stop)
	// Output: 400
}
