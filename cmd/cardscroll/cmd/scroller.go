package cmd

import (
	"fmt"

	"github.com/go-drift/cardscroller/internal/config"
	"github.com/go-drift/cardscroller/pkg/cards"
	"github.com/go-drift/cardscroller/pkg/graphics"
)

// viewportFlags are shared by the headless commands.
type viewportFlags struct {
	width  float64
	height float64
}

func defaultViewport() viewportFlags {
	return viewportFlags{width: 375, height: 667}
}

// parse consumes --width and --height at args[i], reporting whether it did.
func (v *viewportFlags) parse(args []string, i int) (int, bool, error) {
	var err error
	switch args[i] {
	case "--width":
		v.width, i, err = floatFlag(args, i)
	case "--height":
		v.height, i, err = floatFlag(args, i)
	default:
		return i, false, nil
	}
	return i, true, err
}

// newScroller builds a laid-out scroller for profile without a drop-in.
func newScroller(profile *config.Resolved, vp viewportFlags) (*cards.Scroller, error) {
	cfg := profile.Engine
	cfg.AnimateDropIn = false
	s, err := cards.NewScroller(cfg, nil)
	if err != nil {
		return nil, err
	}
	s.Configure(profile.Cards)
	s.SetViewport(graphics.Size{Width: vp.width, Height: vp.height})
	if !s.Ready() {
		return nil, fmt.Errorf("viewport %vx%v is too small for the profile", vp.width, vp.height)
	}
	return s, nil
}
