package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/cardscroller/internal/pulse"
	"github.com/go-drift/cardscroller/internal/term"
	"github.com/go-drift/cardscroller/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Scroll the card stack in the terminal",
		Long: `Open the card stack in the terminal.

Keys:
  j, Down        Scroll one card down
  k, Up          Scroll one card up
  PgDn, PgUp     Scroll one screen
  Home, End      Jump to the first or last card
  Enter, Space   Tap the top card
  d              Drop the visible cards, or bring them back
  s              Stop at the nearest card
  l              Toggle stacked and sequential layout
  q, Esc         Quit

Drag with the mouse to scroll; release quickly to fling. Click a card to
select it or bring it to the top.

Flags:
  --mute         Do not play a click when a card crosses the top edge`,
		Usage: "cardscroll run [--mute]",
		Run:   runRun,
	})
}

func runRun(args []string) error {
	mute := false
	for _, arg := range args {
		switch arg {
		case "--mute":
			mute = true
		default:
			return fmt.Errorf("unknown flag %q", arg)
		}
	}

	profile, err := loadProfile()
	if err != nil {
		return err
	}

	var sink pulse.Sink = pulse.Discard
	if !mute {
		speaker := pulse.NewSpeaker()
		if err := speaker.Initialize(); err != nil {
			// Non-fatal, the stack scrolls without sound
			log.Printf("audio initialization failed: %v", err)
		} else {
			defer speaker.Close()
			sink = speaker
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.New("cmd.run", errors.KindRender, err)
	}
	if err := screen.Init(); err != nil {
		return errors.New("cmd.run", errors.KindRender, err)
	}
	defer screen.Fini()

	host, err := term.New(screen, profile.Engine, profile.Cards, sink)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := host.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
