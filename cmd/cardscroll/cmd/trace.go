package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/cardscroller/pkg/cards"
)

func init() {
	RegisterCommand(&Command{
		Name:  "trace",
		Short: "Print engine output across a range of offsets",
		Long: `Scroll the stack from one offset to another in fixed steps and print,
for each offset, the top card, the loose and strict visible windows, any
threshold pulses, and where a release at that offset would settle.

Flags:
  --from A        First offset (default: 0)
  --to B          Last offset (default: 4 cards)
  --step S        Offset increment; negative scrolls up (default: 25)
  --velocity V    Release velocity used for the settle column (default: 1)
  --width W       Viewport width in points (default: 375)
  --height H      Viewport height in points (default: 667)`,
		Usage: "cardscroll trace [--from A] [--to B] [--step S] [--velocity V] [--width W] [--height H]",
		Run:   runTrace,
	})
}

type traceOptions struct {
	from, to, step float64
	velocity       float64
	hasTo          bool
	vp             viewportFlags
}

func parseTraceArgs(args []string) (traceOptions, error) {
	opts := traceOptions{step: 25, velocity: 1, vp: defaultViewport()}
	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "--from":
			opts.from, i, err = floatFlag(args, i)
		case "--to":
			opts.to, i, err = floatFlag(args, i)
			opts.hasTo = true
		case "--step":
			opts.step, i, err = floatFlag(args, i)
		case "--velocity":
			opts.velocity, i, err = floatFlag(args, i)
		default:
			var ok bool
			i, ok, err = opts.vp.parse(args, i)
			if err == nil && !ok {
				err = fmt.Errorf("unknown flag %q", args[i])
			}
		}
		if err != nil {
			return opts, err
		}
	}
	if opts.step == 0 {
		return opts, fmt.Errorf("--step must not be zero")
	}
	return opts, nil
}

func runTrace(args []string) error {
	opts, err := parseTraceArgs(args)
	if err != nil {
		return err
	}
	profile, err := loadProfile()
	if err != nil {
		return err
	}
	s, err := newScroller(profile, opts.vp)
	if err != nil {
		return err
	}
	if !opts.hasTo {
		opts.to = opts.from + 4*s.Layout().Pitch()
	}
	if (opts.to-opts.from)*opts.step < 0 {
		opts.step = -opts.step
	}

	fmt.Fprintf(stdout, "# profile %s, %d cards, layout %s, pitch %v\n",
		profile.Profile, s.Len(), s.Layout().Mode, s.Layout().Pitch())
	fmt.Fprintln(stdout, "offset\ttop\twindow\tstrict\tpulses\tsettle")
	for offset := opts.from; ; offset += opts.step {
		if (opts.step > 0 && offset > opts.to) || (opts.step < 0 && offset < opts.to) {
			break
		}
		frame, err := s.ScrollTo(offset)
		if err != nil {
			return err
		}
		settle := s.EndDrag(frame.Offset, opts.velocity).Target
		fmt.Fprintf(stdout, "%g\t%d\t%s\t%s\t%s\t%g\n",
			frame.Offset, s.TopCard(), formatWindow(frame.Window), formatWindow(s.Window(true)),
			formatPulses(frame.Pulses), settle)
	}
	return nil
}

func formatWindow(w cards.IndexWindow) string {
	if w.Empty() {
		return "[]"
	}
	return fmt.Sprintf("[%d,%d]", w.First, w.Last)
}

func formatPulses(pulses []cards.Pulse) string {
	if len(pulses) == 0 {
		return "-"
	}
	parts := make([]string, len(pulses))
	for i, p := range pulses {
		parts[i] = fmt.Sprintf("%d:%s", p.Index, p.Direction)
	}
	return strings.Join(parts, ",")
}
