package cmd

import (
	"fmt"

	"github.com/go-drift/cardscroller/internal/snapshot"
)

func init() {
	RegisterCommand(&Command{
		Name:  "snapshot",
		Short: "Render one frame to PNG",
		Long: `Render the card stack at a scroll offset to a PNG file.

Flags:
  -o, --output FILE   Output path (default: frame.png)
  --offset N          Scroll offset in points (default: 0)
  --width W           Viewport width in points (default: 375)
  --height H          Viewport height in points (default: 667)
  --scale S           Output scale factor (default: 1)`,
		Usage: "cardscroll snapshot [-o FILE] [--offset N] [--width W] [--height H] [--scale S]",
		Run:   runSnapshot,
	})
}

func runSnapshot(args []string) error {
	output := "frame.png"
	offset := 0.0
	opts := snapshot.Options{Scale: 1}
	vp := defaultViewport()

	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "-o", "--output":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a file path", args[i])
			}
			output = args[i+1]
			i++
		case "--offset":
			offset, i, err = floatFlag(args, i)
		case "--scale":
			opts.Scale, i, err = floatFlag(args, i)
		default:
			var ok bool
			i, ok, err = vp.parse(args, i)
			if err == nil && !ok {
				err = fmt.Errorf("unknown flag %q", args[i])
			}
		}
		if err != nil {
			return err
		}
	}

	profile, err := loadProfile()
	if err != nil {
		return err
	}
	s, err := newScroller(profile, vp)
	if err != nil {
		return err
	}
	if _, err := s.ScrollTo(offset); err != nil {
		return err
	}
	if err := snapshot.WriteFile(output, s, opts); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s (profile %s, offset %v)\n", output, profile.Profile, s.Offset())
	return nil
}
