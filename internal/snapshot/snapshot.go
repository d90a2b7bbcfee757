// Package snapshot renders the card stack at one scroll offset to a PNG.
package snapshot

import (
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/cardscroller/pkg/cards"
	"github.com/go-drift/cardscroller/pkg/errors"
	"github.com/go-drift/cardscroller/pkg/graphics"
)

// Options controls rendering.
type Options struct {
	// Scale multiplies the output size. Zero means 1.
	Scale float64
	// Background fills the viewport behind the cards. Zero means black.
	Background graphics.Color
}

const (
	textInset     = 8
	titleBaseline = 20
	subtitleGap   = 16
)

// Render draws the scroller's current frame: every card in the loose window,
// translated by its displacement and faded by its opacity. Lower indexes are
// drawn on top.
func Render(s *cards.Scroller, opts Options) (*image.NRGBA, error) {
	const op = "snapshot.Render"
	if !s.Ready() {
		return nil, errors.New(op, errors.KindRender, errors.ErrNotLaidOut)
	}
	bg := opts.Background
	if bg == graphics.ColorTransparent {
		bg = graphics.ColorBlack
	}

	vp := s.Viewport()
	width := int(math.Ceil(vp.Width))
	height := int(math.Ceil(vp.Height))
	if width <= 0 || height <= 0 {
		return nil, errors.Newf(op, errors.KindRender, "empty viewport %dx%d: %w", width, height, errors.ErrInvalidParameter)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	fill(img, img.Bounds(), bg)

	geometry := s.Geometry()
	window := s.Window(false)
	offset := s.Offset()
	for i := window.Last; i >= window.First; i-- {
		if i >= len(geometry) {
			continue
		}
		g := geometry[i]
		frame := s.Layout().Frame(i).Translate(0, g.Displacement-offset)
		drawCard(img, s.Layout(), frame, s.Cards()[i], i, g.Opacity, bg)
	}

	scale := opts.Scale
	if scale <= 0 || scale == 1 {
		return img, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, int(math.Round(float64(width)*scale)), int(math.Round(float64(height)*scale))))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

func drawCard(img *image.NRGBA, l cards.Layout, frame graphics.Rect, card cards.Card, index int, opacity float64, bg graphics.Color) {
	face, footer, separator := cardColors(index, opacity, bg)

	body, rest := frame.SplitTop(frame.Height() - l.FooterHeight - l.SeparatorHeight)
	sepRect, footerRect := rest.SplitTop(l.SeparatorHeight)

	fill(img, pixelRect(body), face)
	fill(img, pixelRect(sepRect), separator)
	fill(img, pixelRect(footerRect), footer)

	text := graphics.ColorWhite.WithAlpha(opacity).Over(footer)
	maxWidth := fixed.I(int(footerRect.Width()) - 2*textInset)
	x := int(footerRect.Left) + textInset
	y := int(footerRect.Top) + titleBaseline
	drawText(img, truncate(card.Title, maxWidth), x, y, text)
	if card.Subtitle != "" {
		drawText(img, truncate(card.Subtitle, maxWidth), x, y+subtitleGap, text)
	}
}

// cardColors returns the opaque face, footer and separator colors of a card
// faded onto bg.
func cardColors(index int, opacity float64, bg graphics.Color) (face, footer, separator graphics.Color) {
	base := graphics.CardColor(index)
	face = base.WithAlpha(opacity).Over(bg)
	footer = base.WithAlpha(0.55).Over(graphics.ColorBlack).WithAlpha(opacity).Over(bg)
	separator = graphics.ColorBlack.WithAlpha(opacity).Over(bg)
	return face, footer, separator
}

func pixelRect(r graphics.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)), int(math.Ceil(r.Bottom)),
	)
}

func fill(img *image.NRGBA, r image.Rectangle, c graphics.Color) {
	draw.Draw(img, r, image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

func drawText(img *image.NRGBA, s string, x, y int, c graphics.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c.NRGBA()),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// truncate shortens s with an ellipsis until it fits maxWidth.
func truncate(s string, maxWidth fixed.Int26_6) string {
	face := basicfont.Face7x13
	if font.MeasureString(face, s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if font.MeasureString(face, candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.New("snapshot.Encode", errors.KindRender, err)
	}
	return nil
}

// WriteFile renders s and writes the PNG to path.
func WriteFile(path string, s *cards.Scroller, opts Options) error {
	img, err := Render(s, opts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.New("snapshot.WriteFile", errors.KindRender, err)
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
