// Package titlecard renders chapter title pages: a white portrait canvas
// with the chapter name drawn centered, word-wrapped to fit, and framed by
// a thin black border.
package titlecard

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyCaption is returned when a render is requested for a caption
// with no visible characters.
var ErrEmptyCaption = errors.New("titlecard: empty caption")

const (
	// DefaultWidth and DefaultHeight give roughly a 2:3 portrait page,
	// matching typical comic page proportions.
	DefaultWidth  = 800
	DefaultHeight = 1200

	// DefaultFontSize is the caption size in points at 72 DPI.
	DefaultFontSize = 50

	borderInset     = 20
	borderThickness = 3
	textInset       = 20
)

// Options configures a Renderer. Zero values select the defaults above;
// NoBorder disables the frame around the caption.
type Options struct {
	Width    int
	Height   int
	FontSize int
	FontPath string
	NoBorder bool
	Logger   *slog.Logger
}

// Renderer draws title cards. It resolves its font face once at
// construction and renders deterministically: equal captions produce
// byte-identical images.
type Renderer struct {
	width    int
	height   int
	face     font.Face
	noBorder bool
}

// NewRenderer builds a Renderer from opts, resolving the font face via
// the fallback chain. Construction never fails; an unusable font
// configuration degrades to a built-in face with a logged warning.
func NewRenderer(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultFontSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("component", "titlecard"))
	return &Renderer{
		width:    opts.Width,
		height:   opts.Height,
		face:     resolveFace(opts.FontPath, float64(opts.FontSize), logger),
		noBorder: opts.NoBorder,
	}
}

// Render draws caption onto a fresh white canvas and returns the image.
func (r *Renderer) Render(caption string) (*image.NRGBA, error) {
	words := strings.Fields(caption)
	if len(words) == 0 {
		return nil, ErrEmptyCaption
	}

	canvas := imaging.New(r.width, r.height, color.White)
	if !r.noBorder {
		r.drawBorder(canvas)
	}

	maxLineWidth := r.width - 2*(borderInset+textInset)
	lines := wrapWords(r.face, words, maxLineWidth)

	// Line boxes span from the ascender line down to the lowest ink of
	// the line, so lines without descenders stack slightly tighter.
	ascent := r.face.Metrics().Ascent.Ceil()
	heights := make([]int, len(lines))
	total := 0
	for i, line := range lines {
		bounds, _ := font.BoundString(r.face, line)
		heights[i] = ascent + bounds.Max.Y.Ceil()
		total += heights[i]
	}

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.Black,
		Face: r.face,
	}
	y := (r.height - total) / 2
	for i, line := range lines {
		lineWidth := font.MeasureString(r.face, line).Ceil()
		drawer.Dot = fixed.P((r.width-lineWidth)/2, y+ascent)
		drawer.DrawString(line)
		y += heights[i]
	}
	return canvas, nil
}

// RenderFile renders caption and writes the image to path; the encoding
// is chosen from the file extension.
func (r *Renderer) RenderFile(caption, path string) error {
	img, err := r.Render(caption)
	if err != nil {
		return err
	}
	return imaging.Save(img, path)
}

// EncodePNG renders caption and streams it to w as PNG.
func (r *Renderer) EncodePNG(w io.Writer, caption string) error {
	img, err := r.Render(caption)
	if err != nil {
		return err
	}
	return imaging.Encode(w, img, imaging.PNG)
}

func (r *Renderer) drawBorder(canvas *image.NRGBA) {
	left := borderInset
	top := borderInset
	right := r.width - borderInset
	bottom := r.height - borderInset
	edges := []image.Rectangle{
		image.Rect(left, top, right, top+borderThickness),
		image.Rect(left, bottom-borderThickness, right, bottom),
		image.Rect(left, top, left+borderThickness, bottom),
		image.Rect(right-borderThickness, top, right, bottom),
	}
	for _, edge := range edges {
		draw.Draw(canvas, edge, image.Black, image.Point{}, draw.Src)
	}
}

// wrapWords greedily packs words into lines no wider than maxWidth. A
// single word wider than maxWidth occupies a line by itself rather than
// being split.
func wrapWords(face font.Face, words []string, maxWidth int) []string {
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
