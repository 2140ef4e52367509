// Package rendering rasterizes placed flow layouts for inspection: PNG
// output for previews and an SVG dump for vector tooling. It draws item
// rectangles, index labels, and line guides; it is a debug surface, not a
// general 2D renderer.
package rendering

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-fit/fit/pkg/errors"
	"github.com/go-fit/fit/pkg/fit"
	"github.com/go-fit/fit/pkg/flow"
	"github.com/go-fit/fit/pkg/geometry"
)

// Renderer rasterizes placed layouts. The zero value renders at one pixel
// per layout unit on a white background with labels and guides enabled
// implicitly by the CLI; library callers opt in per field.
type Renderer struct {
	// Scale is the pixel density per layout unit. Values <= 0 mean 1.
	Scale float64
	// Padding adds a margin, in layout units, on every canvas edge.
	Padding float64
	// Background fills the canvas. A fully transparent zero value means
	// opaque white.
	Background color.RGBA
	// ShowLabels draws each item's index into its rectangle.
	ShowLabels bool
	// ShowGuides draws a rule under every line's extent.
	ShowGuides bool
}

// itemPalette cycles across item rectangles so adjacent indices separate
// visually.
var itemPalette = []color.RGBA{
	{R: 0x4C, G: 0x8E, B: 0xD9, A: 0xFF},
	{R: 0xE0, G: 0x8E, B: 0x45, A: 0xFF},
	{R: 0x66, G: 0xB8, B: 0x6E, A: 0xFF},
	{R: 0xCF, G: 0x6B, B: 0x77, A: 0xFF},
	{R: 0x9A, G: 0x7F, B: 0xD1, A: 0xFF},
	{R: 0x5B, G: 0xB8, B: 0xB2, A: 0xFF},
}

var (
	borderColor = color.RGBA{R: 0x2B, G: 0x2B, B: 0x2B, A: 0xFF}
	labelColor  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	guideColor  = color.RGBA{R: 0xB5, G: 0xB5, B: 0xB5, A: 0xFF}
)

// RenderImage measures and places items, then rasterizes the arrangement.
// The canvas is sized from the aggregate size plus padding; an empty
// layout produces a single background pixel.
func (r *Renderer) RenderImage(layout *fit.Layout, items []flow.Element, proposal geometry.Proposal) *image.RGBA {
	scale := r.Scale
	if scale <= 0 {
		scale = 1
	}
	background := r.Background
	if background.A == 0 {
		background = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}

	size := layout.Measure(items, proposal)
	w := int(math.Ceil((size.Width + 2*r.Padding) * scale))
	h := int(math.Ceil((size.Height + 2*r.Padding) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	px := func(v float64) int {
		return int(math.Round((v + r.Padding) * scale))
	}

	if r.ShowGuides {
		y := 0.0
		for i, line := range layout.Lines() {
			y += layout.LineDistance(i) + line.Height()
			ruleY := px(y)
			if ruleY >= h {
				ruleY = h - 1
			}
			fillRect(img, image.Rect(0, ruleY, w, ruleY+1), guideColor)
		}
	}

	layout.Place(items, geometry.RectFromLTWH(0, 0, size.Width, size.Height), proposal,
		func(i int, origin geometry.Offset, _ geometry.Proposal) {
			itemSize := layout.ItemSize(i)
			rect := image.Rect(px(origin.X), px(origin.Y),
				px(origin.X+itemSize.Width), px(origin.Y+itemSize.Height))
			fillRect(img, rect, itemPalette[i%len(itemPalette)])
			strokeRect(img, rect, borderColor)
			if r.ShowLabels {
				drawLabel(img, rect, strconv.Itoa(i))
			}
		})

	return img
}

// WritePNG renders the layout and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer, layout *fit.Layout, items []flow.Element, proposal geometry.Proposal) error {
	img := r.RenderImage(layout, items, proposal)
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap("rendering.WritePNG", errors.KindRender, err)
	}
	return nil
}

// fillRect fills rect with c, clipped to the image bounds.
func fillRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// strokeRect draws a one pixel border just inside rect.
func strokeRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	if rect.Dx() < 1 || rect.Dy() < 1 {
		return
	}
	fillRect(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), c)
	fillRect(img, image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), c)
	fillRect(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), c)
	fillRect(img, image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), c)
}

// drawLabel draws text at the top-left inside rect with the bitmap face.
func drawLabel(img *image.RGBA, rect image.Rectangle, text string) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: face,
		Dot:  fixed.P(rect.Min.X+3, rect.Min.Y+face.Ascent+1),
	}
	d.DrawString(text)
}
