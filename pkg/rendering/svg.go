package rendering

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-fit/fit/pkg/errors"
	"github.com/go-fit/fit/pkg/fit"
	"github.com/go-fit/fit/pkg/flow"
	"github.com/go-fit/fit/pkg/geometry"
)

var svgPalette = []string{
	"#4c8ed9", "#e08e45", "#66b86e", "#cf6b77", "#9a7fd1", "#5bb8b2",
}

// WriteSVG measures and places items, then emits the arrangement as a
// standalone SVG document. Scaling is left to the viewer; coordinates are
// layout units offset by Padding.
func (r *Renderer) WriteSVG(w io.Writer, layout *fit.Layout, items []flow.Element, proposal geometry.Proposal) error {
	size := layout.Measure(items, proposal)
	width := size.Width + 2*r.Padding
	height := size.Height + 2*r.Padding
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(fmt.Sprintf(`<svg width="%s" height="%s" xmlns="http://www.w3.org/2000/svg">`+"\n",
		svgNum(width), svgNum(height)))
	b.WriteString("  <defs><style>text { font-family: monospace; font-size: 8px; fill: #ffffff; }</style></defs>\n")

	background := "#ffffff"
	if r.Background.A != 0 {
		background = fmt.Sprintf("#%02x%02x%02x", r.Background.R, r.Background.G, r.Background.B)
	}
	b.WriteString(fmt.Sprintf(`  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
		svgNum(width), svgNum(height), background))

	if r.ShowGuides {
		y := 0.0
		for i, line := range layout.Lines() {
			y += layout.LineDistance(i) + line.Height()
			b.WriteString(fmt.Sprintf(`  <line x1="0" y1="%s" x2="%s" y2="%s" stroke="#b5b5b5" stroke-width="0.5"/>`+"\n",
				svgNum(y+r.Padding), svgNum(width), svgNum(y+r.Padding)))
		}
	}

	layout.Place(items, geometry.RectFromLTWH(0, 0, size.Width, size.Height), proposal,
		func(i int, origin geometry.Offset, _ geometry.Proposal) {
			itemSize := layout.ItemSize(i)
			b.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="#2b2b2b" stroke-width="0.5"/>`+"\n",
				svgNum(origin.X+r.Padding), svgNum(origin.Y+r.Padding),
				svgNum(itemSize.Width), svgNum(itemSize.Height),
				svgPalette[i%len(svgPalette)]))
			if r.ShowLabels {
				b.WriteString(fmt.Sprintf(`  <text x="%s" y="%s">%d</text>`+"\n",
					svgNum(origin.X+r.Padding+2), svgNum(origin.Y+r.Padding+9), i))
			}
		})

	b.WriteString("</svg>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap("rendering.WriteSVG", errors.KindRender, err)
	}
	return nil
}

// svgNum formats a coordinate without trailing zero noise.
func svgNum(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
