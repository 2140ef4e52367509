package cli

import (
	"github.com/go-fit/fit/cmd/fit/internal/scene"
	"github.com/go-fit/fit/pkg/geometry"
)

// layoutReport is the machine-readable measurement of one scene. It backs
// both the --json flags and the serve command's /layout endpoint.
type layoutReport struct {
	Scene string            `json:"scene,omitempty"`
	Size  sizeReport        `json:"size"`
	Lines []lineReport      `json:"lines"`
	Items []placementReport `json:"items,omitempty"`
}

type sizeReport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// lineReport describes one committed line. Distance is the resolved gap to
// the previous line; fill is the occupied share of the offered width, 0 for
// unbounded containers.
type lineReport struct {
	Index    int     `json:"index"`
	Items    []int   `json:"items"`
	Length   float64 `json:"length"`
	Height   float64 `json:"height"`
	Distance float64 `json:"distance"`
	Fill     float64 `json:"fill"`
}

// placementReport is one item's absolute frame.
type placementReport struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// buildLayoutReport measures the document and collects the line partition.
// With placements, it also places the layout at origin within its measured
// bounds and records every item frame.
func buildLayoutReport(doc *scene.Document, scenePath string, origin geometry.Offset, placements bool) layoutReport {
	layout := doc.Layout()
	items := doc.Elements()
	proposal := doc.Proposal()

	size := layout.Measure(items, proposal)
	lines := layout.Lines()

	report := layoutReport{
		Scene: scenePath,
		Size:  sizeReport{Width: size.Width, Height: size.Height},
		Lines: make([]lineReport, 0, len(lines)),
	}

	for i, line := range lines {
		indices := make([]int, line.Count())
		for p := range indices {
			indices[p] = line.Item(p)
		}
		report.Lines = append(report.Lines, lineReport{
			Index:    line.Index(),
			Items:    indices,
			Length:   line.Length(),
			Height:   line.Height(),
			Distance: layout.LineDistance(i),
			Fill:     line.FillRatio(),
		})
	}

	if placements {
		report.Items = make([]placementReport, 0, len(items))
		rect := geometry.RectFromLTWH(origin.X, origin.Y, size.Width, size.Height)
		layout.Place(items, rect, proposal, func(index int, at geometry.Offset, _ geometry.Proposal) {
			itemSize := layout.ItemSize(index)
			report.Items = append(report.Items, placementReport{
				Index:  index,
				X:      at.X,
				Y:      at.Y,
				Width:  itemSize.Width,
				Height: itemSize.Height,
			})
		})
	}

	return report
}
