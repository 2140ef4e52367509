package flow

import "github.com/go-fit/fit/pkg/geometry"

// Cache holds every intermediate result of the measurement and placement
// passes for one layout participant, in parallel index-aligned containers:
// per-item sizes, sizing proposals, anchors, and distance-to-previous-item;
// per-line committed Lines, gaps, and resolved styles; the aggregate size;
// and, after placement, per-item locations relative to the bounding
// rectangle's origin together with the width they were computed under.
//
// A Cache starts dirty, so the first Validate always computes. A full
// reset truncates the containers in place, reusing their backing storage
// across recomputations.
//
// One Cache belongs to one layout participant. Callers serialize
// measurement and placement against it; the Cache itself does no locking.
type Cache struct {
	sizes     []geometry.Size
	proposals []geometry.Proposal
	anchors   []float64
	distances []float64

	lines    []Line
	lineGaps []float64
	styles   []LineStyle

	size geometry.Size

	dirty    bool
	measured geometry.Proposal

	locations []geometry.Offset
	placed    geometry.Proposal
}

// NewCache returns a cache pre-sized for the expected item count.
// The capacity is a hint: the containers grow as needed.
func NewCache(capacity int) *Cache {
	return &Cache{
		sizes:     make([]geometry.Size, 0, capacity),
		proposals: make([]geometry.Proposal, 0, capacity),
		anchors:   make([]float64, 0, capacity),
		distances: make([]float64, 0, capacity),
		locations: make([]geometry.Offset, 0, capacity),
		dirty:     true,
	}
}

// MarkDirty invalidates every cached result. The next Validate recomputes.
func (c *Cache) MarkDirty() {
	c.dirty = true
}

// Dirty reports whether the cache requires recomputation.
func (c *Cache) Dirty() bool {
	return c.dirty
}

// Validate gates recomputation: when the cache is dirty or the remembered
// width differs from the proposal's width, it resets every container, runs
// recompute to repopulate the measurement results, and transitions clean.
// The height component never participates in the comparison: height
// changes cannot alter a width-driven line partition.
func (c *Cache) Validate(proposal geometry.Proposal, recompute func()) {
	if !c.dirty && c.measured.Width == proposal.Width {
		return
	}
	c.reset()
	recompute()
	c.dirty = false
	c.measured = proposal
}

// reset truncates every container, keeping backing storage for reuse.
func (c *Cache) reset() {
	c.sizes = c.sizes[:0]
	c.proposals = c.proposals[:0]
	c.anchors = c.anchors[:0]
	c.distances = c.distances[:0]
	c.lines = c.lines[:0]
	c.lineGaps = c.lineGaps[:0]
	c.styles = c.styles[:0]
	c.size = geometry.Size{}
	c.locations = c.locations[:0]
	c.placed = geometry.Proposal{}
}

// canReusePlacement reports whether cached locations can be replayed
// outright: one location per item, computed under the same width.
func (c *Cache) canReusePlacement(count int, proposal geometry.Proposal) bool {
	return len(c.locations) == count && c.placed.Width == proposal.Width
}

// Size returns the aggregate size computed by the last measurement pass.
func (c *Cache) Size() geometry.Size {
	return c.size
}

// Lines returns the committed line list in creation order. Treat the
// returned slice as read-only.
func (c *Cache) Lines() []Line {
	return c.lines
}

// Styles returns the resolved per-line styles, index-aligned with Lines.
// Treat the returned slice as read-only.
func (c *Cache) Styles() []LineStyle {
	return c.styles
}

// ItemSize returns the measured size of the item at index.
func (c *Cache) ItemSize(index int) geometry.Size {
	return c.sizes[index]
}

// ItemDistance returns the gap between the item at index and the previous
// item on its line; 0 when the item leads its line.
func (c *Cache) ItemDistance(index int) float64 {
	return c.distances[index]
}

// LineDistance returns the gap between the line at index and the previous
// line; 0 for the first line.
func (c *Cache) LineDistance(index int) float64 {
	return c.lineGaps[index]
}
