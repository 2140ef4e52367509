// Package fittest provides test doubles and golden snapshot support for
// flow layouts: a placement recorder standing in for a host, and a
// Snapshot type comparing measured and placed output against files under
// testdata/.
package fittest

import "github.com/go-fit/fit/pkg/geometry"

// Placement is one recorded host callback invocation.
type Placement struct {
	Index    int
	Origin   geometry.Offset
	Proposal geometry.Proposal
}

// Recorder collects placements in callback order. The zero value is ready
// to use; pass Record as the placement callback.
type Recorder struct {
	Placements []Placement
}

// Record appends one placement. Callback order follows item index order,
// so recorded placements are sorted by Index after a full Place call.
func (r *Recorder) Record(index int, origin geometry.Offset, proposal geometry.Proposal) {
	r.Placements = append(r.Placements, Placement{Index: index, Origin: origin, Proposal: proposal})
}

// Reset clears recorded placements, keeping backing storage.
func (r *Recorder) Reset() {
	r.Placements = r.Placements[:0]
}
