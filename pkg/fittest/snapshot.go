package fittest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-fit/fit/pkg/fit"
	"github.com/go-fit/fit/pkg/flow"
	"github.com/go-fit/fit/pkg/geometry"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the measured lines and placed items of one layout.
type Snapshot struct {
	Proposal [2]float64   `json:"proposal"`
	Size     [2]float64   `json:"size"`
	Lines    []LineRecord `json:"lines,omitempty"`
	Items    []ItemRecord `json:"items,omitempty"`
}

// LineRecord is the serialized form of one committed line.
type LineRecord struct {
	Index  int     `json:"index"`
	Items  []int   `json:"items"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
	Fill   float64 `json:"fill"`
}

// ItemRecord is the serialized placement of one item.
type ItemRecord struct {
	Index  int        `json:"index"`
	Origin [2]float64 `json:"origin"`
	Size   [2]float64 `json:"size"`
}

// Capture measures and places items through layout and serializes the
// outcome. The proposal is recorded raw; all derived metrics are rounded
// to two decimals for stable files.
func Capture(layout *fit.Layout, items []flow.Element, rect geometry.Rect, proposal geometry.Proposal) *Snapshot {
	recorder := &Recorder{}
	layout.Place(items, rect, proposal, recorder.Record)

	size := layout.Size()
	snap := &Snapshot{
		Proposal: [2]float64{proposal.Width, proposal.Height},
		Size:     [2]float64{round2(size.Width), round2(size.Height)},
	}

	for _, line := range layout.Lines() {
		indices := make([]int, line.Count())
		for p := range indices {
			indices[p] = line.Item(p)
		}
		snap.Lines = append(snap.Lines, LineRecord{
			Index:  line.Index(),
			Items:  indices,
			Length: round2(line.Length()),
			Height: round2(line.Height()),
			Fill:   round2(line.FillRatio()),
		})
	}

	for _, p := range recorder.Placements {
		itemSize := layout.ItemSize(p.Index)
		snap.Items = append(snap.Items, ItemRecord{
			Index:  p.Index,
			Origin: [2]float64{round2(p.Origin.X), round2(p.Origin.Y)},
			Size:   [2]float64{round2(itemSize.Width), round2(itemSize.Height)},
		})
	}

	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When FIT_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("FIT_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: FIT_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: FIT_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a unified diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := len(expectedLines)
	if len(actualLines) > maxLen {
		maxLen = len(actualLines)
	}

	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
