// Package weightmap holds the per-region label weight distribution produced by
// a blend: one weight buffer per distinct label, indexed by cell.
package weightmap

import (
	"fmt"
	"math"
)

// Label identifies a discrete classification value such as a biome id.
type Label int32

// Entry is the weight layer of a single label. Weights is row-major with
// index zi*side + xi.
type Entry struct {
	Label   Label
	Weights []float64
}

// Map is a small ordered set of label layers for one square region. The
// number of distinct labels per region is small (typically 1-4), so lookups
// are linear scans.
type Map struct {
	side    int
	entries []Entry
}

// New returns an empty map for a region of side x side cells.
func New(side int) *Map {
	if side < 0 {
		side = 0
	}
	return &Map{side: side}
}

// Side returns the region side length in cells.
func (m *Map) Side() int { return m.side }

// Cells returns the number of cells per layer.
func (m *Map) Cells() int { return m.side * m.side }

// Len returns the number of distinct labels.
func (m *Map) Len() int { return len(m.entries) }

// Entries exposes the layers in first-encountered order.
func (m *Map) Entries() []Entry { return m.entries }

// Labels returns the labels in first-encountered order.
func (m *Map) Labels() []Label {
	out := make([]Label, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Label
	}
	return out
}

// Index returns the position of label in Entries, or -1.
func (m *Map) Index(label Label) int {
	for i := range m.entries {
		if m.entries[i].Label == label {
			return i
		}
	}
	return -1
}

// Ensure returns the position of label, allocating a zeroed layer on first use.
func (m *Map) Ensure(label Label) int {
	if i := m.Index(label); i >= 0 {
		return i
	}
	m.entries = append(m.entries, Entry{Label: label, Weights: make([]float64, m.Cells())})
	return len(m.entries) - 1
}

// Layer returns the weight buffer of label, or nil if it is absent.
func (m *Map) Layer(label Label) []float64 {
	if i := m.Index(label); i >= 0 {
		return m.entries[i].Weights
	}
	return nil
}

// Weight returns the weight of label at cell idx; absent labels weigh zero.
func (m *Map) Weight(label Label, idx int) float64 {
	if w := m.Layer(label); w != nil {
		return w[idx]
	}
	return 0
}

// Fill sets every cell of label's layer to v, allocating the layer if needed.
func (m *Map) Fill(label Label, v float64) {
	slot := m.Ensure(label)
	w := m.entries[slot].Weights
	for i := range w {
		w[i] = v
	}
}

// Sum returns the total weight across all labels at cell idx.
func (m *Map) Sum(idx int) float64 {
	total := 0.0
	for _, e := range m.entries {
		total += e.Weights[idx]
	}
	return total
}

// Dominant returns the label with the greatest weight at cell idx. Ties keep
// the earlier entry. ok is false for an empty map.
func (m *Map) Dominant(idx int) (label Label, weight float64, ok bool) {
	weight = math.Inf(-1)
	for _, e := range m.entries {
		if e.Weights[idx] > weight {
			label, weight, ok = e.Label, e.Weights[idx], true
		}
	}
	return label, weight, ok
}

// Scale multiplies every layer at cell idx by f.
func (m *Map) Scale(idx int, f float64) {
	for _, e := range m.entries {
		e.Weights[idx] *= f
	}
}

// Check verifies that every cell sums to 1 within tol and that no weight is
// negative or NaN.
func (m *Map) Check(tol float64) error {
	if len(m.entries) == 0 {
		return fmt.Errorf("weight map has no entries")
	}
	for idx := 0; idx < m.Cells(); idx++ {
		for _, e := range m.entries {
			w := e.Weights[idx]
			if math.IsNaN(w) || w < 0 {
				return fmt.Errorf("label %d cell %d: invalid weight %v", e.Label, idx, w)
			}
		}
		if s := m.Sum(idx); math.Abs(s-1) > tol {
			return fmt.Errorf("cell %d (x=%d z=%d): weights sum to %.12f", idx, idx%m.side, idx/m.side, s)
		}
	}
	return nil
}
