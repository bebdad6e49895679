package core

// LabelGrid stores labels sampled on a regular lattice in row-major order.
// Node (gx, gz) sits at world coordinate (gx<<Shift, gz<<Shift); MinX/MinZ are
// the first node indices held by the grid.
type LabelGrid struct {
	MinX, MinZ int32
	W, H       int
	Shift      uint
	data       []Label
}

// NewLabelGrid allocates a grid covering nodes [minX, maxX] x [minZ, maxZ].
func NewLabelGrid(minX, minZ, maxX, maxZ int32, shift uint) *LabelGrid {
	w := int(maxX-minX) + 1
	h := int(maxZ-minZ) + 1
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &LabelGrid{MinX: minX, MinZ: minZ, W: w, H: h, Shift: shift, data: make([]Label, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *LabelGrid) Cells() []Label { return g.data }

// Index returns the linear slice index for absolute node coordinates.
func (g *LabelGrid) Index(gx, gz int32) int {
	return int(gz-g.MinZ)*g.W + int(gx-g.MinX)
}

// At returns the label stored at absolute node coordinates.
func (g *LabelGrid) At(gx, gz int32) Label { return g.data[g.Index(gx, gz)] }

// Fill classifies every node using its world coordinate.
func (g *LabelGrid) Fill(classify ClassifierE) error {
	for zi := 0; zi < g.H; zi++ {
		wz := float64((g.MinZ + int32(zi)) << g.Shift)
		for xi := 0; xi < g.W; xi++ {
			wx := float64((g.MinX + int32(xi)) << g.Shift)
			label, err := classify(wx, wz)
			if err != nil {
				return err
			}
			g.data[zi*g.W+xi] = label
		}
	}
	return nil
}

// Distinct returns the labels present in first-seen order.
func (g *LabelGrid) Distinct() []Label {
	var out []Label
	for _, l := range g.data {
		seen := false
		for _, o := range out {
			if o == l {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, l)
		}
	}
	return out
}
