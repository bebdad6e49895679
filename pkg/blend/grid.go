package blend

import (
	"fmt"

	"scatterblend/pkg/core"
	"scatterblend/pkg/weightmap"
)

// sampleGrid classifies every node of [gx0, gx1] x [gz0, gz1] and returns the
// grid together with each node's layer index in m.
func sampleGrid(m *weightmap.Map, gx0, gz0, gx1, gz1 int32, shift uint, classify core.ClassifierE) (*core.LabelGrid, []int, error) {
	g := core.NewLabelGrid(gx0, gz0, gx1, gz1, shift)
	if err := g.Fill(classify); err != nil {
		return nil, nil, err
	}
	cells := g.Cells()
	slots := make([]int, len(cells))
	for i, l := range cells {
		slots[i] = m.Ensure(l)
	}
	return g, slots, nil
}

// ConvolvedGrid samples labels on a coarse absolute grid and convolves the
// grid nodes around each cell with the kernel.
type ConvolvedGrid struct {
	cfg GridConfig
}

// NewConvolvedGrid validates cfg and builds a convolved grid blender.
func NewConvolvedGrid(cfg GridConfig) (*ConvolvedGrid, error) {
	if err := cfg.validate(true); err != nil {
		return nil, err
	}
	return &ConvolvedGrid{cfg: cfg}, nil
}

// Name returns the strategy identifier.
func (b *ConvolvedGrid) Name() string { return "convolved" }

// RegionSize returns the region side in cells.
func (b *ConvolvedGrid) RegionSize() int { return b.cfg.RegionSize }

// Blend computes the weight map of the region at (originX, originZ).
func (b *ConvolvedGrid) Blend(seed int64, originX, originZ int32, classify core.Classifier) *weightmap.Map {
	m, _ := b.BlendE(seed, originX, originZ, classify.Fallible())
	return m
}

// BlendE is Blend for a fallible classifier. The grid is absolute, so seed is unused.
func (b *ConvolvedGrid) BlendE(_ int64, originX, originZ int32, classify core.ClassifierE) (*weightmap.Map, error) {
	side := b.cfg.RegionSize
	r := int32(b.cfg.Radius)
	exp := b.cfg.GridIntervalExp
	last := int32(side - 1)

	m := weightmap.New(side)
	g, slots, err := sampleGrid(m,
		(originX-r)>>exp, (originZ-r)>>exp,
		(originX+last+r)>>exp, (originZ+last+r)>>exp,
		exp, classify)
	if err != nil {
		return nil, err
	}
	if m.Len() == 1 {
		m.Fill(m.Entries()[0].Label, 1)
		return m, nil
	}

	entries := m.Entries()
	reachSq := int64(r+1) * int64(r+1)
	for zi := 0; zi < side; zi++ {
		z := originZ + int32(zi)
		gz0, gz1 := (z-r)>>exp, (z+r)>>exp
		for xi := 0; xi < side; xi++ {
			x := originX + int32(xi)
			gx0, gx1 := (x-r)>>exp, (x+r)>>exp
			idx := zi*side + xi
			var total int64
			for gz := gz0; gz <= gz1; gz++ {
				dz := int64(z - gz<<exp)
				for gx := gx0; gx <= gx1; gx++ {
					dx := int64(x - gx<<exp)
					w := gridKernel(reachSq, dx*dx+dz*dz)
					if w == 0 {
						continue
					}
					entries[slots[g.Index(gx, gz)]].Weights[idx] += float64(w)
					total += w
				}
			}
			normalize(m, idx, float64(total), b.Name(), originX, originZ)
		}
	}
	return m, nil
}

// Parameters reports the effective configuration.
func (b *ConvolvedGrid) Parameters() core.ParameterSnapshot {
	return gridParameters(b.cfg)
}

// LerpedGrid computes convolved weights only every interval cells and
// bilinearly interpolates between them.
type LerpedGrid struct {
	cfg GridConfig
}

// NewLerpedGrid validates cfg and builds a lerped grid blender. The region
// size must be a multiple of the grid interval.
func NewLerpedGrid(cfg GridConfig) (*LerpedGrid, error) {
	if err := cfg.validate(true); err != nil {
		return nil, err
	}
	if cfg.RegionSize%cfg.Interval() != 0 {
		return nil, fmt.Errorf("%w: size %d, interval %d", ErrRegionNotAligned, cfg.RegionSize, cfg.Interval())
	}
	return &LerpedGrid{cfg: cfg}, nil
}

// Name returns the strategy identifier.
func (b *LerpedGrid) Name() string { return "lerped" }

// RegionSize returns the region side in cells.
func (b *LerpedGrid) RegionSize() int { return b.cfg.RegionSize }

// Blend computes the weight map of the region at (originX, originZ).
func (b *LerpedGrid) Blend(seed int64, originX, originZ int32, classify core.Classifier) *weightmap.Map {
	m, _ := b.BlendE(seed, originX, originZ, classify.Fallible())
	return m
}

// BlendE is Blend for a fallible classifier. The grid is absolute, so seed is unused.
func (b *LerpedGrid) BlendE(_ int64, originX, originZ int32, classify core.ClassifierE) (*weightmap.Map, error) {
	side := b.cfg.RegionSize
	interval := b.cfg.Interval()
	r := int32(b.cfg.Radius)
	exp := b.cfg.GridIntervalExp
	span := int32(side)

	m := weightmap.New(side)
	g, slots, err := sampleGrid(m,
		(originX-r)>>exp, (originZ-r)>>exp,
		(originX+span+r)>>exp, (originZ+span+r)>>exp,
		exp, classify)
	if err != nil {
		return nil, err
	}
	if m.Len() == 1 {
		m.Fill(m.Entries()[0].Label, 1)
		return m, nil
	}

	// Normalized weights at the interpolation anchors, inclusive of the far edge.
	anchors := side/interval + 1
	nodes := make([][]float64, m.Len())
	for i := range nodes {
		nodes[i] = make([]float64, anchors*anchors)
	}
	reachSq := int64(r+1) * int64(r+1)
	for az := 0; az < anchors; az++ {
		z := originZ + int32(az*interval)
		for ax := 0; ax < anchors; ax++ {
			x := originX + int32(ax*interval)
			idx := az*anchors + ax
			var total int64
			for gz := (z - r) >> exp; gz <= (z+r)>>exp; gz++ {
				dz := int64(z - gz<<exp)
				for gx := (x - r) >> exp; gx <= (x+r)>>exp; gx++ {
					dx := int64(x - gx<<exp)
					w := gridKernel(reachSq, dx*dx+dz*dz)
					if w == 0 {
						continue
					}
					nodes[slots[g.Index(gx, gz)]][idx] += float64(w)
					total += w
				}
			}
			if total == 0 {
				panic(InvariantError{Blender: b.Name(), OriginX: originX, OriginZ: originZ, Cell: idx, Reason: "zero total weight at anchor"})
			}
			inv := 1 / float64(total)
			for _, layer := range nodes {
				layer[idx] *= inv
			}
		}
	}

	step := 1 / float64(interval)
	for li, e := range m.Entries() {
		layer := nodes[li]
		for zi := 0; zi < side; zi++ {
			az, fz := zi/interval, float64(zi%interval)*step
			for xi := 0; xi < side; xi++ {
				ax, fx := xi/interval, float64(xi%interval)*step
				w00 := layer[az*anchors+ax]
				w01 := layer[az*anchors+ax+1]
				w10 := layer[(az+1)*anchors+ax]
				w11 := layer[(az+1)*anchors+ax+1]
				top := w00 + (w01-w00)*fx
				bottom := w10 + (w11-w10)*fx
				e.Weights[zi*side+xi] = top + (bottom-top)*fz
			}
		}
	}
	return m, nil
}

// Parameters reports the effective configuration.
func (b *LerpedGrid) Parameters() core.ParameterSnapshot {
	return gridParameters(b.cfg)
}

func gridParameters(cfg GridConfig) core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Grid",
		Params: []core.Parameter{
			core.IntParam("radius", "Kernel radius", cfg.Radius),
			core.IntParam("grid_exp", "Grid interval exponent", int(cfg.GridIntervalExp)),
			core.IntParam("size", "Region size", cfg.RegionSize),
		},
	}}}
}
