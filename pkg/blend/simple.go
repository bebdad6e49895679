package blend

import (
	"scatterblend/pkg/core"
	"scatterblend/pkg/weightmap"
)

// Simple convolves every integer cell within the kernel radius. Each cell
// sees the full kernel disk, so the normalization factor is a constant.
type Simple struct {
	cfg      GridConfig
	reachSq  int64
	invTotal float64
}

// NewSimple validates cfg and builds a dense convolution blender. The grid
// interval is ignored.
func NewSimple(cfg GridConfig) (*Simple, error) {
	if err := cfg.validate(false); err != nil {
		return nil, err
	}
	r := int64(cfg.Radius)
	reachSq := (r + 1) * (r + 1)
	var total int64
	for dz := -r; dz <= r; dz++ {
		for dx := -r; dx <= r; dx++ {
			total += gridKernel(reachSq, dx*dx+dz*dz)
		}
	}
	return &Simple{cfg: cfg, reachSq: reachSq, invTotal: 1 / float64(total)}, nil
}

// Name returns the strategy identifier.
func (b *Simple) Name() string { return "simple" }

// RegionSize returns the region side in cells.
func (b *Simple) RegionSize() int { return b.cfg.RegionSize }

// Blend computes the weight map of the region at (originX, originZ).
func (b *Simple) Blend(seed int64, originX, originZ int32, classify core.Classifier) *weightmap.Map {
	m, _ := b.BlendE(seed, originX, originZ, classify.Fallible())
	return m
}

// BlendE is Blend for a fallible classifier. seed is unused.
func (b *Simple) BlendE(_ int64, originX, originZ int32, classify core.ClassifierE) (*weightmap.Map, error) {
	side := b.cfg.RegionSize
	r := int32(b.cfg.Radius)
	last := int32(side - 1)

	m := weightmap.New(side)
	g, slots, err := sampleGrid(m, originX-r, originZ-r, originX+last+r, originZ+last+r, 0, classify)
	if err != nil {
		return nil, err
	}
	if m.Len() == 1 {
		m.Fill(m.Entries()[0].Label, 1)
		return m, nil
	}

	entries := m.Entries()
	for zi := 0; zi < side; zi++ {
		z := originZ + int32(zi)
		for xi := 0; xi < side; xi++ {
			x := originX + int32(xi)
			idx := zi*side + xi
			for dz := -r; dz <= r; dz++ {
				for dx := -r; dx <= r; dx++ {
					w := gridKernel(b.reachSq, int64(dx)*int64(dx)+int64(dz)*int64(dz))
					if w == 0 {
						continue
					}
					entries[slots[g.Index(x+dx, z+dz)]].Weights[idx] += float64(w)
				}
			}
			m.Scale(idx, b.invTotal)
		}
	}
	return m, nil
}

// Parameters reports the effective configuration.
func (b *Simple) Parameters() core.ParameterSnapshot {
	return gridParameters(b.cfg)
}
