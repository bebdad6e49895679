package blend

import (
	"scatterblend/pkg/core"
	"scatterblend/pkg/weightmap"
)

// Passthrough classifies every cell and gives its label full weight. It is
// the unblended reference the other strategies are compared against.
type Passthrough struct {
	side int
}

// NewPassthrough builds a passthrough blender for regions of side cells.
func NewPassthrough(side int) (*Passthrough, error) {
	if err := (GridConfig{RegionSize: side}).validate(false); err != nil {
		return nil, err
	}
	return &Passthrough{side: side}, nil
}

// Name returns the strategy identifier.
func (b *Passthrough) Name() string { return "passthrough" }

// RegionSize returns the region side in cells.
func (b *Passthrough) RegionSize() int { return b.side }

// Blend computes the weight map of the region at (originX, originZ).
func (b *Passthrough) Blend(seed int64, originX, originZ int32, classify core.Classifier) *weightmap.Map {
	m, _ := b.BlendE(seed, originX, originZ, classify.Fallible())
	return m
}

// BlendE is Blend for a fallible classifier. seed is unused.
func (b *Passthrough) BlendE(_ int64, originX, originZ int32, classify core.ClassifierE) (*weightmap.Map, error) {
	m := weightmap.New(b.side)
	for zi := 0; zi < b.side; zi++ {
		z := float64(originZ) + float64(zi)
		for xi := 0; xi < b.side; xi++ {
			label, err := classify(float64(originX)+float64(xi), z)
			if err != nil {
				return nil, err
			}
			slot := m.Ensure(label)
			m.Entries()[slot].Weights[zi*b.side+xi] = 1
		}
	}
	return m, nil
}

// Parameters reports the effective configuration.
func (b *Passthrough) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name:   "Passthrough",
		Params: []core.Parameter{core.IntParam("size", "Region size", b.side)},
	}}}
}
