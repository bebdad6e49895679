package blend

import (
	"scatterblend/pkg/core"
	"scatterblend/pkg/scatter"
	"scatterblend/pkg/weightmap"
)

// Scattered blends labels sampled at jittered lattice points. Each gathered
// point is classified exactly once per call; every cell then weighs the
// points within the blend radius with Kernel and normalizes.
type Scattered struct {
	cfg       Config
	radius    float64
	radiusSq  float64
	side      int
	scatterer *scatter.Scatterer
}

// NewScattered validates cfg and builds a scattered blender.
func NewScattered(cfg Config) (*Scattered, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	radius := cfg.Radius()
	s, err := scatter.New(cfg.Frequency, radius, cfg.RegionSize)
	if err != nil {
		return nil, err
	}
	return &Scattered{
		cfg:       cfg,
		radius:    radius,
		radiusSq:  radius * radius,
		side:      cfg.RegionSize,
		scatterer: s,
	}, nil
}

// Name returns the strategy identifier.
func (b *Scattered) Name() string { return "scattered" }

// RegionSize returns the region side in cells.
func (b *Scattered) RegionSize() int { return b.side }

// Radius returns the effective blend radius.
func (b *Scattered) Radius() float64 { return b.radius }

// Scatterer exposes the point source, for callers that visualize samples.
func (b *Scattered) Scatterer() *scatter.Scatterer { return b.scatterer }

// Blend computes the weight map of the region at (originX, originZ).
func (b *Scattered) Blend(seed int64, originX, originZ int32, classify core.Classifier) *weightmap.Map {
	m, _ := b.BlendE(seed, originX, originZ, classify.Fallible())
	return m
}

// BlendE is Blend for a fallible classifier. The first classifier error is
// returned unmodified and no map is produced.
func (b *Scattered) BlendE(seed int64, originX, originZ int32, classify core.ClassifierE) (*weightmap.Map, error) {
	points := b.scatterer.Gather(seed, originX, originZ)
	if len(points) == 0 {
		panic(InvariantError{Blender: b.Name(), OriginX: originX, OriginZ: originZ, Reason: "no scattered points in range"})
	}

	m := weightmap.New(b.side)
	// slots[n] is the layer index of points[n]'s label.
	slots := make([]int, len(points))
	for n, p := range points {
		label, err := classify(p.X, p.Z)
		if err != nil {
			return nil, err
		}
		slots[n] = m.Ensure(label)
	}

	log := Logger()
	if m.Len() == 1 && !b.cfg.DisableFastPath {
		m.Fill(m.Entries()[0].Label, 1)
		log.Debug().Str("blender", b.Name()).Int32("x", originX).Int32("z", originZ).
			Int("points", len(points)).Msg("single label, fast path")
		return m, nil
	}

	b.accumulate(m, points, slots, originX, originZ)
	log.Debug().Str("blender", b.Name()).Int32("x", originX).Int32("z", originZ).
		Int("points", len(points)).Int("labels", m.Len()).Msg("blended region")
	return m, nil
}

func (b *Scattered) accumulate(m *weightmap.Map, points []scatter.Point, slots []int, originX, originZ int32) {
	entries := m.Entries()
	dzSq := make([]float64, len(points))
	for zi := 0; zi < b.side; zi++ {
		z := float64(originZ) + float64(zi)
		// dz² is shared by the whole row.
		for n, p := range points {
			dz := p.Z - z
			dzSq[n] = dz * dz
		}
		for xi := 0; xi < b.side; xi++ {
			x := float64(originX) + float64(xi)
			idx := zi*b.side + xi
			total := 0.0
			for n, p := range points {
				dx := p.X - x
				w := Kernel(b.radiusSq, dx*dx+dzSq[n])
				if w == 0 {
					continue
				}
				entries[slots[n]].Weights[idx] += w
				total += w
			}
			normalize(m, idx, total, b.Name(), originX, originZ)
		}
	}
}

// Parameters reports the effective configuration.
func (b *Scattered) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Scatter",
			Params: []core.Parameter{
				core.FloatParam("frequency", "Lattice frequency", b.cfg.Frequency),
				core.FloatParam("density", "Points per unit area", scatter.ExpectedDensity(b.cfg.Frequency)),
				core.FloatParam("min_radius", "Minimum coverage radius", scatter.MinBlendRadius(b.cfg.Frequency)),
			},
		},
		{
			Name: "Blend",
			Params: []core.Parameter{
				core.FloatParam("padding", "Blend radius padding", b.radius-scatter.MinBlendRadius(b.cfg.Frequency)),
				core.FloatParam("radius", "Blend radius", b.radius),
				core.IntParam("size", "Region size", b.side),
				core.BoolParam("fast_path", "Single-label fast path", !b.cfg.DisableFastPath),
			},
		},
	}}
}
