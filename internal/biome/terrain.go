package biome

import (
	"math"

	"github.com/aquilax/go-perlin"

	"scatterblend/pkg/core"
	"scatterblend/pkg/weightmap"
)

// Terrain generates a height field per biome so blends can be judged on
// actual terrain rather than colour alone.
type Terrain struct {
	noises [10]*perlin.Perlin
}

// NewTerrain seeds the height noise fields.
func NewTerrain(seed int64) *Terrain {
	t := &Terrain{}
	for i := range t.noises {
		t.noises[i] = perlin.NewPerlin(perlinAlpha, perlinBeta, 1, seed+int64(i))
	}
	return t
}

func (t *Terrain) noise(i int, x, z, freq float64) float64 {
	return t.noises[i].Noise2D(x*freq, z*freq)
}

func (t *Terrain) ridge(i int, x, z, freq float64) float64 {
	return 1 - math.Abs(t.noise(i, x, z, freq))
}

// Height returns the terrain height of biome id at (x, z). Unknown ids are flat.
func (t *Terrain) Height(id core.Label, x, z float64) float64 {
	switch id {
	case Forest:
		v := t.noise(0, x, z, 0.01) + t.noise(1, x, z, 0.02)*0.5
		return v*(2.0/3.0)*20 + 49
	case Plains:
		v := t.noise(2, x, z, 0.015) + t.noise(3, x, z, 0.03)*0.5
		return v*(2.0/3.0)*20 + 35
	case Mountains:
		v := t.ridge(4, x, z, 0.005)
		v += t.ridge(5, x, z, 0.01) * 0.5
		v += t.ridge(6, x, z, 0.02) * 0.25
		v += t.ridge(7, x, z, 0.04) * 0.0625
		return v * 122.71428571428571
	case Desert:
		v := t.ridge(8, x, z, 0.015)
		v *= t.noise(9, x, z, 0.015)*0.5 + 0.5
		return v * 12.571428571428571
	}
	return 0
}

// BlendedHeight weighs each biome height at cell idx of a region whose
// minimum corner is (originX, originZ).
func (t *Terrain) BlendedHeight(m *weightmap.Map, originX, originZ int32, idx int) float64 {
	side := m.Side()
	x := float64(originX) + float64(idx%side)
	z := float64(originZ) + float64(idx/side)
	h := 0.0
	for _, e := range m.Entries() {
		if w := e.Weights[idx]; w != 0 {
			h += t.Height(e.Label, x, z) * w
		}
	}
	return h
}
