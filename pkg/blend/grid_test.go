package blend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scatterblend/pkg/core"
)

// stripes alternates labels every 20 cells along x and flips on z < 0.
func stripes(x, z float64) core.Label {
	band := core.Label(int(x+1000)/20) % 3
	if z < 0 {
		band = 2 - band
	}
	return band + 1
}

func gridBlenders(t *testing.T, cfg GridConfig) []core.Blender {
	t.Helper()
	conv, err := NewConvolvedGrid(cfg)
	require.NoError(t, err)
	lerp, err := NewLerpedGrid(cfg)
	require.NoError(t, err)
	simple, err := NewSimple(cfg)
	require.NoError(t, err)
	pass, err := NewPassthrough(cfg.RegionSize)
	require.NoError(t, err)
	return []core.Blender{conv, lerp, simple, pass}
}

func TestGridStrategiesNormalize(t *testing.T) {
	cfg := GridConfig{Radius: 12, GridIntervalExp: 2, RegionSize: 32}
	for _, b := range gridBlenders(t, cfg) {
		for _, origin := range [][2]int32{{0, 0}, {-37, -5}, {96, -64}} {
			m := b.Blend(0, origin[0], origin[1], stripes)
			require.NotNil(t, m)
			if err := m.Check(1e-9); err != nil {
				t.Fatalf("%s at %v: %v", b.Name(), origin, err)
			}
			assert.GreaterOrEqual(t, m.Len(), 2, "%s at %v", b.Name(), origin)
		}
	}
}

func TestGridStrategiesSingleLabel(t *testing.T) {
	for _, b := range gridBlenders(t, DefaultGridConfig()) {
		m := b.Blend(0, 128, 128, func(float64, float64) core.Label { return 4 })
		require.Equal(t, 1, m.Len(), b.Name())
		for idx, w := range m.Entries()[0].Weights {
			if w != 1 {
				t.Fatalf("%s: cell %d weight %v", b.Name(), idx, w)
			}
		}
	}
}

func TestConvolvedAtUnitIntervalMatchesSimple(t *testing.T) {
	cfg := GridConfig{Radius: 6, GridIntervalExp: 0, RegionSize: 16}
	conv, err := NewConvolvedGrid(cfg)
	require.NoError(t, err)
	simple, err := NewSimple(cfg)
	require.NoError(t, err)

	a := conv.Blend(0, -8, 3, stripes)
	b := simple.Blend(0, -8, 3, stripes)
	require.ElementsMatch(t, a.Labels(), b.Labels())
	for _, l := range a.Labels() {
		for idx := 0; idx < a.Cells(); idx++ {
			assert.InDelta(t, a.Weight(l, idx), b.Weight(l, idx), 1e-12, "label %d cell %d", l, idx)
		}
	}
}

func TestLerpedMatchesConvolvedAtAnchors(t *testing.T) {
	cfg := GridConfig{Radius: 16, GridIntervalExp: 3, RegionSize: 32}
	conv, err := NewConvolvedGrid(cfg)
	require.NoError(t, err)
	lerp, err := NewLerpedGrid(cfg)
	require.NoError(t, err)

	a := conv.Blend(0, 5, -11, stripes)
	b := lerp.Blend(0, 5, -11, stripes)
	interval := cfg.Interval()
	for _, l := range a.Labels() {
		for zi := 0; zi < cfg.RegionSize; zi += interval {
			for xi := 0; xi < cfg.RegionSize; xi += interval {
				idx := zi*cfg.RegionSize + xi
				assert.InDelta(t, a.Weight(l, idx), b.Weight(l, idx), 1e-12, "label %d anchor (%d,%d)", l, xi, zi)
			}
		}
	}
}

func TestPassthroughKeepsCellLabel(t *testing.T) {
	b, err := NewPassthrough(8)
	require.NoError(t, err)
	m := b.Blend(0, 28, -4, stripes)
	for zi := 0; zi < 8; zi++ {
		for xi := 0; xi < 8; xi++ {
			want := stripes(float64(28+xi), float64(-4+zi))
			w := m.Weight(want, zi*8+xi)
			if w != 1 {
				t.Fatalf("cell (%d,%d): label %d weight %v", xi, zi, want, w)
			}
		}
	}
}

func TestGridConfigErrors(t *testing.T) {
	_, err := NewLerpedGrid(GridConfig{Radius: 16, GridIntervalExp: 3, RegionSize: 20})
	assert.ErrorIs(t, err, ErrRegionNotAligned)

	_, err = NewConvolvedGrid(GridConfig{Radius: 4, GridIntervalExp: 3, RegionSize: 16})
	assert.ErrorIs(t, err, ErrRadiusTooSmall)

	_, err = NewSimple(GridConfig{Radius: -1, RegionSize: 16})
	assert.ErrorIs(t, err, ErrRadiusTooSmall)

	_, err = NewPassthrough(0)
	assert.Error(t, err)

	_, err = GridFromMap(map[string]string{"grid_exp": "11"})
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = GridFromMap(map[string]string{"radius": "wide"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	c, err := GridFromMap(map[string]string{"radius": "10", "grid_exp": "1", "size": "8"})
	require.NoError(t, err)
	assert.Equal(t, GridConfig{Radius: 10, GridIntervalExp: 1, RegionSize: 8}, c)
}

func TestGridPropagatesClassifierError(t *testing.T) {
	boom := errors.New("boom")
	failing := func(float64, float64) (core.Label, error) { return 0, boom }
	for _, b := range gridBlenders(t, DefaultGridConfig()) {
		m, err := b.BlendE(0, 0, 0, failing)
		assert.Nil(t, m, b.Name())
		assert.Same(t, boom, err, b.Name())
	}
}

func benchmarkBlender(b *testing.B, name string, cfg map[string]string) {
	blender, err := core.NewBlender(name, cfg)
	if err != nil {
		b.Fatalf("new %s: %v", name, err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		blender.Blend(int64(i), int32(i*16), 0, stripes)
	}
}

func BenchmarkConvolved(b *testing.B)   { benchmarkBlender(b, "convolved", nil) }
func BenchmarkLerped(b *testing.B)      { benchmarkBlender(b, "lerped", nil) }
func BenchmarkSimple(b *testing.B)      { benchmarkBlender(b, "simple", nil) }
func BenchmarkPassthrough(b *testing.B) { benchmarkBlender(b, "passthrough", nil) }
