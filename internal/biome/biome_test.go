package biome

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scatterblend/pkg/blend"
	"scatterblend/pkg/core"
)

func TestNoiseClassifierDeterministic(t *testing.T) {
	a := NewNoiseClassifier(2346864, DefaultTable(), 0, 0)
	b := NewNoiseClassifier(2346864, DefaultTable(), 0, 0)
	for i := 0; i < 200; i++ {
		x, z := float64(i)*37.3-2000, float64(i)*-11.9+500
		if a.Classify(x, z) != b.Classify(x, z) {
			t.Fatalf("classification differs at (%v,%v)", x, z)
		}
	}
}

func TestNoiseClassifierUsesWholeTable(t *testing.T) {
	c := NewNoiseClassifier(7, DefaultTable(), DefaultNoiseFrequency, DefaultOctaves)
	seen := map[core.Label]int{}
	for zi := 0; zi < 64; zi++ {
		for xi := 0; xi < 64; xi++ {
			seen[c.Classify(float64(xi)*201.5, float64(zi)*199.5)]++
		}
	}
	for _, b := range DefaultTable() {
		if seen[b.ID] == 0 {
			t.Fatalf("biome %s never selected: %v", b.Name, seen)
		}
	}
	assert.Len(t, seen, len(DefaultTable()))
}

func TestLookup(t *testing.T) {
	b, ok := Lookup(DefaultTable(), Desert)
	require.True(t, ok)
	assert.Equal(t, "desert", b.Name)
	_, ok = Lookup(DefaultTable(), 99)
	assert.False(t, ok)
}

func TestTerrainHeightRanges(t *testing.T) {
	terrain := NewTerrain(23627243)
	for i := 0; i < 500; i++ {
		x, z := float64(i)*13.7, float64(i)*-7.1
		if h := terrain.Height(Desert, x, z); h < 0 || h > 12.6 {
			t.Fatalf("desert height %v out of range", h)
		}
		if h := terrain.Height(Mountains, x, z); h < 0 || h > 122.72*1.8125 {
			t.Fatalf("mountain height %v out of range", h)
		}
		for _, id := range []core.Label{Forest, Plains} {
			if h := terrain.Height(id, x, z); math.IsNaN(h) || math.IsInf(h, 0) {
				t.Fatalf("biome %d height %v", id, h)
			}
		}
	}
	assert.Equal(t, 0.0, terrain.Height(42, 1, 2))
}

func TestBlendedHeightSingleBiome(t *testing.T) {
	b, err := blend.NewScattered(blend.Config{Frequency: 0.04, BlendRadiusPadding: 8, RegionSize: 16})
	require.NoError(t, err)
	m := b.Blend(1, 32, 48, func(float64, float64) core.Label { return Plains })
	terrain := NewTerrain(3)
	for idx := 0; idx < m.Cells(); idx++ {
		want := terrain.Height(Plains, float64(32+idx%16), float64(48+idx/16))
		assert.InDelta(t, want, terrain.BlendedHeight(m, 32, 48, idx), 1e-12)
	}
}

func TestScatteredBlendOverNoise(t *testing.T) {
	c := NewNoiseClassifier(2346864, DefaultTable(), 0.01, 2)
	b, err := blend.NewScattered(blend.DefaultConfig())
	require.NoError(t, err)
	for _, origin := range [][2]int32{{0, 0}, {640, -320}, {-1280, 1920}} {
		m := b.Blend(1234, origin[0], origin[1], c.Classifier())
		require.NoError(t, m.Check(1e-9), "origin %v", origin)
	}
}

type countingObserver struct{ hits, misses int }

func (o *countingObserver) CacheHit()  { o.hits++ }
func (o *countingObserver) CacheMiss() { o.misses++ }

func TestCachedClassifier(t *testing.T) {
	calls := 0
	inner := func(x, z float64) (core.Label, error) {
		calls++
		return core.Label(int(x) % 3), nil
	}
	obs := &countingObserver{}
	c, err := NewCachedClassifier(inner, 2, obs)
	require.NoError(t, err)

	for _, x := range []float64{1, 2, 1, 2, 1} {
		l, err := c.Classify(x, 0)
		require.NoError(t, err)
		assert.Equal(t, core.Label(int(x)%3), l)
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, 3, obs.hits)
	assert.Equal(t, 2, obs.misses)

	// Capacity 2: a third coordinate evicts the least recently used (2,0).
	_, _ = c.Classify(3, 0)
	_, _ = c.Classify(2, 0)
	assert.Equal(t, 4, calls)
	assert.Equal(t, 2, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestCachedClassifierDoesNotCacheErrors(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	c, err := NewCachedClassifier(func(float64, float64) (core.Label, error) {
		if fail {
			return 0, boom
		}
		return Forest, nil
	}, 8, nil)
	require.NoError(t, err)

	_, err = c.Classify(5, 5)
	assert.Same(t, boom, err)
	fail = false
	l, err := c.Classify(5, 5)
	require.NoError(t, err)
	assert.Equal(t, Forest, l)

	_, err = NewCachedClassifier(nil, 8, nil)
	assert.Error(t, err)
}
