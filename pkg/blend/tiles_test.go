package blend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scatterblend/pkg/core"
)

func TestCoverTiles(t *testing.T) {
	got := CoverTiles(-16, 32, 40, 20, 16)
	want := []Tile{
		{-16, 32}, {0, 32}, {16, 32},
		{-16, 48}, {0, 48}, {16, 48},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("CoverTiles mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, CoverTiles(0, 0, 10, 10, 0))
}

func TestTilesMatchesSequentialBlend(t *testing.T) {
	cfg := scenarioConfig()
	cfg.RegionSize = 32
	b := mustScattered(t, cfg)
	tiles := CoverTiles(-32, -32, 96, 64, 32)
	classify := core.Classifier(seamAt32).Fallible()

	results, err := Tiles(context.Background(), b, 77, tiles, classify, 3)
	require.NoError(t, err)
	require.Len(t, results, len(tiles))
	for i, r := range results {
		assert.Equal(t, tiles[i], r.Tile)
		want := b.Blend(77, r.Tile.X, r.Tile.Z, seamAt32)
		if diff := cmp.Diff(want.Entries(), r.Map.Entries()); diff != "" {
			t.Fatalf("tile %v differs from sequential blend:\n%s", r.Tile, diff)
		}
	}
}

func TestTilesStopsOnClassifierError(t *testing.T) {
	b := mustScattered(t, scenarioConfig())
	boom := errors.New("classifier exhausted")
	var calls atomic.Int64
	classify := func(x, z float64) (core.Label, error) {
		if calls.Add(1) > 50 {
			return 0, boom
		}
		return labelA, nil
	}
	results, err := Tiles(context.Background(), b, 1, CoverTiles(0, 0, 256, 256, 64), classify, 2)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "tile (")
}

func TestTilesCanceled(t *testing.T) {
	b := mustScattered(t, scenarioConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Tiles(ctx, b, 1, CoverTiles(0, 0, 128, 128, 64), core.Classifier(seamAt32).Fallible(), 0)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, context.Canceled)
}
