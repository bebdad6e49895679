package blend

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"scatterblend/pkg/core"
	"scatterblend/pkg/weightmap"
)

// Tile addresses one region by its minimum world corner.
type Tile struct {
	X, Z int32
}

// TileResult pairs a tile with its weight map.
type TileResult struct {
	Tile Tile
	Map  *weightmap.Map
}

// CoverTiles returns the tiles of side cells that cover the width x height
// area starting at (originX, originZ), row by row.
func CoverTiles(originX, originZ int32, width, height, side int) []Tile {
	if side <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	var tiles []Tile
	for z := 0; z < height; z += side {
		for x := 0; x < width; x += side {
			tiles = append(tiles, Tile{X: originX + int32(x), Z: originZ + int32(z)})
		}
	}
	return tiles
}

// Tiles blends every tile concurrently with at most workers goroutines
// (unbounded when workers <= 0). Results keep the order of tiles. Regions
// share no state, so the only requirement is a reentrant classifier. The
// first classifier error cancels the remaining tiles.
func Tiles(ctx context.Context, b core.Blender, seed int64, tiles []Tile, classify core.ClassifierE, workers int) ([]TileResult, error) {
	out := make([]TileResult, len(tiles))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, t := range tiles {
		i, t := i, t
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := b.BlendE(seed, t.X, t.Z, classify)
			if err != nil {
				return fmt.Errorf("tile (%d,%d): %w", t.X, t.Z, err)
			}
			out[i] = TileResult{Tile: t, Map: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
