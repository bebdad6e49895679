package main

import (
	"context"
	"flag"
	"image"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"scatterblend/internal/app"
	"scatterblend/internal/biome"
	"scatterblend/internal/logging"
	"scatterblend/internal/render"
	"scatterblend/pkg/blend"
	"scatterblend/pkg/core"
)

func main() {
	name := flag.String("blender", "scattered", "blend strategy")
	modeName := flag.String("mode", "blend", "render mode: blend, borders, height or points")
	width := flag.Int("width", 768, "image width in cells")
	height := flag.Int("height", 768, "image height in cells")
	originX := flag.Int("x", 0, "world x of the top-left cell")
	originZ := flag.Int("z", 0, "world z of the top-left cell")
	seed := flag.Int64("seed", 1234, "jitter seed")
	noiseSeed := flag.Int64("noise-seed", 2346864, "biome noise seed")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel region blends")
	cacheSize := flag.Int("cache", biome.DefaultCacheSize, "classification cache entries")
	out := flag.String("out", "blend.png", "output PNG path")
	verbose := flag.Bool("v", false, "debug logging")
	var overrides app.KVList
	flag.Var(&overrides, "set", "blender option in key=value form (repeatable)")
	flag.Parse()

	logging.Setup(*verbose)

	mode, err := render.ParseMode(*modeName)
	if err != nil {
		log.Fatal().Err(err).Msg("bad mode")
	}
	b, err := core.NewBlender(*name, overrides.Map())
	if err != nil {
		log.Fatal().Err(err).Str("blender", *name).Msg("cannot build blender")
	}

	table := biome.DefaultTable()
	noise := biome.NewNoiseClassifier(*noiseSeed, table, biome.DefaultNoiseFrequency, biome.DefaultOctaves)
	cached, err := biome.NewCachedClassifier(core.Classifier(noise.Classify).Fallible(), *cacheSize, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("classifier")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ox, oz := int32(*originX), int32(*originZ)
	tiles := blend.CoverTiles(ox, oz, *width, *height, b.RegionSize())
	start := time.Now()
	results, err := blend.Tiles(ctx, b, *seed, tiles, cached.Classify, *workers)
	if err != nil {
		log.Fatal().Err(err).Msg("blend failed")
	}
	log.Info().Str("blender", b.Name()).Int("tiles", len(tiles)).Int("cached", cached.Len()).
		Dur("elapsed", time.Since(start)).Msg("blended")

	r := &render.Renderer{
		Mode:    mode,
		Palette: render.NewPalette(table),
		Terrain: biome.NewTerrain(*noiseSeed + 1),
		Seed:    *seed,
		OriginX: ox,
		OriginZ: oz,
	}
	if sc, ok := b.(*blend.Scattered); ok {
		r.Scatterer = sc.Scatterer()
	}
	img := image.NewRGBA(image.Rect(0, 0, *width, *height))
	r.Compose(img, results)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("create output")
	}
	if err := render.WritePNG(f, img); err != nil {
		f.Close()
		log.Fatal().Err(err).Str("path", *out).Msg("write output")
	}
	if err := f.Close(); err != nil {
		log.Fatal().Err(err).Str("path", *out).Msg("close output")
	}
	log.Info().Str("path", *out).Stringer("mode", mode).Msg("saved image")
}
