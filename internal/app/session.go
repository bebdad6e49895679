package app

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"scatterblend/internal/biome"
	"scatterblend/internal/render"
	"scatterblend/pkg/blend"
	"scatterblend/pkg/core"
)

// Session holds the view state independent of the windowing backend: the
// strategies that can be cycled, the classifier, and the rendered frame.
type Session struct {
	blenders []core.Blender
	current  int

	classify core.ClassifierE
	cache    *biome.CachedClassifier
	renderer *render.Renderer
	frame    *image.RGBA

	originX, originZ int32
	seed             int64
	workers          int
	dirty            bool
	lastRender       time.Duration
}

// NewSession builds every registered strategy from the config overrides.
// Strategies that reject the overrides are skipped with a warning.
func NewSession(cfg *Config) (*Session, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("view %dx%d must be positive", cfg.Width, cfg.Height)
	}
	mode, err := render.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	overrides := cfg.Overrides.Map()
	s := &Session{seed: cfg.Seed, workers: runtime.NumCPU(), dirty: true}
	for _, name := range core.BlenderNames() {
		b, err := core.NewBlender(name, overrides)
		if err != nil {
			log.Warn().Err(err).Str("blender", name).Msg("skipping blender")
			continue
		}
		if name == cfg.Blender {
			s.current = len(s.blenders)
		}
		s.blenders = append(s.blenders, b)
	}
	if len(s.blenders) == 0 {
		return nil, fmt.Errorf("no blender accepts the given options")
	}
	if s.blenders[s.current].Name() != cfg.Blender {
		return nil, fmt.Errorf("unknown or misconfigured blender %q", cfg.Blender)
	}

	table := biome.DefaultTable()
	noise := biome.NewNoiseClassifier(cfg.NoiseSeed, table, biome.DefaultNoiseFrequency, biome.DefaultOctaves)
	s.cache, err = biome.NewCachedClassifier(core.Classifier(noise.Classify).Fallible(), cfg.CacheSize, nil)
	if err != nil {
		return nil, err
	}
	s.classify = s.cache.Classify
	s.renderer = &render.Renderer{
		Mode:    mode,
		Palette: render.NewPalette(table),
		Terrain: biome.NewTerrain(cfg.NoiseSeed + 1),
	}
	s.frame = image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	return s, nil
}

// Blender returns the active strategy.
func (s *Session) Blender() core.Blender { return s.blenders[s.current] }

// Mode returns the active render mode.
func (s *Session) Mode() render.Mode { return s.renderer.Mode }

// NextBlender cycles to the following strategy.
func (s *Session) NextBlender() {
	s.current = (s.current + 1) % len(s.blenders)
	s.dirty = true
}

// NextMode cycles the render mode.
func (s *Session) NextMode() {
	s.renderer.Mode = s.renderer.Mode.Next()
	s.dirty = true
}

// Reseed changes the jitter seed. Cached classifications stay valid since
// the biome noise is unchanged.
func (s *Session) Reseed(seed int64) {
	s.seed = seed
	s.dirty = true
}

// Pan moves the view by whole regions of the active strategy.
func (s *Session) Pan(dx, dz int) {
	side := int32(s.Blender().RegionSize())
	s.originX += int32(dx) * side
	s.originZ += int32(dz) * side
	s.dirty = true
}

// Frame returns the current frame, re-rendering it first when the view changed.
func (s *Session) Frame(ctx context.Context) (*image.RGBA, bool, error) {
	if !s.dirty {
		return s.frame, false, nil
	}
	b := s.Blender()
	bounds := s.frame.Bounds()
	start := time.Now()
	tiles := blend.CoverTiles(s.originX, s.originZ, bounds.Dx(), bounds.Dy(), b.RegionSize())
	results, err := blend.Tiles(ctx, b, s.seed, tiles, s.classify, s.workers)
	if err != nil {
		return nil, false, err
	}

	s.renderer.OriginX, s.renderer.OriginZ = s.originX, s.originZ
	s.renderer.Seed = s.seed
	s.renderer.Scatterer = nil
	if sc, ok := b.(*blend.Scattered); ok {
		s.renderer.Scatterer = sc.Scatterer()
	}
	s.renderer.Compose(s.frame, results)
	s.lastRender = time.Since(start)
	s.dirty = false

	log.Debug().Str("blender", b.Name()).Stringer("mode", s.renderer.Mode).
		Int("tiles", len(tiles)).Dur("elapsed", s.lastRender).Msg("frame rendered")
	return s.frame, true, nil
}

// Status returns short lines describing the view.
func (s *Session) Status() []string {
	return []string{
		fmt.Sprintf("blender: %s", s.Blender().Name()),
		fmt.Sprintf("mode: %s", s.renderer.Mode),
		fmt.Sprintf("seed: %d", s.seed),
		fmt.Sprintf("origin: %d,%d", s.originX, s.originZ),
		fmt.Sprintf("render: %.1f ms", float64(s.lastRender.Microseconds())/1000),
		fmt.Sprintf("cached: %d", s.cache.Len()),
	}
}

// Parameters reports the active strategy's configuration when it has one.
func (s *Session) Parameters() core.ParameterSnapshot {
	if p, ok := s.Blender().(core.ParameterProvider); ok {
		return p.Parameters()
	}
	return core.ParameterSnapshot{}
}
