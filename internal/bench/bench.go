// Package bench times blend strategies over a fixed area and reports scatter
// density statistics.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"scatterblend/pkg/blend"
	"scatterblend/pkg/core"
	"scatterblend/pkg/scatter"
)

// Config controls a timing run.
type Config struct {
	Width, Height   int
	PrepIterations  int
	TimedIterations int
	Seed            int64
	// Workers bounds the goroutines blending tiles; 1 blends sequentially.
	Workers int
}

// DefaultConfig mirrors the reference comparison setup.
func DefaultConfig() Config {
	return Config{Width: 512, Height: 512, PrepIterations: 16, TimedIterations: 128, Seed: 1234, Workers: 1}
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("bench: area %dx%d must be positive", c.Width, c.Height)
	}
	if c.TimedIterations <= 0 {
		return fmt.Errorf("bench: timed iterations must be positive, got %d", c.TimedIterations)
	}
	if c.PrepIterations < 0 {
		return fmt.Errorf("bench: prep iterations must not be negative, got %d", c.PrepIterations)
	}
	return nil
}

// ClassifierFactory builds the classifier for one iteration. A fresh
// classifier per seed keeps caches from leaking across iterations.
type ClassifierFactory func(seed int64) (core.ClassifierE, error)

// Result summarizes the timed iterations of one strategy.
type Result struct {
	Name       string
	Iterations int
	Total      time.Duration
	// NsPerValue is the mean cost of one cell weight set.
	NsPerValue float64
	MeanMs     float64
	StdDevMs   float64
}

// Run blends the configured area PrepIterations+TimedIterations times,
// advancing the seed every iteration, and times the last TimedIterations.
func Run(ctx context.Context, b core.Blender, newClassifier ClassifierFactory, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	log := zerolog.Ctx(ctx)
	tiles := blend.CoverTiles(0, 0, cfg.Width, cfg.Height, b.RegionSize())
	sw := NewStopwatch(cfg.PrepIterations)
	for it := 0; it < cfg.PrepIterations+cfg.TimedIterations; it++ {
		seed := cfg.Seed + int64(it)
		classify, err := newClassifier(seed)
		if err != nil {
			return Result{}, fmt.Errorf("bench %s: classifier: %w", b.Name(), err)
		}
		sw.Start()
		if _, err := blend.Tiles(ctx, b, seed, tiles, classify, cfg.Workers); err != nil {
			return Result{}, fmt.Errorf("bench %s: iteration %d: %w", b.Name(), it, err)
		}
		elapsed := sw.Stop()
		log.Debug().Str("blender", b.Name()).Int("iteration", it).Dur("elapsed", elapsed).Msg("iteration done")
	}
	return summarize(b.Name(), sw.Samples(), cfg.Width*cfg.Height), nil
}

func summarize(name string, samples []time.Duration, values int) Result {
	ms := make([]float64, len(samples))
	var total time.Duration
	for i, d := range samples {
		total += d
		ms[i] = float64(d) / float64(time.Millisecond)
	}
	r := Result{Name: name, Iterations: len(samples), Total: total}
	if len(samples) == 0 {
		return r
	}
	r.NsPerValue = float64(total.Nanoseconds()) / float64(len(samples)*values)
	if len(ms) > 1 {
		r.MeanMs, r.StdDevMs = stat.MeanStdDev(ms, nil)
	} else {
		r.MeanMs = ms[0]
	}
	return r
}

// DensityReport compares observed point density against the lattice estimate.
type DensityReport struct {
	Samples  int
	Side     float64
	Mean     float64
	StdDev   float64
	Expected float64
}

// Density counts the points of s inside samples random squares of the given
// side and reports mean and spread of the per-area density.
func Density(s *scatter.Scatterer, seed int64, samples int, side float64) DensityReport {
	rng := core.NewRNG(seed)
	densities := make([]float64, samples)
	area := side * side
	for n := range densities {
		ox, oz := rng.Origin(1 << 20)
		x, z := float64(ox), float64(oz)
		pts := s.Points(rng.Seed(), x, z, x+side, z+side)
		densities[n] = float64(len(pts)) / area
	}
	r := DensityReport{Samples: samples, Side: side, Expected: scatter.ExpectedDensity(s.Frequency())}
	if samples > 1 {
		r.Mean, r.StdDev = stat.MeanStdDev(densities, nil)
	} else if samples == 1 {
		r.Mean = densities[0]
	}
	return r
}
