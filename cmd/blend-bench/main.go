package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"scatterblend/internal/app"
	"scatterblend/internal/bench"
	"scatterblend/internal/biome"
	"scatterblend/internal/logging"
	"scatterblend/internal/metrics"
	"scatterblend/pkg/blend"
	"scatterblend/pkg/core"
	"scatterblend/pkg/scatter"
)

func main() {
	defaults := bench.DefaultConfig()
	names := flag.String("blenders", strings.Join(core.BlenderNames(), ","), "comma separated strategies to time")
	width := flag.Int("width", defaults.Width, "area width in cells")
	height := flag.Int("height", defaults.Height, "area height in cells")
	prep := flag.Int("prep", defaults.PrepIterations, "untimed warmup iterations")
	timed := flag.Int("timed", defaults.TimedIterations, "timed iterations")
	seed := flag.Int64("seed", defaults.Seed, "first seed; advanced every iteration")
	workers := flag.Int("workers", defaults.Workers, "parallel region blends per iteration")
	cache := flag.Bool("cache", true, "memoize classifications within an iteration")
	densitySamples := flag.Int("density", 200, "random squares sampled for the density report (0 disables)")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address and keep running until interrupted")
	verbose := flag.Bool("v", false, "debug logging")
	var overrides app.KVList
	flag.Var(&overrides, "set", "blender option in key=value form (repeatable)")
	flag.Parse()

	logger := logging.Setup(*verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logger.WithContext(ctx)

	m := metrics.New()
	cfg := bench.Config{
		Width:           *width,
		Height:          *height,
		PrepIterations:  *prep,
		TimedIterations: *timed,
		Seed:            *seed,
		Workers:         *workers,
	}
	table := biome.DefaultTable()
	factory := func(seed int64) (core.ClassifierE, error) {
		noise := biome.NewNoiseClassifier(seed, table, biome.DefaultNoiseFrequency, biome.DefaultOctaves)
		classify := core.Classifier(noise.Classify).Fallible()
		if !*cache {
			return classify, nil
		}
		cached, err := biome.NewCachedClassifier(classify, biome.DefaultCacheSize, m)
		if err != nil {
			return nil, err
		}
		return cached.Classify, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	var srv *http.Server
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		srv = &http.Server{Addr: *metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			log.Info().Str("addr", *metricsAddr).Msg("serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		if srv != nil {
			defer func() {
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdown)
			}()
		}
		if err := runAll(gctx, strings.Split(*names, ","), overrides.Map(), factory, m, cfg); err != nil {
			return err
		}
		if *densitySamples > 0 {
			if err := reportDensity(overrides.Map(), *seed, *densitySamples); err != nil {
				return err
			}
		}
		if srv != nil {
			log.Info().Msg("benchmark finished; metrics stay up until interrupted")
			<-gctx.Done()
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("benchmark failed")
	}
}

func runAll(ctx context.Context, names []string, overrides map[string]string, factory bench.ClassifierFactory, m *metrics.Metrics, cfg bench.Config) error {
	log.Info().Int("prep", cfg.PrepIterations).Int("timed", cfg.TimedIterations).
		Int("width", cfg.Width).Int("height", cfg.Height).Msg("timing blenders")
	var results []bench.Result
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		b, err := core.NewBlender(name, overrides)
		if err != nil {
			log.Warn().Err(err).Str("blender", name).Msg("skipping blender")
			continue
		}
		if p, ok := b.(core.ParameterProvider); ok {
			for _, g := range p.Parameters().Groups {
				for _, param := range g.Params {
					log.Info().Str("blender", name).Str(param.Key, param.Value).Msg(g.Name)
				}
			}
		}
		res, err := bench.Run(ctx, m.Instrument(b), factory, cfg)
		if err != nil {
			return err
		}
		results = append(results, res)
	}
	return bench.WriteTable(os.Stdout, results)
}

func reportDensity(overrides map[string]string, seed int64, samples int) error {
	c, err := blend.FromMap(overrides)
	if err != nil {
		return err
	}
	s, err := scatter.New(c.Frequency, c.Radius(), c.RegionSize)
	if err != nil {
		return err
	}
	return bench.WriteDensity(os.Stdout, bench.Density(s, seed, samples, 256))
}
