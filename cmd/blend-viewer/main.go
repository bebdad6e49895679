//go:build ebiten

package main

import (
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"scatterblend/internal/app"
	"scatterblend/internal/logging"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logging.Setup(*verbose)

	game, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot start viewer")
	}

	ebiten.SetWindowTitle("scatterblend")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(game.Layout(0, 0))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("viewer stopped")
	}
}
