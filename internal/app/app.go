//go:build ebiten

package app

import (
	"context"
	"time"

	"scatterblend/internal/render"
	"scatterblend/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

// Game adapts a blend Session to the ebiten.Game interface.
type Game struct {
	session *Session
	hud     *ui.HUD
	painter *render.Painter
	scale   int
	width   int
	height  int
}

// New constructs a Game for the provided configuration.
func New(cfg *Config) (*Game, error) {
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		session: s,
		hud:     ui.NewHUD(hudWidth),
		painter: render.NewPainter(cfg.Width, cfg.Height),
		scale:   scale,
		width:   cfg.Width,
		height:  cfg.Height,
	}, nil
}

// Update handles per-frame input and re-renders the view when it changed.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.session.NextBlender()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.session.NextMode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.session.Reseed(time.Now().UnixNano())
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.session.Pan(-1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.session.Pan(1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.session.Pan(0, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.session.Pan(0, 1)
	}

	frame, changed, err := g.session.Frame(context.Background())
	if err != nil {
		return err
	}
	if changed {
		g.painter.Upload(frame)
	}
	g.hud.Update(g.session.Status(), g.session.Parameters())
	return nil
}

// Draw renders the blended view and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.scale)
	g.hud.Draw(screen, g.width*g.scale, g.height*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width*g.scale + hudWidth, g.height * g.scale
}
