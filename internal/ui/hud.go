//go:build ebiten

package ui

import (
	"image/color"

	"scatterblend/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 10
	lineHeight   = 16
)

// HUD renders the status and parameter panel to the right of the view.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	lines      []hudLine
}

// NewHUD constructs a HUD with the given panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width}
}

// Update replaces the panel contents.
func (h *HUD) Update(status []string, snapshot core.ParameterSnapshot) {
	if h == nil {
		return
	}
	h.lines = buildLines(status, snapshot, keyHelp)
}

// Draw paints the HUD panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + lineHeight
	for _, l := range h.lines {
		if y > height-panelPadding {
			break
		}
		c := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		switch l.kind {
		case lineHeader:
			c = color.RGBA{R: 200, G: 200, B: 210, A: 255}
		case lineHint:
			c = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		text.Draw(h.panel, l.text, face, panelPadding, y, c)
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
