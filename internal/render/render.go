// Package render turns blended weight maps into images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"scatterblend/internal/biome"
	"scatterblend/pkg/blend"
	"scatterblend/pkg/core"
	"scatterblend/pkg/scatter"
	"scatterblend/pkg/weightmap"
)

// Mode selects how a weight map is drawn.
type Mode int

const (
	// ModeBlend mixes label colours by weight.
	ModeBlend Mode = iota
	// ModeBorders paints the dominant label only.
	ModeBorders
	// ModeHeight draws the blended terrain height.
	ModeHeight
	// ModePoints shades dominant labels and marks the scattered points.
	ModePoints
)

var modeNames = []string{"blend", "borders", "height", "points"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next cycles to the following mode.
func (m Mode) Next() Mode { return (m + 1) % Mode(len(modeNames)) }

// ParseMode resolves a mode by name.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(s, n) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q (want one of %s)", s, strings.Join(modeNames, ", "))
}

// Palette maps labels to colours. Labels missing from the table get a stable
// generated hue.
type Palette struct {
	colors map[core.Label]colorful.Color
}

// NewPalette builds a palette from a biome table.
func NewPalette(table []biome.Biome) *Palette {
	p := &Palette{colors: make(map[core.Label]colorful.Color, len(table))}
	for _, b := range table {
		c, _ := colorful.MakeColor(b.Color)
		p.colors[b.ID] = c
	}
	return p
}

// Color returns the colour of label.
func (p *Palette) Color(label core.Label) colorful.Color {
	if c, ok := p.colors[label]; ok {
		return c
	}
	hue := float64(core.Mix64(uint64(label))%360) + 0.5
	return colorful.Hsv(hue, 0.55, 0.85)
}

const pointShade = 0.45

var pointColor = color.RGBA{255, 255, 255, 255}

// Renderer draws regions into an image whose top-left pixel is world cell
// (OriginX, OriginZ).
type Renderer struct {
	Mode    Mode
	Palette *Palette
	// Terrain is required by ModeHeight.
	Terrain *biome.Terrain
	// Scatterer and Seed are required by ModePoints.
	Scatterer *scatter.Scatterer
	Seed      int64

	OriginX, OriginZ int32
}

// DrawRegion draws m, the blend of the region at (regionX, regionZ). Cells
// outside the image are clipped.
func (r *Renderer) DrawRegion(img *image.RGBA, regionX, regionZ int32, m *weightmap.Map) {
	px := int(regionX - r.OriginX)
	py := int(regionZ - r.OriginZ)
	switch r.Mode {
	case ModeBorders:
		fillDominantRGBA(img, px, py, m, r.Palette, 0)
	case ModeHeight:
		if r.Terrain == nil {
			fillBlendRGBA(img, px, py, m, r.Palette)
			return
		}
		fillHeightRGBA(img, px, py, m.Side(), func(idx int) float64 {
			return r.Terrain.BlendedHeight(m, regionX, regionZ, idx)
		})
	case ModePoints:
		fillDominantRGBA(img, px, py, m, r.Palette, pointShade)
		if r.Scatterer != nil {
			side := int32(m.Side())
			pts := r.Scatterer.Points(r.Seed, float64(regionX), float64(regionZ), float64(regionX+side), float64(regionZ+side))
			r.drawPoints(img, pts, regionX, regionZ, side)
		}
	default:
		fillBlendRGBA(img, px, py, m, r.Palette)
	}
}

// drawPoints marks each point that falls inside the region as a small cross.
func (r *Renderer) drawPoints(img *image.RGBA, pts []scatter.Point, regionX, regionZ, side int32) {
	for _, p := range pts {
		if p.X < float64(regionX) || p.Z < float64(regionZ) || p.X >= float64(regionX+side) || p.Z >= float64(regionZ+side) {
			continue
		}
		cx := int(p.X) - int(r.OriginX)
		cy := int(p.Z) - int(r.OriginZ)
		for _, d := range [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			x, y := cx+d[0], cy+d[1]
			if (image.Point{x, y}).In(img.Rect) {
				img.SetRGBA(x, y, pointColor)
			}
		}
	}
}

// Compose draws every tile result into img.
func (r *Renderer) Compose(img *image.RGBA, results []blend.TileResult) {
	for _, res := range results {
		if res.Map == nil {
			continue
		}
		r.DrawRegion(img, res.Tile.X, res.Tile.Z, res.Map)
	}
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
