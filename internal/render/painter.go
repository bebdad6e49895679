//go:build ebiten

package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Painter uploads rendered frames into an ebiten image and draws it scaled.
type Painter struct {
	w, h int
	img  *ebiten.Image
}

// NewPainter allocates a painter for frames of w*h pixels.
func NewPainter(w, h int) *Painter {
	return &Painter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

// Upload replaces the painter image with frame. Frames of another size are ignored.
func (p *Painter) Upload(frame *image.RGBA) {
	if frame.Bounds().Dx() != p.w || frame.Bounds().Dy() != p.h {
		return
	}
	p.img.WritePixels(frame.Pix)
}

// Blit draws the last uploaded frame onto dst.
func (p *Painter) Blit(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(p.img, op)
}

// Size returns the dimensions of the underlying image.
func (p *Painter) Size() (int, int) { return p.w, p.h }
