package render

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"scatterblend/pkg/weightmap"
)

func setPixel(buf []byte, base int, c color.RGBA) {
	buf[base+0] = c.R
	buf[base+1] = c.G
	buf[base+2] = c.B
	buf[base+3] = c.A
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// fillBlendRGBA writes the weighted mix of label colours for every cell of m.
// Colours are mixed in linear RGB.
func fillBlendRGBA(img *image.RGBA, px, py int, m *weightmap.Map, palette *Palette) {
	side := m.Side()
	entries := m.Entries()
	lin := make([][3]float64, len(entries))
	for i, e := range entries {
		r, g, b := palette.Color(e.Label).LinearRgb()
		lin[i] = [3]float64{r, g, b}
	}
	for zi := 0; zi < side; zi++ {
		for xi := 0; xi < side; xi++ {
			if !(image.Point{px + xi, py + zi}).In(img.Rect) {
				continue
			}
			idx := zi*side + xi
			var r, g, b float64
			for i, e := range entries {
				w := e.Weights[idx]
				r += lin[i][0] * w
				g += lin[i][1] * w
				b += lin[i][2] * w
			}
			setPixel(img.Pix, img.PixOffset(px+xi, py+zi), toRGBA(colorful.LinearRgb(r, g, b)))
		}
	}
}

// fillDominantRGBA paints each cell with the colour of its heaviest label,
// exposing the shape of the blend borders.
func fillDominantRGBA(img *image.RGBA, px, py int, m *weightmap.Map, palette *Palette, shade float64) {
	side := m.Side()
	for zi := 0; zi < side; zi++ {
		for xi := 0; xi < side; xi++ {
			if !(image.Point{px + xi, py + zi}).In(img.Rect) {
				continue
			}
			label, _, ok := m.Dominant(zi*side + xi)
			if !ok {
				continue
			}
			c := palette.Color(label)
			if shade > 0 {
				c = c.BlendLab(colorful.Color{}, shade)
			}
			setPixel(img.Pix, img.PixOffset(px+xi, py+zi), toRGBA(c))
		}
	}
}

// fillHeightRGBA writes a grayscale height map, one unit per intensity level.
func fillHeightRGBA(img *image.RGBA, px, py int, side int, height func(idx int) float64) {
	for zi := 0; zi < side; zi++ {
		for xi := 0; xi < side; xi++ {
			if !(image.Point{px + xi, py + zi}).In(img.Rect) {
				continue
			}
			h := height(zi*side + xi)
			switch {
			case h < 0:
				h = 0
			case h > 255:
				h = 255
			}
			v := uint8(h)
			setPixel(img.Pix, img.PixOffset(px+xi, py+zi), color.RGBA{v, v, v, 255})
		}
	}
}
