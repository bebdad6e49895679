// Package biome provides the demo classifiers fed to the blenders: a noise
// based biome picker, per-biome terrain height, and a caching wrapper.
package biome

import (
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"

	"scatterblend/pkg/core"
)

// Biome ids of the default table.
const (
	Forest core.Label = iota
	Plains
	Mountains
	Desert
)

// Biome describes one entry of a biome table.
type Biome struct {
	ID    core.Label
	Name  string
	Color color.RGBA
}

// DefaultTable returns the four demo biomes.
func DefaultTable() []Biome {
	return []Biome{
		{ID: Forest, Name: "forest", Color: color.RGBA{8, 112, 32, 255}},
		{ID: Plains, Name: "plains", Color: color.RGBA{133, 161, 90, 255}},
		{ID: Mountains, Name: "mountains", Color: color.RGBA{104, 112, 112, 255}},
		{ID: Desert, Name: "desert", Color: color.RGBA{242, 232, 52, 255}},
	}
}

// Lookup returns the table entry for id.
func Lookup(table []Biome, id core.Label) (Biome, bool) {
	for _, b := range table {
		if b.ID == id {
			return b, true
		}
	}
	return Biome{}, false
}

const (
	// DefaultNoiseFrequency sets the biome feature size (about 500 cells).
	DefaultNoiseFrequency = 0.002
	// DefaultOctaves is the number of noise layers per biome.
	DefaultOctaves = 2

	perlinAlpha = 2.0
	perlinBeta  = 2.0
)

// NoiseClassifier picks, at every point, the biome whose own layered noise
// field is greatest. Each biome gets an independent field per octave.
type NoiseClassifier struct {
	table     []Biome
	frequency float64
	octaves   int
	noises    []*perlin.Perlin
}

// NewNoiseClassifier builds a classifier over table. A non-positive frequency
// or octave count selects the default.
func NewNoiseClassifier(seed int64, table []Biome, frequency float64, octaves int) *NoiseClassifier {
	if frequency <= 0 {
		frequency = DefaultNoiseFrequency
	}
	if octaves <= 0 {
		octaves = DefaultOctaves
	}
	noises := make([]*perlin.Perlin, len(table)*octaves)
	for i := range noises {
		noises[i] = perlin.NewPerlin(perlinAlpha, perlinBeta, 1, seed+int64(i))
	}
	return &NoiseClassifier{table: table, frequency: frequency, octaves: octaves, noises: noises}
}

// Table returns the biome table the classifier picks from.
func (c *NoiseClassifier) Table() []Biome { return c.table }

// Classify returns the biome at (x, z). It is safe for concurrent use.
func (c *NoiseClassifier) Classify(x, z float64) core.Label {
	best := math.Inf(-1)
	var id core.Label
	n := len(c.table)
	for i, b := range c.table {
		value := 0.0
		freq, amp := c.frequency, 1.0
		for o := 0; o < c.octaves; o++ {
			value += c.noises[i+o*n].Noise2D(x*freq, z*freq) * amp
			freq *= 2
			amp *= 0.5
		}
		if value > best {
			best, id = value, b.ID
		}
	}
	return id
}

// Classifier returns Classify as a core.Classifier.
func (c *NoiseClassifier) Classifier() core.Classifier { return c.Classify }
