package scatter

import (
	"math"

	"scatterblend/pkg/core"
)

// Lattice geometry, in lattice units (world units times frequency).
//
// The square integer lattice (i, j) is compressed along its diagonal so the
// diagonal length sqrt(2) becomes sqrt(2/3). Every edge of the result is
// sqrt(2/3) long, which makes it an equilateral triangular lattice. The
// compression keeps one point per lattice cell, so density rises by sqrt(3)
// compared to the square grid at the same frequency.
var (
	skewF   = (math.Sqrt(3) - 1) / 2
	unskewG = (3 - math.Sqrt(3)) / 6

	sqrtHalf = math.Sqrt(0.5)

	// TriangleEdge is the distance between neighbouring lattice points.
	TriangleEdge = math.Sqrt(2.0 / 3.0)
	// TriangleHeight is the altitude of a lattice triangle.
	TriangleHeight = sqrtHalf
	// TriangleCircumradius bounds the distance from any location to its
	// nearest unjittered lattice point.
	TriangleCircumradius = TriangleHeight * (2.0 / 3.0)
	// MaxJitter is the largest displacement of a point from its lattice position.
	MaxJitter = TriangleHeight * 0.5
	// MaxGridscaleDistanceToClosestPoint bounds the distance from any location
	// to its nearest scattered point.
	MaxGridscaleDistanceToClosestPoint = MaxJitter + TriangleCircumradius
)

// GridEquivalentScale converts a square-grid frequency into the lattice
// frequency with the same point density: (1/3)^(1/4).
const GridEquivalentScale = 0.7598356856515925

// GridEquivalentFrequency returns the scatter frequency whose point density
// matches an unskewed square grid sampled at frequency.
func GridEquivalentFrequency(frequency float64) float64 {
	return frequency * GridEquivalentScale
}

// MinBlendRadius returns the smallest world distance guaranteed to reach at
// least one scattered point from any location, for frequency.
func MinBlendRadius(frequency float64) float64 {
	return MaxGridscaleDistanceToClosestPoint / frequency
}

// ExpectedDensity returns the mean number of points per world unit squared.
func ExpectedDensity(frequency float64) float64 {
	return math.Sqrt(3) * frequency * frequency
}

const (
	jitterDirections = 64
	jitterDirMask    = jitterDirections - 1
)

var jitterTable = buildJitterTable()

func buildJitterTable() [jitterDirections][2]float64 {
	var t [jitterDirections][2]float64
	for k := range t {
		a := (float64(k) + 0.5) * (2 * math.Pi / jitterDirections)
		t[k] = [2]float64{math.Cos(a), math.Sin(a)}
	}
	return t
}

// latticePosition returns the unjittered position of lattice cell (i, j).
func latticePosition(i, j int64) (x, z float64) {
	t := float64(i+j) * unskewG
	return float64(i) - t, float64(j) - t
}

// latticeCell returns the skewed coordinates of a lattice-space location;
// flooring them gives the cell whose parallelogram contains it.
func latticeCell(x, z float64) (i, j float64) {
	s := (x + z) * skewF
	return x + s, z + s
}

// jitter returns the displacement of lattice cell (i, j), in lattice units.
func jitter(seed, i, j int64) (dx, dz float64) {
	h := core.Hash2(seed, i, j)
	dir := jitterTable[h&jitterDirMask]
	// sqrt keeps points uniform over the jitter disk.
	r := MaxJitter * math.Sqrt(core.UnitFloat(h))
	return dir[0] * r, dir[1] * r
}
