// Package scatter places one jittered sample point per cell of a skewed
// lattice over infinite 2D space. Positions are a pure function of
// (seed, lattice cell), so any query sees the same points regardless of
// order, history or region boundaries.
package scatter

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidFrequency reports a non-positive or non-finite frequency.
	ErrInvalidFrequency = errors.New("scatter: frequency must be positive and finite")
	// ErrInvalidRadius reports a negative or non-finite interaction radius.
	ErrInvalidRadius = errors.New("scatter: radius must be non-negative and finite")
	// ErrInvalidRegionSize reports a non-positive region side.
	ErrInvalidRegionSize = errors.New("scatter: region size must be positive")
)

// Point is a scattered sample in world coordinates together with the
// lattice cell that owns it.
type Point struct {
	X, Z         float64
	CellI, CellJ int64
}

// PointAt returns the scattered point owned by lattice cell (i, j).
func PointAt(seed, i, j int64, frequency float64) Point {
	lx, lz := latticePosition(i, j)
	dx, dz := jitter(seed, i, j)
	inv := 1 / frequency
	return Point{X: (lx + dx) * inv, Z: (lz + dz) * inv, CellI: i, CellJ: j}
}

// Scatterer gathers the points that can influence a square region within a
// fixed interaction radius.
type Scatterer struct {
	frequency float64
	radius    float64
	side      int
}

// New validates the parameters and returns a Scatterer. frequency is in
// lattice cells per world unit, radius in world units, side in cells.
func New(frequency, radius float64, side int) (*Scatterer, error) {
	if !(frequency > 0) || math.IsInf(frequency, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFrequency, frequency)
	}
	if !(radius >= 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	if side <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRegionSize, side)
	}
	return &Scatterer{frequency: frequency, radius: radius, side: side}, nil
}

// Frequency returns the lattice frequency.
func (s *Scatterer) Frequency() float64 { return s.frequency }

// Radius returns the interaction radius.
func (s *Scatterer) Radius() float64 { return s.radius }

// Side returns the region side in cells.
func (s *Scatterer) Side() int { return s.side }

// Gather returns every point that may lie within the interaction radius of
// some cell of the region at (originX, originZ). The result is a superset of
// the true interaction set and is ordered by lattice row, then column.
func (s *Scatterer) Gather(seed int64, originX, originZ int32) []Point {
	return s.GatherInto(nil, seed, originX, originZ)
}

// GatherInto is Gather appending to dst[:0], for callers reusing buffers.
func (s *Scatterer) GatherInto(dst []Point, seed int64, originX, originZ int32) []Point {
	last := float64(s.side - 1)
	minX := float64(originX) - s.radius
	minZ := float64(originZ) - s.radius
	maxX := float64(originX) + last + s.radius
	maxZ := float64(originZ) + last + s.radius
	return s.collect(dst[:0], seed, minX, minZ, maxX, maxZ)
}

// Points returns every point whose position lies inside the world rectangle
// [minX, maxX] x [minZ, maxZ].
func (s *Scatterer) Points(seed int64, minX, minZ, maxX, maxZ float64) []Point {
	return s.collect(nil, seed, minX, minZ, maxX, maxZ)
}

func (s *Scatterer) collect(dst []Point, seed int64, minX, minZ, maxX, maxZ float64) []Point {
	f := s.frequency
	pad := MaxJitter
	// Any point inside the rectangle has its lattice position within the
	// rectangle grown by the jitter bound.
	lminX, lminZ := minX*f-pad, minZ*f-pad
	lmaxX, lmaxZ := maxX*f+pad, maxZ*f+pad

	// Skewing is increasing in both axes, so the corners bound the cell range.
	iLo, jLo := latticeCell(lminX, lminZ)
	iHi, jHi := latticeCell(lmaxX, lmaxZ)
	// Cell indices are int64: int32 origins times a frequency above 1 leave
	// the int32 range.
	i0, j0 := int64(math.Floor(iLo))-1, int64(math.Floor(jLo))-1
	i1, j1 := int64(math.Ceil(iHi))+1, int64(math.Ceil(jHi))+1

	inv := 1 / f
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			lx, lz := latticePosition(i, j)
			if lx < lminX || lx > lmaxX || lz < lminZ || lz > lmaxZ {
				continue
			}
			dx, dz := jitter(seed, i, j)
			x, z := (lx+dx)*inv, (lz+dz)*inv
			if x < minX || x > maxX || z < minZ || z > maxZ {
				continue
			}
			dst = append(dst, Point{X: x, Z: z, CellI: i, CellJ: j})
		}
	}
	return dst
}
