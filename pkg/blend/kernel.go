package blend

import (
	"fmt"

	"scatterblend/pkg/weightmap"
)

// Kernel returns the falloff weight (r² − d²)² for a sample at squared
// distance distSq, or 0 outside the radius. The first derivative vanishes at
// the boundary, so blends stay continuous where samples enter or leave range.
func Kernel(radiusSq, distSq float64) float64 {
	if distSq >= radiusSq {
		return 0
	}
	w := radiusSq - distSq
	return w * w
}

// gridKernel is Kernel on integer offsets for grid strategies.
func gridKernel(reachSq, distSq int64) int64 {
	w := reachSq - distSq
	if w <= 0 {
		return 0
	}
	return w * w
}

// InvariantError is raised (via panic) when a blend reaches a state that a
// valid configuration cannot produce, such as a cell with no contributing
// sample. It signals a programming or configuration bug, never bad input.
type InvariantError struct {
	Blender          string
	OriginX, OriginZ int32
	Cell             int
	Reason           string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("%s: region (%d,%d) cell %d: %s", e.Blender, e.OriginX, e.OriginZ, e.Cell, e.Reason)
}

// normalize divides every layer at idx by total. A zero total panics.
func normalize(m *weightmap.Map, idx int, total float64, name string, ox, oz int32) {
	if total <= 0 {
		panic(InvariantError{Blender: name, OriginX: ox, OriginZ: oz, Cell: idx, Reason: "zero total weight"})
	}
	m.Scale(idx, 1/total)
}
