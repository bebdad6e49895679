package scatter

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"scatterblend/pkg/core"
)

func mustNew(t *testing.T, frequency, radius float64, side int) *Scatterer {
	t.Helper()
	s, err := New(frequency, radius, side)
	require.NoError(t, err)
	return s
}

func TestNewRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name      string
		frequency float64
		radius    float64
		side      int
		want      error
	}{
		{"zero frequency", 0, 10, 16, ErrInvalidFrequency},
		{"negative frequency", -0.1, 10, 16, ErrInvalidFrequency},
		{"nan frequency", math.NaN(), 10, 16, ErrInvalidFrequency},
		{"negative radius", 0.04, -1, 16, ErrInvalidRadius},
		{"zero side", 0.04, 10, 0, ErrInvalidRegionSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.frequency, tc.radius, tc.side)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLatticeConstants(t *testing.T) {
	assert.InDelta(t, math.Pow(1.0/3.0, 0.25), GridEquivalentScale, 1e-15)
	assert.InDelta(t, 0.8249579113843053, MaxGridscaleDistanceToClosestPoint, 1e-12)

	// Edges along i, j and the compressed diagonal are all sqrt(2/3).
	for _, d := range [][2]int64{{1, 0}, {0, 1}, {1, 1}} {
		x, z := latticePosition(d[0], d[1])
		assert.InDelta(t, TriangleEdge, math.Hypot(x, z), 1e-12)
	}

	for i := int64(-50); i < 50; i += 7 {
		for j := int64(-50); j < 50; j += 5 {
			x, z := latticePosition(i, j)
			si, sj := latticeCell(x, z)
			assert.InDelta(t, float64(i), si, 1e-9)
			assert.InDelta(t, float64(j), sj, 1e-9)
		}
	}
}

func TestJitterStaysWithinBound(t *testing.T) {
	for i := int64(-40); i < 40; i++ {
		for j := int64(-40); j < 40; j++ {
			dx, dz := jitter(99, i, j)
			if d := math.Hypot(dx, dz); d > MaxJitter+1e-12 {
				t.Fatalf("cell (%d,%d) jitter %.6f exceeds %.6f", i, j, d, MaxJitter)
			}
		}
	}
}

func TestGatherDeterministic(t *testing.T) {
	s := mustNew(t, 0.04, 40, 64)
	first := s.Gather(1234, 0, 0)
	require.NotEmpty(t, first)

	// Unrelated queries in between must not change the result.
	s.Gather(1234, 64, 0)
	s.Gather(77, -128, 512)

	second := s.Gather(1234, 0, 0)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("gather not deterministic (-first +second):\n%s", diff)
	}

	other := s.Gather(1235, 0, 0)
	assert.NotEqual(t, first, other, "different seeds should scatter differently")
}

func TestGatherIsRegionStable(t *testing.T) {
	// Points shared by overlapping queries are bit-identical.
	a := mustNew(t, 0.05, 30, 64).Gather(5, 0, 0)
	b := mustNew(t, 0.05, 30, 32).Gather(5, 16, 16)
	byCell := map[[2]int64]Point{}
	for _, p := range a {
		byCell[[2]int64{p.CellI, p.CellJ}] = p
	}
	shared := 0
	for _, p := range b {
		if q, ok := byCell[[2]int64{p.CellI, p.CellJ}]; ok {
			shared++
			assert.Equal(t, q, p)
		}
	}
	assert.Positive(t, shared)
}

func TestGatherCoverageSound(t *testing.T) {
	const (
		frequency = 0.04
		radius    = 40.0
		side      = 16
	)
	s := mustNew(t, frequency, radius, side)
	for _, origin := range [][2]int32{{0, 0}, {-16, 48}, {1000, -2000}} {
		got := map[[2]int64]bool{}
		for _, p := range s.Gather(42, origin[0], origin[1]) {
			got[[2]int64{p.CellI, p.CellJ}] = true
		}

		// Brute force: every lattice cell near the region, checked against every cell.
		ci, cj := latticeCell(float64(origin[0])*frequency, float64(origin[1])*frequency)
		span := int64(8)
		for j := int64(cj) - span; j <= int64(cj)+span; j++ {
			for i := int64(ci) - span; i <= int64(ci)+span; i++ {
				p := PointAt(42, i, j, frequency)
				if !withinRadiusOfRegion(p, origin, side, radius) {
					continue
				}
				if !got[[2]int64{i, j}] {
					t.Fatalf("origin %v: point of cell (%d,%d) at (%.3f,%.3f) is in range but missing", origin, i, j, p.X, p.Z)
				}
			}
		}
	}
}

func TestGatherAtExtremeOrigins(t *testing.T) {
	// At frequency 2 these origins put lattice indices past the int32 range.
	const (
		frequency = 2.0
		side      = 16
	)
	radius := MinBlendRadius(frequency) + 2
	s := mustNew(t, frequency, radius, side)
	origins := [][2]int32{
		{1_100_000_000, 0},
		{math.MaxInt32 - side + 1, math.MinInt32},
		{math.MinInt32, math.MaxInt32 - side + 1},
	}
	for _, origin := range origins {
		points := s.Gather(7, origin[0], origin[1])
		require.NotEmpty(t, points, "origin %v", origin)
		for _, p := range points {
			require.InDelta(t, float64(origin[0])+(side-1)/2.0, p.X, (side-1)/2.0+radius, "origin %v: stray point %+v", origin, p)
			require.InDelta(t, float64(origin[1])+(side-1)/2.0, p.Z, (side-1)/2.0+radius, "origin %v: stray point %+v", origin, p)
		}
		for zi := 0; zi < side; zi++ {
			for xi := 0; xi < side; xi++ {
				x, z := float64(origin[0])+float64(xi), float64(origin[1])+float64(zi)
				nearest := math.Inf(1)
				for _, p := range points {
					nearest = math.Min(nearest, math.Hypot(p.X-x, p.Z-z))
				}
				require.LessOrEqual(t, nearest, MinBlendRadius(frequency)+1e-6, "origin %v cell (%d,%d)", origin, xi, zi)
			}
		}
	}

	far := s.Gather(7, 1_100_000_000, 0)
	assert.Greater(t, far[0].CellI+far[0].CellJ, int64(math.MaxInt32))
}

func withinRadiusOfRegion(p Point, origin [2]int32, side int, radius float64) bool {
	for zi := 0; zi < side; zi++ {
		for xi := 0; xi < side; xi++ {
			dx := p.X - (float64(origin[0]) + float64(xi))
			dz := p.Z - (float64(origin[1]) + float64(zi))
			if dx*dx+dz*dz < radius*radius {
				return true
			}
		}
	}
	return false
}

func TestEveryLocationHasNearbyPoint(t *testing.T) {
	const frequency = 0.1
	s := mustNew(t, frequency, 0, 1)
	bound := MinBlendRadius(frequency)
	rng := core.NewRNG(3).Source()
	for n := 0; n < 500; n++ {
		x := (rng.Float64() - 0.5) * 10000
		z := (rng.Float64() - 0.5) * 10000
		best := math.Inf(1)
		for _, p := range s.Points(11, x-bound, z-bound, x+bound, z+bound) {
			best = math.Min(best, math.Hypot(p.X-x, p.Z-z))
		}
		if best > bound {
			t.Fatalf("location (%.2f,%.2f): nearest point %.4f farther than bound %.4f", x, z, best, bound)
		}
	}
}

func TestDensityInvariance(t *testing.T) {
	const (
		frequency = 0.05
		side      = 128
		samples   = 200
	)
	s := mustNew(t, frequency, 0, side)
	rng := core.NewRNG(2024)
	area := float64((side - 1) * (side - 1))
	densities := make([]float64, samples)
	for n := range densities {
		ox, oz := rng.Origin(1 << 20)
		densities[n] = float64(len(s.Gather(rng.Seed(), ox, oz))) / area
	}

	mean, std := stat.MeanStdDev(densities, nil)
	want := ExpectedDensity(frequency)
	assert.InEpsilon(t, want, mean, 0.03, "mean density %.6f vs expected %.6f", mean, want)
	assert.Less(t, std/mean, 0.2, "density varies too much between regions")
}

func TestGridEquivalentDensity(t *testing.T) {
	// A square grid at 1/8 has 1/64 points per unit squared.
	f := GridEquivalentFrequency(1.0 / 8)
	assert.InDelta(t, 1.0/64, ExpectedDensity(f), 1e-12)
}
