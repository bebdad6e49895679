package core

// Hashing for lattice jitter. Outputs must stay stable across versions since
// scattered point positions are derived from them; do not route through rand.

const (
	primeI = 0x9e3779b97f4a7c15
	primeJ = 0xc2b2ae3d27d4eb4f
)

// Mix64 avalanches a 64-bit value (MurmurHash3 fmix64 finalizer).
func Mix64(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// Hash2 returns a stable hash for 2D integer lattice coordinates + seed.
func Hash2(seed, i, j int64) uint64 {
	h := uint64(seed)
	h ^= uint64(i) * primeI
	h = Mix64(h)
	h ^= uint64(j) * primeJ
	return Mix64(h)
}

// UnitFloat maps the top 53 bits of h to [0, 1).
func UnitFloat(h uint64) float64 {
	return float64(h>>11) * (1.0 / (1 << 53))
}
