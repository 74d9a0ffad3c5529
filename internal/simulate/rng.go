// Package simulate generates deterministic synthetic price histories.
//
// Every series is reproducible: the generator is seeded from a stable hash
// of the ticker symbol, so the same ticker always yields the same shape of
// returns, and the series is anchored to end exactly at the instrument's
// reference price.
package simulate

// rng is a linear-congruential generator with an explicit seed. A fresh
// instance is scoped to one GenerateHistory call; there is no package-level
// generator state.
type rng struct {
	state uint64
}

// newRNG creates a generator seeded from the given value.
func newRNG(seed uint64) *rng {
	// Avoid the all-zero state producing a degenerate opening draw.
	return &rng{state: seed ^ 0x9e3779b97f4a7c15}
}

// next advances the LCG one step (Knuth MMIX constants).
func (r *rng) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a uniform draw in [0, 1).
func (r *rng) Float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// hashTicker returns a stable FNV-1a hash of the ticker string.
func hashTicker(ticker string) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	for i := 0; i < len(ticker); i++ {
		h ^= uint64(ticker[i])
		h *= prime
	}
	return h
}
