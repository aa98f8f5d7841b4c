// Package randutil centralises how random sources are built so that every
// game, deck and bot can be replayed from a single int64 seed.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns an independent generator for the n-th child of seed, e.g.
// one per simulated game or one per seat.
func Derive(seed int64, n int) *rand.Rand {
	return New(int64(mix(uint64(seed) ^ mix(uint64(n)+goldenRatio64))))
}

// Chance reports true with probability p. p <= 0 never draws from rng and
// p >= 1 always returns true, so fixed policies stay reproducible.
func Chance(rng *rand.Rand, p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	default:
		return rng.Float64() < p
	}
}

// Reader adapts rng to io.Reader for APIs that consume random bytes.
type Reader struct {
	rng *rand.Rand
}

// NewReader wraps rng.
func NewReader(rng *rand.Rand) *Reader {
	return &Reader{rng: rng}
}

// Read fills p with pseudo-random bytes. It never fails.
func (r *Reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
