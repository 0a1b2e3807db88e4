package fountain

import "math/rand"

// stream is a restartable, deterministic sequence of integers in [0, bound),
// seeded from a 32-bit seed. It pins Go's math/rand algorithm: the same
// (seed, bound) pair always produces the same prefix of draws, in this
// process or any other built from this module, because both encoder and
// decoder construct streams the same way.
type stream struct {
	rng   *rand.Rand
	bound int
}

// newStream creates a stream of draws in [0, bound) derived from seed.
func newStream(seed uint32, bound int) *stream {
	return &stream{
		rng:   rand.New(rand.NewSource(int64(seed))),
		bound: bound,
	}
}

// next consumes and returns one draw in [0, bound).
func (s *stream) next() int {
	return s.rng.Intn(s.bound)
}
