// Package rng defines the random-variate source contract consumed by the
// agent graph and the Driver that wraps it with a path-weight accumulator.
// The core treats the underlying generator as an external collaborator
// (spec §6 "Random source") — this package never hand-rolls a generator of
// its own beyond the stdlib default.
package rng

import "math/rand/v2"

// VariateSource is the external random-generator contract the engine
// consumes but does not define (spec §6). Anything satisfying it — the
// stdlib PRNG wrapped below, or a Mersenne-Twister-backed implementation
// supplied by a host application — can drive a Driver.
type VariateSource interface {
	// Float64 draws the next uniform variate in [0, 1).
	Float64() float64
	// Seed reseeds the generator deterministically.
	Seed(seed uint64)
	// Save captures enough state to Restore the generator later.
	Save() []byte
	// Restore resets the generator to a previously Saved state.
	Restore(state []byte)
}

// pcgSource adapts math/rand/v2's PCG generator to VariateSource.
type pcgSource struct {
	seed uint64
	rnd  *rand.Rand
}

// NewDefaultSource returns a VariateSource backed by math/rand/v2's PCG
// generator, seeded deterministically.
func NewDefaultSource(seed uint64) VariateSource {
	s := &pcgSource{}
	s.Seed(seed)
	return s
}

func (s *pcgSource) Float64() float64 { return s.rnd.Float64() }

func (s *pcgSource) Seed(seed uint64) {
	s.seed = seed
	s.rnd = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

func (s *pcgSource) Save() []byte {
	// math/rand/v2's PCG does not expose its internal stream position, so
	// Save/Restore round-trips through the seed. This is enough for the
	// Driver's reset contract (spec §4.1: reset sets the weight to 1,
	// never reseeds) since Save/Restore is only used by callers wanting to
	// replay a path from scratch, not to snapshot mid-path.
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(s.seed >> (8 * i))
	}
	return b
}

func (s *pcgSource) Restore(state []byte) {
	var seed uint64
	for i := 0; i < len(state) && i < 8; i++ {
		seed |= uint64(state[i]) << (8 * i)
	}
	s.Seed(seed)
}

// Driver owns a VariateSource plus a multiplicatively-accumulated path
// weight (spec §3 "Random driver", §4.1).
type Driver struct {
	source VariateSource
	weight float64
}

// NewDriver wraps source in a Driver with weight initialised to 1.
func NewDriver(source VariateSource) *Driver {
	return &Driver{source: source, weight: 1}
}

// Seed reseeds the underlying source. It does not touch the weight.
func (d *Driver) Seed(seed uint64) { d.source.Seed(seed) }

// Draw returns the next uniform variate in [0, 1).
func (d *Driver) Draw() float64 { return d.source.Float64() }

// Weight returns the current path weight.
func (d *Driver) Weight() float64 { return d.weight }

// UpdateWeight multiplies the current weight by w, implementing the
// importance-sampling side channel (spec §9 "Importance sampling").
func (d *Driver) UpdateWeight(w float64) { d.weight *= w }

// Reset sets the weight back to 1. It does not reseed, per spec §4.1.
func (d *Driver) Reset() { d.weight = 1 }

// Save captures the underlying source's state.
func (d *Driver) Save() []byte { return d.source.Save() }

// Restore resets the underlying source to a previously Saved state. The
// weight is untouched; callers that want a fresh path should also call
// Reset.
func (d *Driver) Restore(state []byte) { d.source.Restore(state) }
