// Package wasserstein - RNG utilities shared by the solvers and Sweep.
//
// Goals:
//   - Determinism: same seed ⇒ identical potentials across runs.
//   - Encapsulation: a single RNG factory; no time-based sources anywhere.
//   - Explicit threading: every sampling call receives the *rand.Rand.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Do not share one across goroutines.
//   - Use DeriveRand to create independent streams for parallel solves.
package wasserstein

import "math/rand/v2"

// defaultRNGSeed is the fixed seed used when callers pass seed == 0 or a nil *rand.Rand.
const defaultRNGSeed uint64 = 1

// pcgIncrement is the second PCG word; fixed so one seed maps to one stream.
const pcgIncrement uint64 = 0xda3e39cb94b95bdb

// NewRand returns a deterministic PCG-backed *rand.Rand.
// Policy: seed == 0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewPCG(seed, pcgIncrement))
}

// DeriveRand creates an independent deterministic stream from a parent seed
// and a stream identifier (e.g. the index of a sweep entry).
func DeriveRand(seed uint64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return NewRand(deriveSeed(seed, stream))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64 finalizer, so neighbouring streams are decorrelated.
func deriveSeed(parent uint64, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

// orDefault substitutes the default stream for a nil rng. Creating the
// stream draws nothing.
func orDefault(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return NewRand(0)
	}

	return rng
}
