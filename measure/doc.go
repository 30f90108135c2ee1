// Package measure models the probability measures consumed by the transport
// solvers as a sealed tagged variant.
//
// 🚀 Two kinds:
//
//	Discrete[T]   — finite ordered support {x₁..xₙ} with nonnegative weights
//	                summing to 1. Immutable after construction.
//	Sampleable[T] — no explicit support; draws i.i.d. points from a caller-
//	                supplied *rand.Rand (math/rand/v2).
//
// Solvers dispatch on the pair of kinds with a type switch; the Measure
// interface is sealed so the switch stays exhaustive.
//
// ⚙️ Usage:
//
//	mu, err := measure.NewDiscrete([]float64{0, 1}, []float64{0.5, 0.5})
//	nu := measure.Normal(0, 1)           // gonum distuv-backed sampler
//	x := nu.Sample(rng)                  // rng is threaded explicitly
//
// Randomness: nothing in this package reads a global source; every draw
// consumes the *rand.Rand passed in, which makes solves reproducible for a
// fixed seed.
package measure
