// Package wasserstein estimates optimal transport costs between probability
// measures by stochastic ascent on the semi-dual.
//
// 🚀 What is it?
//
// For a ground cost c and measures μ, ν with ν discrete, the semi-dual is
//
//	H(v) = Σ_j v_j·ν_j + E_{x~μ}[ v^{c,ε}(x) ]
//
// where v^{c,ε} is the hard c-transform (ε unset) or its entropic
// smoothing −ε·log Σ_j ν_j·exp((v_j − c(x, y_j))/ε). Maximizing H over
// v ∈ R^|ν| yields the transport cost; every H(v) is a lower bound.
//
// ✨ Solvers
//
//   - SAG — discrete–discrete. Stochastic averaged gradient with a constant
//     step and a per-index gradient memory. O(|μ|·|ν|) memory.
//   - SGA — μ sampled, ν discrete. Averaged stochastic gradient ascent with
//     τ_k = τ₁/(1 + sqrt((k−1)/w)). O(|ν|) memory.
//   - Solve / Wasserstein — dispatch on the measure variants, run the right
//     solver and evaluate the objective (exactly or by Monte Carlo).
//   - Sweep — one problem, many ε, solved concurrently with derived RNG streams.
//
// ⚙️ Usage
//
//	mu, _ := measure.Uniform([]float64{0, 1})
//	nu, _ := measure.Uniform([]float64{0, 1})
//	rng := wasserstein.NewRand(42)
//	d, err := wasserstein.Wasserstein(rng, cost.Abs, mu, nu, nil, wasserstein.DefaultOptions())
//
// Determinism: all randomness comes from the *rand.Rand argument. Two solves
// with equal inputs and equally seeded streams return identical results.
//
// Errors are sentinels tested with errors.Is: ErrInvalidConfiguration
// (and the specific ErrInvalid* values wrapping it), measure.ErrInvalidMeasure
// (ErrNoDiscreteMeasure, ErrNilMeasure), ErrMethodMismatch and
// ErrNumericInstability.
package wasserstein
