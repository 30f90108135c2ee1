// Package stochot estimates Wasserstein distances between probability
// measures with stochastic first-order methods on the semi-dual problem.
//
// 🚀 What is stochot?
//
//	A small, pure-Go toolkit that brings together:
//		• Measures: weighted discrete supports & sampleable laws (gonum distuv)
//		• Costs: |x−y|, squared, Euclidean, Minkowski, flipped & powered costs
//		• Aggregation: hard minimum or stabilized soft-min (log-sum-exp)
//		• Solvers: SAG for discrete–discrete, averaged SGA for semi-discrete
//		• Evaluation: exact discrete value, Monte Carlo semi-discrete value
//		• Sweeps: many ε solved concurrently with reproducible substreams
//
// ✨ Why choose stochot?
//
//   - Explicit randomness: every solver takes a *rand.Rand, runs are reproducible
//   - Sentinel errors: validate up front, inspect with errors.Is
//   - Quiet by default: solvers log only through Options.Logger
//
// Packages:
//
//	aggregate/   — hard minimum & log-sum-exp soft minimum
//	cost/        — ground cost functions
//	measure/     — Discrete & Sampleable measures
//	matrix/      — dense cost and gradient-memory storage
//	wasserstein/ — SAG, SGA, evaluators, Solve, Sweep
//	config/      — YAML problem files
//	logger/      — slog construction for the CLI
//	cmd/wasserstein — command-line front end
package stochot
