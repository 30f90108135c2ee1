// Package aggregate implements the numerically stable reductions shared by
// the stochastic transport solvers.
//
// 🚀 What is here?
//
//	LogSumExp computes ε·log Σ exp(aᵢ/ε) by subtracting max(aᵢ) before
//	exponentiating and adding it back after the logarithm, so costs scaled
//	by 1/ε never overflow.
//
//	Aggregator is the (soft) c-transform used by both solvers:
//	  • Hard  — ε absent:  min_j (c_j − v_j), one-hot assignment at the argmin.
//	  • Soft  — ε > 0:     −ε·log Σ_j w_j·exp((v_j − c_j)/ε), Gibbs assignment.
//
//	The strategy is chosen once per solve with New(eps); a nil ε selects Hard.
//	ε == 0 is undefined for the soft form and is rejected, never treated as
//	"hard".
//
// ⚙️ Usage:
//
//	agg, err := aggregate.New(&eps)        // or aggregate.New(nil)
//	val, err := agg.Eval(pi, v, costs, w)  // pi receives assignment weights
//
// Errors:
//   - ErrEmpty               — empty input slices.
//   - ErrNonPositiveEpsilon  — ε ≤ 0 (or NaN/Inf).
//   - ErrLengthMismatch      — v, c, w (and dst) differ in length.
//   - ErrNumericInstability  — NaN inputs or a non-finite result even after
//     max subtraction.
//
// Concurrency: Hard is stateless; *Soft keeps a scratch buffer and must be
// owned by a single solve.
package aggregate
