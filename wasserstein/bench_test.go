// Package wasserstein_test - benchmarks for the SAG and SGA hot loops and the
// Monte Carlo evaluator.
//
// Policy:
//   - Inputs are built outside the timer; fixed seeds everywhere.
//   - MaxIters is fixed and small; the monitor may still stop a run early.
package wasserstein_test

import (
	"testing"

	"github.com/katalvlaran/stochot/cost"
	"github.com/katalvlaran/stochot/measure"
	"github.com/katalvlaran/stochot/wasserstein"
)

func benchGrid(n int, offset float64) []float64 {
	pts := make([]float64, n)
	for i := range pts {
		pts[i] = float64(i)/float64(n) + offset
	}

	return pts
}

func BenchmarkSAG_64x64_Entropic(b *testing.B) {
	mu, _ := measure.Uniform(benchGrid(64, 0))
	nu, _ := measure.Uniform(benchGrid(64, 0.3))
	opts := wasserstein.DefaultOptions()
	opts.MaxIters = 2000
	eps := wasserstein.Float(0.05)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := wasserstein.SAG(wasserstein.NewRand(uint64(i)+1), cost.Squared, mu, nu, eps, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSGA_Normal_To_32Atoms(b *testing.B) {
	mu, _ := measure.Normal(0, 1)
	nu, _ := measure.Uniform(benchGrid(32, -0.5))
	opts := wasserstein.DefaultOptions()
	opts.MaxIters = 2000
	eps := wasserstein.Float(0.1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := wasserstein.SGA(wasserstein.NewRand(uint64(i)+1), cost.Squared, mu, nu, eps, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluateSemiDiscrete_10k(b *testing.B) {
	mu, _ := measure.Normal(0, 1)
	nu, _ := measure.Uniform(benchGrid(32, -0.5))
	v := make([]float64, nu.Len())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := wasserstein.EvaluateSemiDiscrete(wasserstein.NewRand(uint64(i)+1), cost.Squared, mu, nu, v, nil, 10000); err != nil {
			b.Fatal(err)
		}
	}
}
