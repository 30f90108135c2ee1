// Package config reads transport problems from YAML and turns them into
// measures, a cost function and solver options.
//
// A problem file looks like:
//
//	seed: 42
//	cost: sqeuclidean        # abs | squared | euclidean | sqeuclidean | minkowski
//	minkowski_p: 3           # only for minkowski
//	epsilon: 0.1             # omit for the unregularized transform
//	method: auto             # auto | sag | sga
//	log_level: info
//	options: {max_iters: 10000, step_size: 1, montecarlo_samples: 10000}
//	source: {discrete: {support: [[0], [1]], weights: [0.5, 0.5]}}
//	target: {distribution: {name: normal, params: {mu: 0, sigma: 1}}}
//	sweep: [0.01, 0.1, 1]    # optional
//
// Points are []float64 of a common dimension on both sides.
package config

import "errors"

// ErrInvalidProblem is wrapped by every validation error of this package.
var ErrInvalidProblem = errors.New("config: invalid problem")

// Cost names.
const (
	CostAbs         = "abs"
	CostSquared     = "squared"
	CostEuclidean   = "euclidean"
	CostSqEuclidean = "sqeuclidean"
	CostMinkowski   = "minkowski"
)

// Distribution names.
const (
	DistNormal      = "normal"
	DistUniform     = "uniform"
	DistExponential = "exponential"
	DistGamma       = "gamma"
	DistBeta        = "beta"
)

// Problem is the top-level YAML document.
type Problem struct {
	Seed       uint64        `yaml:"seed"`
	Cost       string        `yaml:"cost"`
	MinkowskiP float64       `yaml:"minkowski_p"`
	Epsilon    *float64      `yaml:"epsilon"`
	Method     string        `yaml:"method"`
	LogLevel   string        `yaml:"log_level"`
	Options    SolverOptions `yaml:"options"`
	Source     MeasureSpec   `yaml:"source"`
	Target     MeasureSpec   `yaml:"target"`
	Sweep      []float64     `yaml:"sweep"`
	SweepLimit int           `yaml:"sweep_limit"`
}

// SolverOptions mirrors wasserstein.Options; omitted fields keep the defaults.
type SolverOptions struct {
	MaxIters          *int     `yaml:"max_iters"`
	StepSize          *float64 `yaml:"step_size"`
	WarmupPhase       *float64 `yaml:"warmup_phase"`
	Atol              *float64 `yaml:"atol"`
	Rtol              *float64 `yaml:"rtol"`
	MonteCarloSamples *int     `yaml:"montecarlo_samples"`
	LogEvery          int      `yaml:"log_every"`
}

// MeasureSpec holds exactly one of Discrete or Distribution.
type MeasureSpec struct {
	Discrete     *DiscreteSpec     `yaml:"discrete"`
	Distribution *DistributionSpec `yaml:"distribution"`
}

// DiscreteSpec is a finite support with optional weights (uniform when omitted).
type DiscreteSpec struct {
	Support [][]float64 `yaml:"support"`
	Weights []float64   `yaml:"weights"`
}

// DistributionSpec names a parametric law sampled coordinate-wise.
//
// Parameters by name:
//   - normal:      mu (default 0), sigma (default 1)
//   - uniform:     min, max
//   - exponential: rate
//   - gamma:       alpha, beta
//   - beta:        alpha, beta
type DistributionSpec struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params"`
	Dim    int                `yaml:"dim"`
}

// dim returns the point dimension of a validated measure entry.
func (m MeasureSpec) dim() int {
	if m.Discrete != nil {
		return len(m.Discrete.Support[0])
	}
	if m.Distribution.Dim == 0 {
		return 1
	}

	return m.Distribution.Dim
}
