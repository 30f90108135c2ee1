package config

import (
	"fmt"

	"github.com/katalvlaran/stochot/cost"
	"github.com/katalvlaran/stochot/measure"
	"github.com/katalvlaran/stochot/wasserstein"
)

// Instance is a validated Problem turned into solver inputs.
type Instance struct {
	Seed       uint64
	Source     measure.Measure[[]float64]
	Target     measure.Measure[[]float64]
	Cost       cost.Func[[]float64, []float64]
	Epsilon    *float64
	Options    wasserstein.Options
	Sweep      []*float64
	SweepLimit int
}

// Build constructs the measures, cost and options described by p.
// Options.Logger is left nil for the caller to set.
func (p *Problem) Build() (*Instance, error) {
	src, err := buildMeasure(&p.Source)
	if err != nil {
		return nil, fmt.Errorf("build source: %w", err)
	}
	dst, err := buildMeasure(&p.Target)
	if err != nil {
		return nil, fmt.Errorf("build target: %w", err)
	}
	c, err := buildCost(p.Cost, p.MinkowskiP)
	if err != nil {
		return nil, err
	}
	opts, err := p.solverOptions()
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		Seed:       p.Seed,
		Source:     src,
		Target:     dst,
		Cost:       c,
		Epsilon:    p.Epsilon,
		Options:    opts,
		SweepLimit: p.SweepLimit,
	}
	for _, eps := range p.Sweep {
		inst.Sweep = append(inst.Sweep, wasserstein.Float(eps))
	}

	return inst, nil
}

// solverOptions overlays the YAML options on wasserstein.DefaultOptions.
func (p *Problem) solverOptions() (wasserstein.Options, error) {
	opts := wasserstein.DefaultOptions()
	o := p.Options
	if o.MaxIters != nil {
		opts.MaxIters = *o.MaxIters
	}
	if o.StepSize != nil {
		opts.StepSize = *o.StepSize
	}
	if o.WarmupPhase != nil {
		opts.WarmupPhase = *o.WarmupPhase
	}
	if o.Atol != nil {
		opts.Atol = *o.Atol
	}
	if o.Rtol != nil {
		opts.Rtol = wasserstein.Float(*o.Rtol)
	}
	if o.MonteCarloSamples != nil {
		opts.MonteCarloSamples = *o.MonteCarloSamples
	}
	opts.LogEvery = o.LogEvery

	switch p.Method {
	case "", "auto":
		opts.Method = wasserstein.MethodAuto
	case "sag":
		opts.Method = wasserstein.MethodSAG
	case "sga":
		opts.Method = wasserstein.MethodSGA
	default:
		return opts, fmt.Errorf("%w: invalid method: %s", ErrInvalidProblem, p.Method)
	}

	return opts, nil
}

// buildCost maps a cost name to a function over []float64 points.
// abs is the L1 distance, which is |x − y| in one dimension; squared and
// sqeuclidean coincide for the same reason.
func buildCost(name string, p float64) (cost.Func[[]float64, []float64], error) {
	switch name {
	case CostAbs:
		return cost.Minkowski(1), nil
	case CostSquared, CostSqEuclidean:
		return cost.SqEuclidean, nil
	case CostEuclidean:
		return cost.Euclidean, nil
	case CostMinkowski:
		if !(p >= 1) {
			return nil, fmt.Errorf("%w: minkowski_p must be >= 1, got %v", ErrInvalidProblem, p)
		}
		return cost.Minkowski(p), nil
	default:
		return nil, fmt.Errorf("%w: unknown cost: %s", ErrInvalidProblem, name)
	}
}

func buildMeasure(m *MeasureSpec) (measure.Measure[[]float64], error) {
	if m.Discrete != nil {
		var (
			d   *measure.Discrete[[]float64]
			err error
		)
		if m.Discrete.Weights == nil {
			d, err = measure.Uniform(m.Discrete.Support)
		} else {
			d, err = measure.NewDiscrete(m.Discrete.Support, m.Discrete.Weights)
		}
		if err != nil {
			return nil, err
		}
		return d, nil
	}

	d := m.Distribution
	dim := m.dim()
	param := func(name string, def float64) float64 {
		if v, ok := d.Params[name]; ok {
			return v
		}
		return def
	}

	if d.Name == DistNormal {
		mean := make([]float64, dim)
		for i := range mean {
			mean[i] = param("mu", 0)
		}
		s, err := measure.IsotropicNormal(mean, param("sigma", 1))
		if err != nil {
			return nil, fmt.Errorf("distribution %s: %w", d.Name, err)
		}
		return s, nil
	}

	var (
		scalar *measure.Sampleable[float64]
		err    error
	)
	switch d.Name {
	case DistUniform:
		scalar, err = measure.UniformRange(param("min", 0), param("max", 1))
	case DistExponential:
		scalar, err = measure.Exponential(param("rate", 1))
	case DistGamma:
		scalar, err = measure.Gamma(param("alpha", 1), param("beta", 1))
	case DistBeta:
		scalar, err = measure.Beta(param("alpha", 1), param("beta", 1))
	default:
		return nil, fmt.Errorf("%w: unknown distribution: %s", ErrInvalidProblem, d.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("distribution %s: %w", d.Name, err)
	}

	s, err := measure.Product(scalar, dim)
	if err != nil {
		return nil, err
	}
	return s, nil
}
