package config

import (
	"fmt"
	"math"
	"os"
)

// LoadProblem loads and parses a problem file.
func LoadProblem(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file %s: %w", path, err)
	}
	p, err := ParseProblemYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse problem file %s: %w", path, err)
	}
	return p, nil
}

// requiredParams lists the parameters each distribution must carry.
var requiredParams = map[string][]string{
	DistNormal:      nil,
	DistUniform:     {"min", "max"},
	DistExponential: {"rate"},
	DistGamma:       {"alpha", "beta"},
	DistBeta:        {"alpha", "beta"},
}

// validateProblem performs validation on the problem document.
func validateProblem(p *Problem) error {
	// Validate log level
	validLogLevels := map[string]bool{
		"":      true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[p.LogLevel] {
		return fmt.Errorf("%w: invalid log_level: %s (must be debug, info, warn, or error)", ErrInvalidProblem, p.LogLevel)
	}

	// Validate method
	switch p.Method {
	case "", "auto", "sag", "sga":
	default:
		return fmt.Errorf("%w: invalid method: %s (must be auto, sag, or sga)", ErrInvalidProblem, p.Method)
	}

	// Validate cost
	switch p.Cost {
	case CostAbs, CostSquared, CostEuclidean, CostSqEuclidean:
	case CostMinkowski:
		if !(p.MinkowskiP >= 1) {
			return fmt.Errorf("%w: minkowski_p must be >= 1, got %v", ErrInvalidProblem, p.MinkowskiP)
		}
	case "":
		return fmt.Errorf("%w: cost must be set", ErrInvalidProblem)
	default:
		return fmt.Errorf("%w: unknown cost: %s", ErrInvalidProblem, p.Cost)
	}

	// Validate regularization
	if p.Epsilon != nil && !positiveFinite(*p.Epsilon) {
		return fmt.Errorf("%w: epsilon must be finite and positive, got %v", ErrInvalidProblem, *p.Epsilon)
	}
	for i, eps := range p.Sweep {
		if !positiveFinite(eps) {
			return fmt.Errorf("%w: sweep entry %d must be finite and positive, got %v", ErrInvalidProblem, i, eps)
		}
	}
	if p.SweepLimit < 0 {
		return fmt.Errorf("%w: sweep_limit cannot be negative, got %d", ErrInvalidProblem, p.SweepLimit)
	}

	// Validate solver options
	if err := validateOptions(&p.Options); err != nil {
		return fmt.Errorf("options validation failed: %w", err)
	}

	// Validate measures
	if err := validateMeasure(&p.Source); err != nil {
		return fmt.Errorf("source validation failed: %w", err)
	}
	if err := validateMeasure(&p.Target); err != nil {
		return fmt.Errorf("target validation failed: %w", err)
	}
	if p.Source.Discrete == nil && p.Target.Discrete == nil {
		return fmt.Errorf("%w: at least one of source and target must be discrete", ErrInvalidProblem)
	}
	if ds, dt := p.Source.dim(), p.Target.dim(); ds != dt {
		return fmt.Errorf("%w: source dimension %d differs from target dimension %d", ErrInvalidProblem, ds, dt)
	}

	return nil
}

// validateOptions validates the solver options block
func validateOptions(o *SolverOptions) error {
	if o.MaxIters != nil && *o.MaxIters < 0 {
		return fmt.Errorf("%w: max_iters cannot be negative, got %d", ErrInvalidProblem, *o.MaxIters)
	}
	if o.StepSize != nil && !positiveFinite(*o.StepSize) {
		return fmt.Errorf("%w: step_size must be positive, got %v", ErrInvalidProblem, *o.StepSize)
	}
	if o.WarmupPhase != nil && !positiveFinite(*o.WarmupPhase) {
		return fmt.Errorf("%w: warmup_phase must be positive, got %v", ErrInvalidProblem, *o.WarmupPhase)
	}
	if o.Atol != nil && !(*o.Atol >= 0) {
		return fmt.Errorf("%w: atol cannot be negative, got %v", ErrInvalidProblem, *o.Atol)
	}
	if o.Rtol != nil && !(*o.Rtol >= 0) {
		return fmt.Errorf("%w: rtol cannot be negative, got %v", ErrInvalidProblem, *o.Rtol)
	}
	if o.MonteCarloSamples != nil && *o.MonteCarloSamples < 0 {
		return fmt.Errorf("%w: montecarlo_samples cannot be negative, got %d", ErrInvalidProblem, *o.MonteCarloSamples)
	}
	if o.LogEvery < 0 {
		return fmt.Errorf("%w: log_every cannot be negative, got %d", ErrInvalidProblem, o.LogEvery)
	}
	return nil
}

// validateMeasure validates one side of the problem
func validateMeasure(m *MeasureSpec) error {
	switch {
	case m.Discrete == nil && m.Distribution == nil:
		return fmt.Errorf("%w: one of discrete or distribution must be set", ErrInvalidProblem)
	case m.Discrete != nil && m.Distribution != nil:
		return fmt.Errorf("%w: discrete and distribution are mutually exclusive", ErrInvalidProblem)
	case m.Discrete != nil:
		return validateDiscrete(m.Discrete)
	default:
		return validateDistribution(m.Distribution)
	}
}

func validateDiscrete(d *DiscreteSpec) error {
	if len(d.Support) == 0 {
		return fmt.Errorf("%w: discrete support cannot be empty", ErrInvalidProblem)
	}
	dim := len(d.Support[0])
	if dim == 0 {
		return fmt.Errorf("%w: support points must have at least one coordinate", ErrInvalidProblem)
	}
	for i, pt := range d.Support {
		if len(pt) != dim {
			return fmt.Errorf("%w: support point %d has dimension %d, expected %d", ErrInvalidProblem, i, len(pt), dim)
		}
		for _, x := range pt {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("%w: support point %d is not finite", ErrInvalidProblem, i)
			}
		}
	}
	if d.Weights != nil && len(d.Weights) != len(d.Support) {
		return fmt.Errorf("%w: %d weights for %d support points", ErrInvalidProblem, len(d.Weights), len(d.Support))
	}
	return nil
}

func validateDistribution(d *DistributionSpec) error {
	required, ok := requiredParams[d.Name]
	if !ok {
		return fmt.Errorf("%w: unknown distribution: %s (must be normal, uniform, exponential, gamma, or beta)", ErrInvalidProblem, d.Name)
	}
	for _, name := range required {
		if _, ok := d.Params[name]; !ok {
			return fmt.Errorf("%w: distribution %s requires parameter %s", ErrInvalidProblem, d.Name, name)
		}
	}
	if d.Dim < 0 {
		return fmt.Errorf("%w: dim cannot be negative, got %d", ErrInvalidProblem, d.Dim)
	}
	return nil
}

func positiveFinite(x float64) bool { return x > 0 && !math.IsInf(x, 1) }
