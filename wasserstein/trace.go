package wasserstein

import "log/slog"

// tracer emits optional progress records. The zero value is silent.
type tracer struct {
	log    *slog.Logger
	every  int
	method Method
}

func newTracer(opts Options, method Method) tracer {
	return tracer{log: opts.Logger, every: opts.LogEvery, method: method}
}

// progress logs at Debug every `every` iterations.
func (t tracer) progress(k int, prev, next []float64) {
	if t.log == nil || t.every == 0 || k%t.every != 0 {
		return
	}
	t.log.Debug("wasserstein progress",
		slog.String("method", t.method.String()),
		slog.Int("iter", k),
		slog.Float64("max_delta", maxAbsDelta(prev, next)),
	)
}

// finished logs the summary of a solve at Info, or at Warn when the budget
// ran out before the monitor fired.
func (t tracer) finished(res Result) {
	if t.log == nil {
		return
	}
	attrs := []any{
		slog.String("method", res.Method.String()),
		slog.Int("iterations", res.Iterations),
		slog.Bool("converged", res.Converged),
		slog.Float64("distance", res.Distance),
		slog.Float64("stderr", res.StdErr),
	}
	if !res.Converged && res.Iterations > 0 {
		t.log.Warn("wasserstein iteration budget exhausted", attrs...)
		return
	}
	t.log.Info("wasserstein solve finished", attrs...)
}
