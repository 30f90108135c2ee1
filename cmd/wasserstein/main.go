// Command wasserstein solves the transport problem described by a YAML file
// and prints the estimated distance, or one line per ε when the file lists a
// sweep.
//
//	wasserstein -problem problem.yaml -log-level debug -log-format text
//
// STOCHOT_LOG_LEVEL and STOCHOT_SEED (read from the environment or a .env
// file) provide defaults for -log-level and -seed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/katalvlaran/stochot/config"
	"github.com/katalvlaran/stochot/logger"
	"github.com/katalvlaran/stochot/wasserstein"
)

func main() {
	_ = godotenv.Load(".env")

	var (
		problemPath string
		logLevel    string
		logFormat   string
		seed        uint64
	)
	flag.StringVar(&problemPath, "problem", "", "path to the problem YAML file")
	flag.StringVar(&logLevel, "log-level", os.Getenv("STOCHOT_LOG_LEVEL"), "log level (debug, info, warn, error); overrides log_level in the problem")
	flag.StringVar(&logFormat, "log-format", "text", "log format (json, text)")
	flag.Uint64Var(&seed, "seed", envSeed(), "random seed; 0 keeps the seed from the problem")
	flag.Parse()

	if problemPath == "" {
		fmt.Fprintln(os.Stderr, "wasserstein: -problem is required")
		flag.Usage()
		os.Exit(2)
	}

	p, err := config.LoadProblem(problemPath)
	if err != nil {
		logger.Default.Error("failed to load problem", "path", problemPath, "error", err)
		os.Exit(1)
	}
	if logLevel == "" {
		logLevel = p.LogLevel
	}
	l, err := logger.NewFormat(logFormat, logLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.SetDefault(l)
	log := logger.With("run_id", uuid.New().String())

	inst, err := p.Build()
	if err != nil {
		log.Error("failed to build problem", "path", problemPath, "error", err)
		os.Exit(1)
	}
	if seed != 0 {
		inst.Seed = seed
	}
	inst.Options.Logger = log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, inst); err != nil {
		log.Error("solve failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, inst *config.Instance) error {
	if len(inst.Sweep) == 0 {
		res, err := wasserstein.Solve(wasserstein.NewRand(inst.Seed), inst.Cost, inst.Source, inst.Target, inst.Epsilon, inst.Options)
		if err != nil {
			return err
		}
		printResult("", res)
		return nil
	}

	results, err := wasserstein.Sweep(ctx, inst.Seed, inst.Cost, inst.Source, inst.Target, inst.Sweep, inst.Options, inst.SweepLimit)
	if err != nil {
		return err
	}
	for k, res := range results {
		printResult(fmt.Sprintf("epsilon=%g ", *inst.Sweep[k]), res)
	}
	return nil
}

func printResult(prefix string, res wasserstein.Result) {
	fmt.Printf("%sdistance=%.6g method=%s iterations=%d converged=%t", prefix, res.Distance, res.Method, res.Iterations, res.Converged)
	if res.Method == wasserstein.MethodSGA && res.StdErr > 0 {
		fmt.Printf(" stderr=%.3g", res.StdErr)
	}
	fmt.Println()
}

// envSeed reads STOCHOT_SEED; a missing or malformed value means 0.
func envSeed() uint64 {
	s, err := strconv.ParseUint(os.Getenv("STOCHOT_SEED"), 10, 64)
	if err != nil {
		return 0
	}
	return s
}
