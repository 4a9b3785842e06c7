package bench

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"nuibench/internal/samples"
	"nuibench/internal/stats"

	"github.com/charmbracelet/log"
)

// Phase names the two sample series collected per mode.
type Phase string

const (
	PhaseWarmup    Phase = "warmup"
	PhaseBenchmark Phase = "benchmark"
)

// Mode names one execution variant of a workload.
type Mode string

const (
	ModeCompiled    Mode = "compiled"
	ModeInterpreted Mode = "interpreted"
)

// ProgressFunc receives completed/total counts while a series is being
// measured. May be nil.
type ProgressFunc func(mode Mode, phase Phase, done, total int)

// Runner executes timed repetitions of workload commands, one process at
// a time, and collects the samples the store persists.
type Runner struct {
	Iterations int
	OnProgress ProgressFunc

	// Completion-summary histograms, one per mode.
	Compiled    *stats.Summary
	Interpreted *stats.Summary

	logger *log.Logger
}

func NewRunner(iterations int, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Iterations:  iterations,
		Compiled:    stats.NewSummary(),
		Interpreted: stats.NewSummary(),
		logger:      logger,
	}
}

// RunRecord measures both modes of a workload: warm-up then benchmark
// series for the compiled command, same for the interpreted one. Any
// failed invocation aborts the workload and surfaces its stderr.
func (r *Runner) RunRecord(ctx context.Context, w Workload, compiledArgv, interpretedArgv []string) (samples.Record, error) {
	var rec samples.Record
	var err error

	if rec.Compiled, err = r.measureMode(ctx, w, ModeCompiled, compiledArgv); err != nil {
		return samples.Record{}, err
	}
	if rec.Interpreted, err = r.measureMode(ctx, w, ModeInterpreted, interpretedArgv); err != nil {
		return samples.Record{}, err
	}
	return rec, nil
}

func (r *Runner) measureMode(ctx context.Context, w Workload, mode Mode, argv []string) (samples.ModeSamples, error) {
	var m samples.ModeSamples
	var err error

	if m.Warmup, err = r.MeasureSeries(ctx, w, mode, PhaseWarmup, argv); err != nil {
		return samples.ModeSamples{}, err
	}
	r.logger.Info("completed warmup",
		"workload", w.Name, "mode", mode, "min", fmt.Sprintf("%.4fs", m.Warmup.Min()))

	if m.Benchmark, err = r.MeasureSeries(ctx, w, mode, PhaseBenchmark, argv); err != nil {
		return samples.ModeSamples{}, err
	}
	r.logger.Info("completed benchmark",
		"workload", w.Name, "mode", mode, "min", fmt.Sprintf("%.4fs", m.Benchmark.Min()))

	return m, nil
}

// MeasureSeries runs argv n times sequentially in the workload dir and
// returns one duration sample per invocation. A workload that writes the
// side-channel file overrides the wall-clock figure for that invocation.
func (r *Runner) MeasureSeries(ctx context.Context, w Workload, mode Mode, phase Phase, argv []string) (samples.Series, error) {
	series := make(samples.Series, 0, r.Iterations)

	for i := 0; i < r.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		elapsed, err := r.runOnce(ctx, w, argv)
		if err != nil {
			return nil, fmt.Errorf("%s %s repetition %d/%d of %s: %w",
				mode, phase, i+1, r.Iterations, w.Name, err)
		}

		series = append(series, elapsed.Seconds())
		r.summaryFor(mode).RecordDuration(elapsed)

		if r.OnProgress != nil {
			r.OnProgress(mode, phase, i+1, r.Iterations)
		}
	}
	return series, nil
}

func (r *Runner) runOnce(ctx context.Context, w Workload, argv []string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = w.Dir
	cmd.Env = ChildEnv()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %s", err, msg)
	}

	if side, ok, err := r.readSideChannel(w); err != nil {
		return 0, err
	} else if ok {
		return side, nil
	}
	return elapsed, nil
}

// readSideChannel picks up and removes the workload's self-measured
// duration when present.
func (r *Runner) readSideChannel(w Workload) (time.Duration, bool, error) {
	path := filepath.Join(w.Dir, SideChannelFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if err := os.Remove(path); err != nil {
		return 0, false, err
	}

	ns, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parsing %s for %s: %w", SideChannelFile, w.Name, err)
	}
	return time.Duration(ns), true, nil
}

func (r *Runner) summaryFor(mode Mode) *stats.Summary {
	if mode == ModeCompiled {
		return r.Compiled
	}
	return r.Interpreted
}
