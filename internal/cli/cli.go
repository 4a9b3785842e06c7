package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nuibench/internal/bench"
	"nuibench/internal/config"
	"nuibench/internal/report"
	"nuibench/internal/rework"
	"nuibench/internal/samples"
	"nuibench/internal/stats"
	"nuibench/internal/storage"
	"nuibench/internal/venv"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/log"
)

// RunResult counts what happened to the suite.
type RunResult struct {
	Completed int
	Skipped   int
	Failed    int
}

// Start drives one full run: discover workloads, then per workload
// provision → compile → measure both modes → persist. Sequential
// throughout; a workload failure moves on to the next one, an interrupt
// cleans up the in-flight workload and stops.
func Start(ctx context.Context, cfg *config.Config, logger *log.Logger) (RunResult, error) {
	if logger == nil {
		logger = log.Default()
	}

	printHeader(cfg)
	started := time.Now()

	workloads, err := bench.Discover(cfg.BenchmarksDir)
	if err != nil {
		return RunResult{}, fmt.Errorf("discovering workloads: %w", err)
	}

	resultPath := cfg.ResultPath()
	results, err := samples.LoadOrEmpty(resultPath, cfg.Platform, cfg.PythonVersion.String(), string(cfg.Channel))
	if err != nil {
		return RunResult{}, err
	}
	// Claim the combination before the first workload runs.
	if err := samples.Touch(resultPath); err != nil {
		return RunResult{}, err
	}

	prov := venv.NewProvisioner(cfg, logger)

	var res RunResult
	for i, w := range workloads {
		if ctx.Err() != nil {
			logger.Warn("interrupted, stopping run", "remaining", len(workloads)-i)
			break
		}

		prefix := fmt.Sprintf("[%d/%d]", i+1, len(workloads))

		switch {
		case cfg.IsExcluded(w.Name):
			logger.Warn(prefix+" skipping excluded workload", "workload", w.Name, "python", cfg.PythonVersion)
			res.Skipped++
			continue
		case !w.HasEntryPoint():
			logger.Warn(prefix+" skipping workload without entry point", "workload", w.Name)
			res.Skipped++
			continue
		case results.Has(w.Name):
			logger.Info(prefix+" skipping workload, results exist", "workload", w.Name)
			res.Skipped++
			continue
		}

		logger.Info(prefix+" benchmarking", "workload", w.Name,
			"python", cfg.PythonVersion, "channel", cfg.Channel)

		rec, runner, err := runWorkload(ctx, cfg, prov, w, logger)
		if err != nil {
			if ctx.Err() != nil {
				logger.Warn("interrupted mid-workload, cleaned up", "workload", w.Name)
				break
			}
			logger.Error("workload failed, continuing", "workload", w.Name, "err", err)
			res.Failed++
			continue
		}

		results.Upsert(w.Name, rec)
		if err := results.Save(resultPath); err != nil {
			return res, fmt.Errorf("saving results: %w", err)
		}
		res.Completed++

		printWorkloadSummary(w.Name, rec, runner)
	}

	appendHistory(cfg, res, time.Since(started), logger)
	printRunSummary(res, time.Since(started))

	return res, ctx.Err()
}

// runWorkload owns one workload's lifecycle; artifacts are removed on
// every exit path, including interrupt.
func runWorkload(ctx context.Context, cfg *config.Config, prov *venv.Provisioner, w bench.Workload, logger *log.Logger) (samples.Record, *bench.Runner, error) {
	defer func() {
		if err := prov.Cleanup(w); err != nil {
			logger.Error("cleanup failed", "workload", w.Name, "err", err)
		}
	}()

	restore, err := rework.Prepare(w.Name, w.Dir)
	if err != nil {
		return samples.Record{}, nil, err
	}

	python, err := prov.Provision(ctx, w)
	if err != nil {
		restore()
		return samples.Record{}, nil, err
	}

	// Compile against the patched source, then put the original back
	// before the interpreted runs.
	err = prov.Compile(ctx, w, python)
	if restoreErr := restore(); restoreErr != nil && err == nil {
		err = restoreErr
	}
	if err != nil {
		return samples.Record{}, nil, err
	}

	runner := bench.NewRunner(cfg.Iterations, logger)
	runner.OnProgress = progressPrinter()

	rec, err := runner.RunRecord(ctx, w,
		bench.CompiledArgv(cfg.Platform),
		bench.InterpretedArgv(python),
	)
	if err != nil {
		return samples.Record{}, nil, err
	}
	return rec, runner, nil
}

// progressPrinter renders a single-line progress bar per measurement
// phase.
func progressPrinter() bench.ProgressFunc {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30

	return func(mode bench.Mode, phase bench.Phase, done, total int) {
		pct := float64(done) / float64(total)
		fmt.Printf("\r  %-11s %-9s %s %3d/%d", mode, phase, bar.ViewAs(pct), done, total)
		if done == total {
			fmt.Println()
		}
	}
}

func printHeader(cfg *config.Config) {
	fmt.Printf("\n🚀 NUIBENCH RUN\n")
	fmt.Printf("======================================================================\n")
	fmt.Printf("Platform   : %s %s\n", cfg.PlatformEmoji, cfg.Platform)
	fmt.Printf("CPython    : %s\n", cfg.PythonVersion)
	fmt.Printf("Channel    : %s\n", cfg.Channel)
	fmt.Printf("Iterations : %d warmup + %d benchmark per mode\n", cfg.Iterations, cfg.Iterations)
	fmt.Printf("Results    : %s\n", cfg.ResultPath())
	fmt.Printf("======================================================================\n\n")
}

func printWorkloadSummary(name string, rec samples.Record, runner *bench.Runner) {
	compiled, interpreted, diff, err := stats.CompareRecord(rec)
	if err != nil {
		fmt.Printf("  %s: %v\n\n", name, err)
		return
	}

	fmt.Printf("\n📊 %s\n", name)
	fmt.Printf("   Nuitka  : %.4fs (p50 %.0fms | p99 %.0fms | max %.0fms)\n",
		compiled, runner.Compiled.QuantileMs(50), runner.Compiled.QuantileMs(99), runner.Compiled.MaxMs())
	fmt.Printf("   CPython : %.4fs (p50 %.0fms | p99 %.0fms | max %.0fms)\n",
		interpreted, runner.Interpreted.QuantileMs(50), runner.Interpreted.QuantileMs(99), runner.Interpreted.MaxMs())
	fmt.Printf("   Diff    : %s\n\n", report.FormatDiff(diff))
}

func printRunSummary(res RunResult, elapsed time.Duration) {
	fmt.Printf("======================================================================\n")
	fmt.Printf("✅ Completed: %d | Skipped: %d | Failed: %d | Took: %s\n",
		res.Completed, res.Skipped, res.Failed, elapsed.Round(time.Second))
	fmt.Printf("======================================================================\n")
}

func appendHistory(cfg *config.Config, res RunResult, elapsed time.Duration, logger *log.Logger) {
	store, err := storage.NewStore("")
	if err != nil {
		logger.Error("opening history store", "err", err)
		return
	}
	_, err = store.Append(storage.HistoryItem{
		Platform:      cfg.Platform,
		PythonVersion: cfg.PythonVersion.String(),
		Channel:       string(cfg.Channel),
		Workloads:     res.Completed,
		Skipped:       res.Skipped,
		Failures:      res.Failed,
		DurationSec:   elapsed.Seconds(),
	})
	if err != nil {
		logger.Error("recording run history", "err", err)
	}
}

// errInterrupted distinguishes the operator stopping the run from a
// workload failure when deciding the exit code.
var errInterrupted = errors.New("run interrupted")

// ExitError maps the run outcome to a process exit decision.
func ExitError(res RunResult, err error) error {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errInterrupted
		}
		return err
	}
	if res.Failed > 0 && res.Completed == 0 {
		return fmt.Errorf("all %d attempted workloads failed", res.Failed)
	}
	return nil
}
