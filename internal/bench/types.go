package bench

import (
	"os"
	"path/filepath"

	"nuibench/internal/rework"
)

// WorkloadPrefix marks benchmark directories inside the suite dir.
const WorkloadPrefix = "bm_"

// SideChannelFile is written by workloads that time themselves (async
// workloads mostly); content is integer nanoseconds.
const SideChannelFile = "bench_time.txt"

// Workload is one benchmark script directory.
type Workload struct {
	Name string
	Dir  string
}

func (w Workload) EntryPoint() string {
	return filepath.Join(w.Dir, rework.EntryPointName)
}

func (w Workload) RequirementsPath() string {
	return filepath.Join(w.Dir, "requirements.txt")
}

// HasEntryPoint reports whether the interpreted-mode script exists.
// Workloads without one are skipped, not fatal.
func (w Workload) HasEntryPoint() bool {
	info, err := os.Stat(w.EntryPoint())
	return err == nil && !info.IsDir()
}

func (w Workload) HasRequirements() bool {
	info, err := os.Stat(w.RequirementsPath())
	return err == nil && !info.IsDir()
}

// DistDir is where Nuitka leaves the standalone build.
func (w Workload) DistDir() string {
	return filepath.Join(w.Dir, "run_benchmark.dist")
}

// VenvDir is the per-workload virtual environment.
func (w Workload) VenvDir() string {
	return filepath.Join(w.Dir, ".venv")
}
