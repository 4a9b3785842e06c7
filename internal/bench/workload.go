package bench

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover lists workload directories under dir, sorted by name. Only
// directories with the bm_ prefix count; everything else in the suite
// dir (helper scripts, results) is ignored.
func Discover(dir string) ([]Workload, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var workloads []Workload
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), WorkloadPrefix) {
			continue
		}
		workloads = append(workloads, Workload{
			Name: entry.Name(),
			Dir:  filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(workloads, func(i, j int) bool {
		return workloads[i].Name < workloads[j].Name
	})
	return workloads, nil
}

// CompiledArgv is the compiled-mode command for the given platform,
// relative to the workload dir.
func CompiledArgv(platform string) []string {
	if platform == "Windows" {
		return []string{`run_benchmark.dist\run_benchmark.cmd`}
	}
	return []string{"./run_benchmark.dist/run_benchmark.bin"}
}

// InterpretedArgv runs the entry point with the venv interpreter.
func InterpretedArgv(python string) []string {
	return []string{python, "run_benchmark.py"}
}
