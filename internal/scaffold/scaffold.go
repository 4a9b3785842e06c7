package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"nuibench/internal/bench"
	"nuibench/internal/rework"
)

// entryPointTemplate is the starting point for a new workload. It times
// itself and writes the side-channel file, so it works unchanged for
// workloads the orchestrator cannot time externally.
const entryPointTemplate = `"""
Benchmark for {{.Description}}.
"""

from time import perf_counter_ns


def bench() -> None:
    # TODO: exercise the feature under test
    total = 0
    for i in range(1_000_000):
        total += i


if __name__ == "__main__":
    start = perf_counter_ns()
    bench()
    end = perf_counter_ns()
    with open("{{.SideChannelFile}}", "w") as f:
        f.write(str(end - start))
`

type templateData struct {
	Name            string
	Description     string
	SideChannelFile string
}

// Options controls what Create generates.
type Options struct {
	Description  string
	Requirements bool
}

// Create generates a new workload directory under suiteDir. It refuses
// to touch an existing workload.
func Create(suiteDir, name string, o Options) (bench.Workload, error) {
	if !strings.HasPrefix(name, bench.WorkloadPrefix) {
		return bench.Workload{}, fmt.Errorf("workload name must start with %q, got %q", bench.WorkloadPrefix, name)
	}

	w := bench.Workload{Name: name, Dir: filepath.Join(suiteDir, name)}
	if _, err := os.Stat(w.Dir); err == nil {
		return bench.Workload{}, fmt.Errorf("workload %s already exists", name)
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return bench.Workload{}, err
	}

	description := o.Description
	if description == "" {
		description = strings.ReplaceAll(strings.TrimPrefix(name, bench.WorkloadPrefix), "_", " ")
	}

	tmpl, err := template.New(rework.EntryPointName).Parse(entryPointTemplate)
	if err != nil {
		return bench.Workload{}, err
	}

	f, err := os.Create(w.EntryPoint())
	if err != nil {
		return bench.Workload{}, err
	}
	defer f.Close()

	data := templateData{
		Name:            name,
		Description:     description,
		SideChannelFile: bench.SideChannelFile,
	}
	if err := tmpl.Execute(f, data); err != nil {
		return bench.Workload{}, err
	}

	if o.Requirements {
		if err := os.WriteFile(w.RequirementsPath(), []byte(""), 0644); err != nil {
			return bench.Workload{}, err
		}
	}
	return w, nil
}
