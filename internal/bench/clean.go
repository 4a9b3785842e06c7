package bench

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// artifactNames are the build leftovers removed from workload dirs.
var artifactNames = []string{
	".venv",
	"run_benchmark.dist",
	"run_benchmark.build",
	"run_benchmark.bin",
	"run_benchmark.exe",
	"__pycache__",
	".mypy_cache",
	SideChannelFile,
}

// CleanSuite removes provisioning and build artifacts from every
// workload directory. Returns the number of paths removed.
func CleanSuite(suiteDir string, logger *log.Logger) (int, error) {
	if logger == nil {
		logger = log.Default()
	}

	workloads, err := Discover(suiteDir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, w := range workloads {
		entries, err := os.ReadDir(w.Dir)
		if err != nil {
			return removed, err
		}
		for _, entry := range entries {
			if !isArtifact(entry.Name()) {
				continue
			}
			path := filepath.Join(w.Dir, entry.Name())
			logger.Debug("removing artifact", "path", path)
			if err := os.RemoveAll(path); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

func isArtifact(name string) bool {
	for _, artifact := range artifactNames {
		if name == artifact {
			return true
		}
	}
	// venvs created with versioned names, e.g. 3.12_venv
	return strings.HasSuffix(name, "_venv")
}
