package rework

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// EntryPointName is the file every workload exposes for the interpreted
// mode and feeds to the compiler.
const EntryPointName = "run_benchmark.py"

// Rule is one pattern to replacement substitution.
type Rule struct {
	Pattern *regexp.Regexp
	Replace string
}

// pathRules patch path-resolution idioms that resolve relative to the
// script location. The compiled binary runs from a different location
// than the source, so both modes must resolve against the working
// directory instead. Applied to every workload, not just those with
// literal swaps: both modes run with the workload dir as cwd, so the
// rewrite is a no-op for scripts that never use these idioms.
var pathRules = []Rule{
	{
		Pattern: regexp.MustCompile(`Path\(__file__\)\.parent`),
		Replace: `Path.cwd()`,
	},
	{
		Pattern: regexp.MustCompile(`os\.path\.dirname\(__file__\)`),
		Replace: `os.getcwd()`,
	},
}

// literalSwaps lists, per workload, string literals that must be resolved
// to absolute paths before compiling. The replacement is resolved against
// the workload directory at apply time.
var literalSwaps = map[string]map[string]string{
	"bm_pyflate": {
		"data/interpreter.tar.bz2": "data/interpreter.tar.bz2",
	},
}

// NeedsPrepare reports whether the workload has any substitution to apply.
func NeedsPrepare(workload string) bool {
	_, ok := literalSwaps[workload]
	return ok
}

// rulesFor builds the full rule set for a workload, with the per-workload
// literal replacements resolved against dir.
func rulesFor(workload, dir string) ([]Rule, error) {
	rules := make([]Rule, 0, len(pathRules)+len(literalSwaps[workload]))
	rules = append(rules, pathRules...)

	for literal, rel := range literalSwaps[workload] {
		abs, err := filepath.Abs(filepath.Join(dir, rel))
		if err != nil {
			return nil, err
		}
		// Match the literal inside either quote style; keep the quotes.
		quoted := regexp.QuoteMeta(literal)
		rules = append(rules, Rule{
			Pattern: regexp.MustCompile(`(['"])` + quoted + `(['"])`),
			Replace: `${1}` + abs + `${2}`,
		})
	}
	return rules, nil
}

// Apply runs the substitution table over src.
func Apply(workload, dir, src string) (string, error) {
	rules, err := rulesFor(workload, dir)
	if err != nil {
		return "", err
	}
	out := src
	for _, r := range rules {
		out = r.Pattern.ReplaceAllString(out, r.Replace)
	}
	return out, nil
}

// Prepare rewrites the workload entry point in place and returns a
// restore function that puts the original contents back. Compilation
// runs between the two.
func Prepare(workload, dir string) (restore func() error, err error) {
	path := filepath.Join(dir, EntryPointName)
	original, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	patched, err := Apply(workload, dir, string(original))
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, []byte(patched), 0644); err != nil {
		return nil, fmt.Errorf("patching %s: %w", path, err)
	}

	return func() error {
		return os.WriteFile(path, original, 0644)
	}, nil
}
