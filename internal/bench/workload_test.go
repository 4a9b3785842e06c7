package bench

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"bm_recursion", "bm_chameleon", "results", "notes"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0755))
	}
	// A stray file with the prefix is not a workload.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bm_stray.py"), nil, 0644))

	workloads, err := Discover(dir)
	require.NoError(t, err)

	require.Len(t, workloads, 2)
	assert.Equal(t, "bm_chameleon", workloads[0].Name)
	assert.Equal(t, "bm_recursion", workloads[1].Name)
	assert.Equal(t, filepath.Join(dir, "bm_recursion"), workloads[1].Dir)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestWorkloadEntryPoint(t *testing.T) {
	dir := t.TempDir()
	w := Workload{Name: "bm_x", Dir: dir}

	assert.False(t, w.HasEntryPoint())
	require.NoError(t, os.WriteFile(w.EntryPoint(), []byte("print('hi')\n"), 0644))
	assert.True(t, w.HasEntryPoint())

	assert.False(t, w.HasRequirements())
	require.NoError(t, os.WriteFile(w.RequirementsPath(), []byte("chameleon\n"), 0644))
	assert.True(t, w.HasRequirements())
}

func TestCompiledArgv(t *testing.T) {
	assert.Equal(t, []string{"./run_benchmark.dist/run_benchmark.bin"}, CompiledArgv("Linux"))
	assert.Equal(t, []string{"./run_benchmark.dist/run_benchmark.bin"}, CompiledArgv("macOS"))
	assert.Equal(t, []string{`run_benchmark.dist\run_benchmark.cmd`}, CompiledArgv("Windows"))
}

func TestInterpretedArgv(t *testing.T) {
	assert.Equal(t, []string{"/x/.venv/bin/python", "run_benchmark.py"},
		InterpretedArgv("/x/.venv/bin/python"))
}

func TestChildEnvAllowList(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("allow-list differs on windows")
	}

	t.Setenv("HOME", "/tmp/home")
	t.Setenv("NUIBENCH_SECRET", "leak")

	env := ChildEnv()
	keys := make(map[string]bool)
	for _, kv := range env {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				keys[kv[:i]] = true
				break
			}
		}
	}

	assert.True(t, keys["HOME"])
	assert.False(t, keys["NUIBENCH_SECRET"])
	for k := range keys {
		assert.Contains(t, []string{"HOME", "PATH"}, k)
	}
}
