package venv

import (
	"os"
	"path/filepath"
	"testing"

	"nuibench/internal/bench"
	"nuibench/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasePythonArgv(t *testing.T) {
	v := config.PyVersion{Major: 3, Minor: 12}
	assert.Equal(t, []string{"python3.12"}, BasePythonArgv("Linux", v))
	assert.Equal(t, []string{"python3.12"}, BasePythonArgv("macOS", v))
	assert.Equal(t, []string{"py", "-3.12"}, BasePythonArgv("Windows", v))
}

func TestPythonPath(t *testing.T) {
	w := bench.Workload{Name: "bm_x", Dir: filepath.Join("suite", "bm_x")}
	assert.Equal(t, filepath.Join("suite", "bm_x", ".venv", "bin", "python"),
		PythonPath("Linux", w))
	assert.Equal(t, filepath.Join("suite", "bm_x", ".venv", "Scripts", "python.exe"),
		PythonPath("Windows", w))
}

func TestChannelPackage(t *testing.T) {
	assert.Equal(t, "nuitka", ChannelPackage(config.ChannelRelease))
	assert.Contains(t, ChannelPackage(config.ChannelFactory), "factory.zip")
}

func TestInstallCommands(t *testing.T) {
	dir := t.TempDir()
	w := bench.Workload{Name: "bm_x", Dir: dir}

	commands := InstallCommands("py", config.ChannelRelease, w)
	require.Len(t, commands, 3)
	assert.Equal(t, []string{"py", "-m", "pip", "install", "--upgrade", "pip"}, commands[0])
	assert.Equal(t, []string{"py", "-m", "pip", "install", "nuitka"}, commands[1])
	assert.Equal(t, []string{"py", "-m", "pip", "install", "ordered-set", "appdirs"}, commands[2])

	// With a requirements file the install list grows by one.
	require.NoError(t, os.WriteFile(w.RequirementsPath(), []byte("chameleon\n"), 0644))
	commands = InstallCommands("py", config.ChannelFactory, w)
	require.Len(t, commands, 4)
	assert.Contains(t, commands[1][len(commands[1])-1], "factory.zip")
	assert.Equal(t, []string{"py", "-m", "pip", "install", "-r", "requirements.txt"}, commands[3])
}

func TestCompileArgv(t *testing.T) {
	linux := CompileArgv("py", "Linux")
	assert.Contains(t, linux, "--standalone")
	assert.Contains(t, linux, "--lto=yes")
	assert.Contains(t, linux, "--static-libpython=yes")
	assert.Equal(t, "run_benchmark.py", linux[len(linux)-1])

	windows := CompileArgv("py", "Windows")
	assert.NotContains(t, windows, "--static-libpython=yes")
	assert.Contains(t, windows, "--remove-output")
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	w := bench.Workload{Name: "bm_x", Dir: dir}
	require.NoError(t, os.MkdirAll(filepath.Join(w.VenvDir(), "bin"), 0755))
	require.NoError(t, os.MkdirAll(w.DistDir(), 0755))

	cfg := &config.Config{Platform: "Linux"}
	p := NewProvisioner(cfg, nil)
	require.NoError(t, p.Cleanup(w))

	_, err := os.Stat(w.VenvDir())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(w.DistDir())
	assert.True(t, os.IsNotExist(err))
}
