package venv

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"nuibench/internal/bench"
	"nuibench/internal/config"

	"github.com/charmbracelet/log"
)

// nuitkaFactoryArchive is the pre-release branch installed for the
// factory channel.
const nuitkaFactoryArchive = "https://github.com/Nuitka/Nuitka/archive/factory.zip"

// Provisioner creates per-workload virtual environments, installs the
// compiler toolchain plus workload dependencies, and drives the Nuitka
// build. All external tools are opaque collaborators; we only check exit
// codes and surface stderr.
type Provisioner struct {
	cfg    *config.Config
	logger *log.Logger
}

func NewProvisioner(cfg *config.Config, logger *log.Logger) *Provisioner {
	if logger == nil {
		logger = log.Default()
	}
	return &Provisioner{cfg: cfg, logger: logger}
}

// BasePythonArgv locates the requested interpreter on the host: the py
// launcher on Windows, a versioned binary elsewhere.
func BasePythonArgv(platform string, version config.PyVersion) []string {
	if platform == "Windows" {
		return []string{"py", "-" + version.String()}
	}
	return []string{"python" + version.String()}
}

// PythonPath is the interpreter inside a workload's venv.
func PythonPath(platform string, w bench.Workload) string {
	if platform == "Windows" {
		return filepath.Join(w.VenvDir(), "Scripts", "python.exe")
	}
	return filepath.Join(w.VenvDir(), "bin", "python")
}

// ChannelPackage is the pip requirement string for the selected Nuitka
// channel.
func ChannelPackage(channel config.Channel) string {
	if channel == config.ChannelFactory {
		return nuitkaFactoryArchive
	}
	return "nuitka"
}

// InstallCommands is the fixed provisioning sequence run inside the
// workload dir, after venv creation.
func InstallCommands(python string, channel config.Channel, w bench.Workload) [][]string {
	commands := [][]string{
		{python, "-m", "pip", "install", "--upgrade", "pip"},
		{python, "-m", "pip", "install", ChannelPackage(channel)},
		{python, "-m", "pip", "install", "ordered-set", "appdirs"},
	}
	if w.HasRequirements() {
		commands = append(commands, []string{python, "-m", "pip", "install", "-r", "requirements.txt"})
	}
	return commands
}

// CompileArgv is the Nuitka invocation for the workload entry point.
func CompileArgv(python, platform string) []string {
	argv := []string{
		python, "-m", "nuitka",
		"--standalone",
		"--lto=yes",
		"--remove-output",
		"--assume-yes-for-downloads",
	}
	if platform == "Linux" {
		argv = append(argv, "--static-libpython=yes")
	}
	return append(argv, "run_benchmark.py")
}

// Provision builds the workload's venv and installs everything the two
// execution modes need. Returns the venv interpreter path.
func (p *Provisioner) Provision(ctx context.Context, w bench.Workload) (string, error) {
	base := BasePythonArgv(p.cfg.Platform, p.cfg.PythonVersion)
	create := append(append([]string{}, base...), "-m", "venv", ".venv")
	if err := p.run(ctx, w.Dir, create); err != nil {
		return "", fmt.Errorf("creating venv for %s: %w", w.Name, err)
	}

	python := PythonPath(p.cfg.Platform, w)
	for _, argv := range InstallCommands(python, p.cfg.Channel, w) {
		if err := p.run(ctx, w.Dir, argv); err != nil {
			return "", fmt.Errorf("provisioning %s: %w", w.Name, err)
		}
	}
	return python, nil
}

// Compile runs the Nuitka build in the workload dir. The build can take
// minutes; output is captured and only surfaced on failure.
func (p *Provisioner) Compile(ctx context.Context, w bench.Workload, python string) error {
	p.logger.Info("compiling workload", "workload", w.Name, "channel", p.cfg.Channel)
	if err := p.run(ctx, w.Dir, CompileArgv(python, p.cfg.Platform)); err != nil {
		return fmt.Errorf("compiling %s: %w", w.Name, err)
	}
	return nil
}

// Cleanup removes the provisioned environment and build artifacts. Also
// called on interrupt for the in-flight workload.
func (p *Provisioner) Cleanup(w bench.Workload) error {
	var firstErr error
	for _, path := range []string{w.VenvDir(), w.DistDir()} {
		if err := os.RemoveAll(path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (p *Provisioner) run(ctx context.Context, dir string, argv []string) error {
	p.logger.Debug("running command", "dir", dir, "argv", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = bench.ChildEnv()

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(output.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", argv[0], err)
		}
		return fmt.Errorf("%s: %w: %s", argv[0], err, msg)
	}
	return nil
}
