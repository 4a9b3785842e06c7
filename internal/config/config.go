package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Channel selects the Nuitka toolchain variant under test.
type Channel string

const (
	ChannelRelease Channel = "release"
	ChannelFactory Channel = "factory"
)

func ParseChannel(s string) (Channel, error) {
	switch Channel(strings.ToLower(s)) {
	case ChannelRelease:
		return ChannelRelease, nil
	case ChannelFactory:
		return ChannelFactory, nil
	}
	return "", fmt.Errorf("unknown channel %q (want release or factory)", s)
}

// PyVersion is a parsed "major.minor" interpreter version.
type PyVersion struct {
	Major int
	Minor int
}

func ParsePyVersion(s string) (PyVersion, error) {
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return PyVersion{}, fmt.Errorf("invalid python version %q", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return PyVersion{}, fmt.Errorf("invalid python version %q", s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return PyVersion{}, fmt.Errorf("invalid python version %q", s)
	}
	return PyVersion{Major: major, Minor: minor}, nil
}

func (v PyVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtMost reports v <= other.
func (v PyVersion) AtMost(other PyVersion) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor <= other.Minor
}

// Exclusion disables workloads up to and including a version ceiling on
// one platform.
type Exclusion struct {
	Ceiling   PyVersion
	Workloads []string
}

// Config carries everything one invocation needs. It is constructed once
// at startup and passed down; nothing here is process-global.
type Config struct {
	Platform      string // Linux, Windows or macOS
	PlatformEmoji string

	PythonVersion PyVersion
	Channel       Channel

	BenchmarksDir string
	ResultsDir    string
	Iterations    int

	Exclusions map[string][]Exclusion
}

var platformNames = map[string]string{
	"linux":   "Linux",
	"windows": "Windows",
	"darwin":  "macOS",
}

var platformEmojis = map[string]string{
	"Linux":   "🐧",
	"Windows": "🪟",
	"macOS":   "🍎",
}

// EmojiFor returns the platform's marker, or "" for unknown platforms.
func EmojiFor(platform string) string {
	return platformEmojis[platform]
}

// DetectPlatform maps the Go runtime OS to the harness platform name.
func DetectPlatform() string {
	if name, ok := platformNames[runtime.GOOS]; ok {
		return name
	}
	return runtime.GOOS
}

// defaultExclusions mirrors the combinations known not to build: django
// templates need 3.10+ template machinery.
var defaultExclusions = map[string][]Exclusion{
	"Linux": {
		{Ceiling: PyVersion{3, 9}, Workloads: []string{"bm_django_template"}},
	},
	"Windows": {
		{Ceiling: PyVersion{3, 9}, Workloads: []string{"bm_django_template"}},
	},
}

// New builds the run configuration from flags already bound into viper.
func New(pythonVersion string, channel Channel) (*Config, error) {
	version, err := ParsePyVersion(pythonVersion)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform()

	iterations := viper.GetInt("iterations")
	if iterations <= 0 {
		iterations = 100
	}

	benchDir := viper.GetString("benchmarks_dir")
	if benchDir == "" {
		benchDir = "benchmarks"
	}
	resultsDir := viper.GetString("results_dir")
	if resultsDir == "" {
		resultsDir = "results"
	}

	return &Config{
		Platform:      platform,
		PlatformEmoji: platformEmojis[platform],
		PythonVersion: version,
		Channel:       channel,
		BenchmarksDir: benchDir,
		ResultsDir:    resultsDir,
		Iterations:    iterations,
		Exclusions:    defaultExclusions,
	}, nil
}

// IsExcluded reports whether a workload is disabled for this platform
// and interpreter version.
func (c *Config) IsExcluded(workload string) bool {
	for _, excl := range c.Exclusions[c.Platform] {
		if !c.PythonVersion.AtMost(excl.Ceiling) {
			continue
		}
		for _, name := range excl.Workloads {
			if name == workload {
				return true
			}
		}
	}
	return false
}

// ResultPath is the result file location for this run.
func (c *Config) ResultPath() string {
	name := fmt.Sprintf("%s-%s-%s.json", c.Platform, c.PythonVersion, c.Channel)
	return filepath.Join(c.ResultsDir, name)
}
