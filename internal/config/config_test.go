package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePyVersion(t *testing.T) {
	v, err := ParsePyVersion("3.12")
	require.NoError(t, err)
	assert.Equal(t, PyVersion{3, 12}, v)
	assert.Equal(t, "3.12", v.String())

	_, err = ParsePyVersion("3")
	require.Error(t, err)
	_, err = ParsePyVersion("three.twelve")
	require.Error(t, err)
}

func TestPyVersionAtMost(t *testing.T) {
	assert.True(t, PyVersion{3, 9}.AtMost(PyVersion{3, 9}))
	assert.True(t, PyVersion{3, 8}.AtMost(PyVersion{3, 9}))
	assert.False(t, PyVersion{3, 10}.AtMost(PyVersion{3, 9}))
	assert.True(t, PyVersion{2, 7}.AtMost(PyVersion{3, 0}))
}

func TestParseChannel(t *testing.T) {
	ch, err := ParseChannel("release")
	require.NoError(t, err)
	assert.Equal(t, ChannelRelease, ch)

	ch, err = ParseChannel("Factory")
	require.NoError(t, err)
	assert.Equal(t, ChannelFactory, ch)

	_, err = ParseChannel("nightly")
	require.Error(t, err)
}

func TestIsExcluded(t *testing.T) {
	cfg := &Config{
		Platform:      "Linux",
		PythonVersion: PyVersion{3, 9},
		Exclusions: map[string][]Exclusion{
			"Linux": {
				{Ceiling: PyVersion{3, 9}, Workloads: []string{"bm_django_template"}},
			},
		},
	}

	assert.True(t, cfg.IsExcluded("bm_django_template"))
	assert.False(t, cfg.IsExcluded("bm_recursion"))

	// Newer interpreter than the ceiling is not excluded.
	cfg.PythonVersion = PyVersion{3, 12}
	assert.False(t, cfg.IsExcluded("bm_django_template"))

	// Platform without entries.
	cfg.Platform = "macOS"
	cfg.PythonVersion = PyVersion{3, 9}
	assert.False(t, cfg.IsExcluded("bm_django_template"))
}

func TestResultPath(t *testing.T) {
	cfg := &Config{
		Platform:      "Linux",
		PythonVersion: PyVersion{3, 12},
		Channel:       ChannelRelease,
		ResultsDir:    "results",
	}
	assert.Equal(t, filepath.Join("results", "Linux-3.12-release.json"), cfg.ResultPath())
}
