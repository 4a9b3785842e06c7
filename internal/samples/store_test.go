package samples

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(base float64) Record {
	return Record{
		Compiled: ModeSamples{
			Warmup:    Series{base + 2, base, base},
			Benchmark: Series{base, base, base},
		},
		Interpreted: ModeSamples{
			Warmup:    Series{base * 2, base * 1.5, base * 1.5},
			Benchmark: Series{base * 1.5, base * 1.5, base * 1.5},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "Linux-3.12-release.json")

	rf := NewResultFile("Linux", "3.12", "release")
	rf.Upsert("bm_recursion", testRecord(1.0))
	rf.Upsert("bm_decimal_factorial", testRecord(2.0))
	require.NoError(t, rf.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Linux", loaded.Platform)
	assert.Equal(t, "3.12", loaded.PythonVersion)
	assert.Equal(t, "release", loaded.Channel)
	require.Len(t, loaded.Records, 2)
	assert.Equal(t, rf.Records["bm_recursion"], loaded.Records["bm_recursion"])
	assert.Equal(t, rf.Records["bm_decimal_factorial"], loaded.Records["bm_decimal_factorial"])
}

func TestUpsertReplacesWholeRecord(t *testing.T) {
	rf := NewResultFile("Linux", "3.12", "release")
	rf.Upsert("bm_recursion", testRecord(5.0))

	replacement := testRecord(1.0)
	rf.Upsert("bm_recursion", replacement)

	require.Len(t, rf.Records, 1)
	assert.Equal(t, replacement, rf.Records["bm_recursion"])
	// No stale samples from the old value can survive a replace.
	assert.Equal(t, Series{3, 1, 1}, rf.Records["bm_recursion"].Compiled.Warmup)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadPlaceholderIsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Linux-3.12-release.json")
	require.NoError(t, Touch(path))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadOrEmptyToleratesPlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Linux-3.12-release.json")
	require.NoError(t, Touch(path))

	rf, err := LoadOrEmpty(path, "Linux", "3.12", "release")
	require.NoError(t, err)
	assert.Empty(t, rf.Records)
	assert.Equal(t, "3.12", rf.PythonVersion)
}

func TestLoadOrEmptyMissingFile(t *testing.T) {
	rf, err := LoadOrEmpty(filepath.Join(t.TempDir(), "absent.json"), "Linux", "3.12", "release")
	require.NoError(t, err)
	assert.Empty(t, rf.Records)
	assert.False(t, rf.Has("bm_recursion"))
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSaveCreatesParentsAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "results.json")

	rf := NewResultFile("macOS", "3.11", "factory")
	rf.Upsert("bm_gc_traversal", testRecord(0.5))
	require.NoError(t, rf.Save(path))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "results.json", entries[0].Name())
}

func TestSaveOverwritesPlaceholderAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Linux-3.12-release.json")
	require.NoError(t, Touch(path))

	rf := NewResultFile("Linux", "3.12", "release")
	rf.Upsert("bm_recursion", testRecord(1.0))
	require.NoError(t, rf.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Has("bm_recursion"))
}

func TestSaveFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	path := filepath.Join(t.TempDir(), "Linux-3.12-release.json")

	rf := NewResultFile("Linux", "3.12", "release")
	rf.Upsert("bm_recursion", testRecord(1.0))
	require.NoError(t, rf.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestSeriesMin(t *testing.T) {
	assert.Equal(t, 0.0, Series{}.Min())
	assert.Equal(t, 1.0, Series{5, 1, 3}.Min())
	assert.Equal(t, 2.0, Series{2, 2, 2}.Min())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Windows-3.10-factory.json", FileName("Windows", "3.10", "factory"))
}
