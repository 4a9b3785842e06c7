package samples

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Load when a result file is required but
// absent or still an empty placeholder.
var ErrNotFound = errors.New("result file not found")

// ResultFile is one on-disk JSON document per (platform, python version,
// channel) combination. Records are keyed by workload name; version and
// channel are repeated in the document so a file is self-describing.
type ResultFile struct {
	Platform      string            `json:"platform"`
	PythonVersion string            `json:"python_version"`
	Channel       string            `json:"channel"`
	Records       map[string]Record `json:"records"`
}

func NewResultFile(platform, pythonVersion, channel string) *ResultFile {
	return &ResultFile{
		Platform:      platform,
		PythonVersion: pythonVersion,
		Channel:       channel,
		Records:       make(map[string]Record),
	}
}

// FileName returns the conventional result file name,
// e.g. "Linux-3.12-release.json".
func FileName(platform, pythonVersion, channel string) string {
	return fmt.Sprintf("%s-%s-%s.json", platform, pythonVersion, channel)
}

// Load reads a result file whose presence is required. An absent or
// zero-length file yields ErrNotFound; anything else that fails to parse
// is a real error.
func Load(path string) (*ResultFile, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		// Placeholder touched by an in-progress run, no data yet.
		return nil, fmt.Errorf("%w: %s is empty", ErrNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rf ResultFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if rf.Records == nil {
		rf.Records = make(map[string]Record)
	}
	return &rf, nil
}

// LoadOrEmpty is the tolerant variant used on the write path: a missing
// or placeholder file means "no prior data" for this combination.
func LoadOrEmpty(path, platform, pythonVersion, channel string) (*ResultFile, error) {
	rf, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		return NewResultFile(platform, pythonVersion, channel), nil
	}
	return rf, err
}

// Upsert replaces the whole record stored under name. Partial merges of a
// ModeSamples never happen; the caller hands over a complete Record.
func (rf *ResultFile) Upsert(name string, rec Record) {
	if rf.Records == nil {
		rf.Records = make(map[string]Record)
	}
	rf.Records[name] = rec
}

// Has reports whether a complete record exists for the workload.
func (rf *ResultFile) Has(name string) bool {
	_, ok := rf.Records[name]
	return ok
}

// Save writes the whole document at once: marshal, write to a temp file
// in the same directory, rename over the target. A reader never observes
// a half-written document.
func (rf *ResultFile) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rf, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".results-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	// CreateTemp opens 0600; result files are world-readable like the
	// rest of what we write.
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Touch creates a zero-byte placeholder so concurrent or resumed runs can
// see the combination is claimed. Existing files are left alone.
func Touch(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}
