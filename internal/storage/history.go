package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// HistoryItem summarizes one completed run.
type HistoryItem struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Platform      string    `json:"platform"`
	PythonVersion string    `json:"python_version"`
	Channel       string    `json:"channel"`
	Workloads     int       `json:"workloads"`
	Skipped       int       `json:"skipped"`
	Failures      int       `json:"failures"`
	DurationSec   float64   `json:"duration_sec"`
}

const maxItems = 100

// Store keeps the run history in a single JSON file under the user's
// config dir.
type Store struct {
	mu       sync.RWMutex
	filePath string
	items    []HistoryItem
}

// NewStore opens (or creates) the history store. An empty dir defaults
// to ~/.nuibench.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".nuibench")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(dir, "history.json"),
	}
	s.load()
	return s, nil
}

func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return // Ignore errors (file might not exist)
	}

	json.Unmarshal(data, &s.items)
}

// Append records a run, assigning it an ID, newest first.
func (s *Store) Append(item HistoryItem) (HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now()
	}

	s.items = append([]HistoryItem{item}, s.items...)
	if len(s.items) > maxItems {
		s.items = s.items[:maxItems]
	}

	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return item, err
	}
	return item, os.WriteFile(s.filePath, data, 0644)
}

func (s *Store) List() []HistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]HistoryItem, len(s.items))
	copy(res, s.items)
	return res
}

func (s *Store) Get(id string) *HistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return &item
		}
	}
	return nil
}
