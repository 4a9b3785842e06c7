package stats

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Summary is a thread-safe wrapper around hdrhistogram used for the
// per-workload completion summary. Values are recorded in microseconds.
type Summary struct {
	hist *hdrhistogram.Histogram
	mu   sync.Mutex
}

func NewSummary() *Summary {
	// 1us to 1h, 3 significant figures; workload processes run seconds
	// to minutes.
	h := hdrhistogram.New(1, int64(time.Hour/time.Microsecond), 3)
	return &Summary{hist: h}
}

// RecordDuration records one invocation's elapsed time.
func (s *Summary) RecordDuration(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.RecordValue(d.Microseconds())
}

// QuantileMs returns the value at quantile q in milliseconds.
func (s *Summary) QuantileMs(q float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.hist.ValueAtQuantile(q)) / 1000.0
}

// MaxMs returns the maximum recorded value in milliseconds.
func (s *Summary) MaxMs() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.hist.Max()) / 1000.0
}

func (s *Summary) TotalCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.TotalCount()
}
