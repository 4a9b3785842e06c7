package stats

import (
	"errors"
	"fmt"

	"nuibench/internal/samples"
)

var (
	// ErrEmptySeries means reconciliation was asked for a series with no
	// samples (malformed stored data, never substituted with a default).
	ErrEmptySeries = errors.New("empty sample series")

	// ErrZeroBaseline means the interpreted mean is zero and a relative
	// comparison is undefined.
	ErrZeroBaseline = errors.New("interpreted mean is zero")
)

// Representative reduces one series to a single duration. The first
// sample is dropped when it is also the series minimum (cold-start skew
// landing inside the measured region); a single-sample series is its own
// average.
func Representative(s samples.Series) (float64, error) {
	if len(s) == 0 {
		return 0, ErrEmptySeries
	}

	trimmed := s
	if len(s) > 1 && s.Min() == s[0] {
		trimmed = s[1:]
	}

	var sum float64
	for _, v := range trimmed {
		sum += v
	}
	return sum / float64(len(trimmed)), nil
}

// ModeRepresentative reduces one execution mode to a single duration:
// the smaller of its warm-up and benchmark representatives. The benchmark
// mean is the expected steady-state figure; the min guards against an
// unlucky warm-up/benchmark split.
func ModeRepresentative(m samples.ModeSamples) (float64, error) {
	warmup, err := Representative(m.Warmup)
	if err != nil {
		return 0, fmt.Errorf("warmup: %w", err)
	}
	bench, err := Representative(m.Benchmark)
	if err != nil {
		return 0, fmt.Errorf("benchmark: %w", err)
	}
	if bench < warmup {
		return bench, nil
	}
	return warmup, nil
}

// Compare returns the relative difference between the compiled and
// interpreted representatives as a percentage of the interpreted one.
// Positive means compiled is faster, negative slower, exactly 0 on a tie.
func Compare(compiled, interpreted float64) (float64, error) {
	if interpreted == 0 {
		return 0, ErrZeroBaseline
	}
	if compiled == interpreted {
		return 0, nil
	}
	return (interpreted - compiled) / interpreted * 100, nil
}

// CompareRecord reconciles both modes of a record and compares them.
func CompareRecord(rec samples.Record) (compiled, interpreted, diff float64, err error) {
	compiled, err = ModeRepresentative(rec.Compiled)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("compiled: %w", err)
	}
	interpreted, err = ModeRepresentative(rec.Interpreted)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("interpreted: %w", err)
	}
	diff, err = Compare(compiled, interpreted)
	if err != nil {
		return 0, 0, 0, err
	}
	return compiled, interpreted, diff, nil
}
