package samples

// Series is an ordered sequence of duration measurements in seconds.
// Order matters: the first element is the most likely to carry
// cold-start skew.
type Series []float64

// Min returns the smallest value in the series, or 0 for an empty one.
func (s Series) Min() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0]
	for _, v := range s[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// ModeSamples pairs the warm-up series with the measured series for one
// execution mode of one workload.
type ModeSamples struct {
	Warmup    Series `json:"warmup"`
	Benchmark Series `json:"benchmark"`
}

// Record holds both execution modes for one workload.
type Record struct {
	Compiled    ModeSamples `json:"compiled"`
	Interpreted ModeSamples `json:"interpreted"`
}
