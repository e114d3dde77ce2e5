package latency

import (
	"fmt"
	"math"
)

// TimeoutMs is the legacy sentinel reported in all three fields of an
// unreachable sample.
const TimeoutMs = 999.0

// Sample is a reduced probe result in milliseconds.
// A reachable sample always satisfies 0 <= Min <= Avg <= Max.
type Sample struct {
	Min       float64
	Avg       float64
	Max       float64
	Reachable bool
}

// Unreachable returns a sample telling that no timing data was obtained
func Unreachable() Sample {
	return Sample{
		Min: TimeoutMs,
		Avg: TimeoutMs,
		Max: TimeoutMs,
	}
}

// Reachable builds a sample from already reduced values
func Reachable(min, avg, max float64) Sample {
	return Sample{
		Min:       min,
		Avg:       avg,
		Max:       max,
		Reachable: true,
	}
}

// reduce computes min, mean and max of round trip times.
// Empty or invalid input is unreachable.
func reduce(times []float64) Sample {
	if len(times) == 0 {
		return Unreachable()
	}

	min, max, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, t := range times {
		if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return Unreachable()
		}
		min = math.Min(min, t)
		max = math.Max(max, t)
		sum += t
	}

	// mean of floats may drift out of [min, max] by rounding
	avg := math.Min(math.Max(sum/float64(len(times)), min), max)
	return Reachable(min, avg, max)
}

// Triple returns (min, avg, max). Unreachable samples return the sentinel triple.
func (s Sample) Triple() (float64, float64, float64) {
	if !s.Reachable {
		return TimeoutMs, TimeoutMs, TimeoutMs
	}
	return s.Min, s.Avg, s.Max
}

func (s Sample) String() string {
	if !s.Reachable {
		return "Timeout"
	}
	return fmt.Sprintf("%.1f ms", s.Avg)
}

// Hop is one responding point of a traced path
type Hop struct {
	Address   string
	LatencyMs float64
}
