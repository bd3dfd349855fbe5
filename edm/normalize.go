package edm

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

func checkFinite(series []float64) error {
	for idx, value := range series {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return errors.Errorf("series value at index %d is not finite", idx)
		}
	}
	return nil
}

// normalize rescales series into [0, 1] using its own range. It returns
// false when the series is empty or constant, in which case there is
// nothing to detect.
func normalize(series []float64) ([]float64, bool) {
	if len(series) == 0 {
		return nil, false
	}

	min, err := stats.Min(series)
	if err != nil {
		return nil, false
	}
	max, err := stats.Max(series)
	if err != nil {
		return nil, false
	}

	denom := max - min
	if denom == 0 {
		return nil, false
	}

	out := make([]float64, len(series))
	for idx, value := range series {
		out[idx] = (value - min) / denom
	}
	return out, true
}
