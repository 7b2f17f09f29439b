package domain

import (
	"fmt"
	"math"
	"sort"
)

// validateSample checks the size and values of an observation sample.
func validateSample(gusts []float64) error {
	if len(gusts) < 2 {
		return fmt.Errorf("%d observations: %w", len(gusts), ErrInsufficientSample)
	}
	for i, v := range gusts {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("observation %d (%g): %w", i, v, ErrInvalidObservation)
		}
	}
	return nil
}

// sortedAscending returns a sorted copy; the caller's slice is not modified.
func sortedAscending(gusts []float64) []float64 {
	sorted := append([]float64(nil), gusts...)
	sort.Float64s(sorted)
	return sorted
}

// sortedDescending returns a copy sorted largest first.
func sortedDescending(gusts []float64) []float64 {
	sorted := append([]float64(nil), gusts...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	return sorted
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// reducedVariate linearises the Type I CDF: y = -ln(-ln p), for 0 < p < 1.
func reducedVariate(p float64) float64 {
	return -math.Log(-math.Log(p))
}
