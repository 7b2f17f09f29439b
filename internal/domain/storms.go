package domain

import (
	"fmt"
	"math"
)

// shapeTolerance is the |k| below which the Pareto tail is treated as the
// exponential limit, which the closed form cannot express. It also bounds how
// close the mean excess slope may come to -1.
const shapeTolerance = 1e-9

// ThresholdSpacing selects how candidate thresholds are laid across the range.
type ThresholdSpacing string

const (
	SpacingLinear    ThresholdSpacing = "linear"
	SpacingGeometric ThresholdSpacing = "geometric"
)

// ThresholdGrid describes the candidate thresholds for the mean residual life fit.
type ThresholdGrid struct {
	Count   int
	Spacing ThresholdSpacing
}

// DefaultThresholdGrid is eight evenly spaced thresholds.
func DefaultThresholdGrid() ThresholdGrid {
	return ThresholdGrid{Count: 8, Spacing: SpacingLinear}
}

// Thresholds returns Count values starting at lo and stepping towards hi. The
// upper bound itself is excluded so the top threshold keeps exceedances.
func (g ThresholdGrid) Thresholds(lo, hi float64) ([]float64, error) {
	if g.Count < 2 {
		return nil, fmt.Errorf("threshold count %d: %w", g.Count, ErrInvalidThresholds)
	}
	if !(lo < hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("threshold range [%g, %g): %w", lo, hi, ErrInvalidThresholds)
	}

	out := make([]float64, g.Count)
	switch g.Spacing {
	case SpacingLinear, "":
		step := (hi - lo) / float64(g.Count)
		for i := range out {
			out[i] = lo + float64(i)*step
		}
	case SpacingGeometric:
		if lo <= 0 {
			return nil, fmt.Errorf("geometric thresholds need a positive lower bound, got %g: %w", lo, ErrInvalidThresholds)
		}
		ratio := hi / lo
		for i := range out {
			out[i] = lo * math.Pow(ratio, float64(i)/float64(g.Count))
		}
	default:
		return nil, fmt.Errorf("threshold spacing %q: %w", g.Spacing, ErrInvalidThresholds)
	}
	return out, nil
}

// ThresholdBounds overrides the default [min, max] threshold range. Nil fields
// fall back to the sample extremes.
type ThresholdBounds struct {
	Min *float64 `json:"min_threshold,omitempty"`
	Max *float64 `json:"max_threshold,omitempty"`
}

// MeanExcess returns the mean of v-u over observations strictly above u.
func MeanExcess(gusts []float64, u float64) (float64, error) {
	var sum float64
	var n int
	for _, v := range gusts {
		if v > u {
			sum += v - u
			n++
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("threshold %g: %w", u, ErrNoExceedances)
	}
	return sum / float64(n), nil
}

// PeaksOverThreshold fits a Generalised Pareto tail to independent storm peaks
// recorded over the given number of years.
func PeaksOverThreshold(gusts []float64, years float64, bounds ThresholdBounds, grid ThresholdGrid) (ParetoCurve, error) {
	if err := validateSample(gusts); err != nil {
		return ParetoCurve{}, fmt.Errorf("peaks over threshold: %w", err)
	}
	if err := validateYears(years); err != nil {
		return ParetoCurve{}, fmt.Errorf("peaks over threshold: %w", err)
	}

	rate := float64(len(gusts)) / years

	lo, hi := minMax(gusts)
	if bounds.Min != nil {
		lo = *bounds.Min
	}
	if bounds.Max != nil {
		hi = *bounds.Max
	}
	thresholds, err := grid.Thresholds(lo, hi)
	if err != nil {
		return ParetoCurve{}, fmt.Errorf("peaks over threshold: %w", err)
	}

	excesses := make([]float64, len(thresholds))
	for i, u := range thresholds {
		e, err := MeanExcess(gusts, u)
		if err != nil {
			return ParetoCurve{}, fmt.Errorf("peaks over threshold: %w", err)
		}
		excesses[i] = e
	}

	line, err := FitLine(thresholds, excesses)
	if err != nil {
		return ParetoCurve{}, fmt.Errorf("peaks over threshold: %w", err)
	}

	s, c := line.Slope, line.Intercept
	if math.Abs(s+1) < shapeTolerance {
		return ParetoCurve{}, fmt.Errorf("peaks over threshold: mean excess slope -1: %w", ErrDegenerateShape)
	}
	k := -s / (s + 1)
	if math.Abs(k) < shapeTolerance {
		return ParetoCurve{}, fmt.Errorf("peaks over threshold: shape %g is the exponential limit: %w", k, ErrDegenerateShape)
	}

	return ParetoCurve{
		Shape:     k,
		Scale:     c * (s + 1),
		Location:  thresholds[0],
		StormRate: rate,
	}, nil
}

func validateYears(years float64) error {
	if math.IsNaN(years) || math.IsInf(years, 0) || years <= 0 {
		return fmt.Errorf("years %g: %w", years, ErrInvalidYears)
	}
	return nil
}
