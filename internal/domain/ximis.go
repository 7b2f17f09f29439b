package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
)

// XIMIS fits Harris's exact method of independent storms: storm peaks sorted
// largest first are regressed on the expected reduced variate of the m-th
// largest of N, ln N - psi(m).
//
// Only the single-population linear fit is provided. Direction and storm-type
// synthesis belongs to IMIS, see [IMIS].
func XIMIS(gusts []float64, years float64) (StormCurve, []MeasuredPoint, error) {
	if err := validateSample(gusts); err != nil {
		return StormCurve{}, nil, fmt.Errorf("ximis: %w", err)
	}
	if err := validateYears(years); err != nil {
		return StormCurve{}, nil, fmt.Errorf("ximis: %w", err)
	}

	sorted := sortedDescending(gusts)
	n := len(sorted)
	rate := float64(n) / years
	lnN := math.Log(float64(n))

	variates := make([]float64, n)
	measured := make([]MeasuredPoint, n)
	for i, v := range sorted {
		y := lnN - mathext.Digamma(float64(i+1))
		variates[i] = y
		measured[i] = MeasuredPoint{ReturnPeriod: math.Exp(y) / rate, Speed: v}
	}

	line, err := FitLine(variates, sorted)
	if err != nil {
		return StormCurve{}, nil, fmt.Errorf("ximis: %w", err)
	}
	return StormCurve{Slope: line.Slope, Intercept: line.Intercept, StormRate: rate}, measured, nil
}

// IMIS is Harris's improved method of independent storms with wind direction
// and storm type covariates. It is not supported.
func IMIS() error {
	return fmt.Errorf("imis: %w", ErrNotImplemented)
}
