package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// PlottingPosition returns the probability ordinate of the rank-th smallest of
// n observations. rank starts at 1.
type PlottingPosition func(rank, n int) float64

// WeibullPosition is r/(N+1), used by the Gumbel method.
func WeibullPosition(rank, n int) float64 {
	return float64(rank) / float64(n+1)
}

// GringortenPosition is (r-0.44)/(N+0.12), less biased for small Type I samples.
func GringortenPosition(rank, n int) float64 {
	return (float64(rank) - 0.44) / (float64(n) + 0.12)
}

// Gumbel fits a Type I distribution to annual maxima using Weibull plotting
// positions. Observations at or below gustThreshold are left out of the fit
// but still count towards N.
func Gumbel(gusts []float64, gustThreshold float64) (GumbelCurve, []MeasuredPoint, error) {
	curve, measured, err := fitAnnualMaxima(gusts, gustThreshold, WeibullPosition)
	if err != nil {
		return GumbelCurve{}, nil, fmt.Errorf("gumbel: %w", err)
	}
	return curve, measured, nil
}

// Gringorten fits a Type I distribution to annual maxima using Gringorten
// plotting positions. gustThreshold behaves as in [Gumbel].
func Gringorten(gusts []float64, gustThreshold float64) (GumbelCurve, []MeasuredPoint, error) {
	curve, measured, err := fitAnnualMaxima(gusts, gustThreshold, GringortenPosition)
	if err != nil {
		return GumbelCurve{}, nil, fmt.Errorf("gringorten: %w", err)
	}
	return curve, measured, nil
}

func fitAnnualMaxima(gusts []float64, gustThreshold float64, position PlottingPosition) (GumbelCurve, []MeasuredPoint, error) {
	if err := validateSample(gusts); err != nil {
		return GumbelCurve{}, nil, err
	}
	if err := validateGustThreshold(gustThreshold); err != nil {
		return GumbelCurve{}, nil, err
	}

	sorted := sortedAscending(gusts)
	n := len(sorted)

	variates := make([]float64, 0, n)
	speeds := make([]float64, 0, n)
	measured := make([]MeasuredPoint, 0, n)
	for i, v := range sorted {
		if v <= gustThreshold {
			continue
		}
		p := position(i+1, n)
		variates = append(variates, reducedVariate(p))
		speeds = append(speeds, v)
		measured = append(measured, MeasuredPoint{ReturnPeriod: 1 / (1 - p), Speed: v})
	}
	if len(speeds) < 2 {
		return GumbelCurve{}, nil, fmt.Errorf("%d observations above gust threshold %g: %w",
			len(speeds), gustThreshold, ErrInsufficientSample)
	}

	line, err := FitLine(variates, speeds)
	if err != nil {
		return GumbelCurve{}, nil, err
	}
	return GumbelCurve{Slope: line.Slope, Intercept: line.Intercept}, measured, nil
}

// MethodOfMoments derives Type I parameters from the mean and standard
// deviation of the annual maxima above gustThreshold. The standard deviation
// is the population value (divisor N).
func MethodOfMoments(gusts []float64, gustThreshold float64, consts Constants) (GumbelCurve, error) {
	if err := validateSample(gusts); err != nil {
		return GumbelCurve{}, fmt.Errorf("method of moments: %w", err)
	}
	if err := validateGustThreshold(gustThreshold); err != nil {
		return GumbelCurve{}, fmt.Errorf("method of moments: %w", err)
	}

	kept := make([]float64, 0, len(gusts))
	for _, v := range gusts {
		if v > gustThreshold {
			kept = append(kept, v)
		}
	}
	n := len(kept)
	if n < 2 {
		return GumbelCurve{}, fmt.Errorf("method of moments: %d observations above gust threshold %g: %w",
			n, gustThreshold, ErrInsufficientSample)
	}

	mean, variance := stat.MeanVariance(kept, nil)
	stddev := math.Sqrt(variance * float64(n-1) / float64(n))

	a := stddev * math.Sqrt(6) / consts.Pi
	return GumbelCurve{Slope: a, Intercept: mean + consts.EulerGamma*a}, nil
}

func validateGustThreshold(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("gust threshold %g: %w", t, ErrInvalidThresholds)
	}
	return nil
}
