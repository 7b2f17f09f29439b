package domain

import (
	"fmt"
	"strings"
)

// Method names an estimation method.
type Method string

const (
	MethodGumbel             Method = "gumbel"
	MethodGringorten         Method = "gringorten"
	MethodMoments            Method = "method_of_moments"
	MethodPeaksOverThreshold Method = "peaks_over_threshold"
	MethodXIMIS              Method = "ximis"
	MethodIMIS               Method = "imis"
)

// Family groups methods by the kind of sample they consume.
type Family string

const (
	FamilyAnnualMaxima      Family = "annual_maxima"
	FamilyIndependentStorms Family = "independent_storms"
)

// MethodInfo describes a method for listings.
type MethodInfo struct {
	Method       Method `json:"method"`
	Family       Family `json:"family"`
	Supported    bool   `json:"supported"`
	MeasuredData bool   `json:"measured_data"`
	NeedsYears   bool   `json:"needs_years"`
}

var methods = []MethodInfo{
	{Method: MethodGumbel, Family: FamilyAnnualMaxima, Supported: true, MeasuredData: true},
	{Method: MethodGringorten, Family: FamilyAnnualMaxima, Supported: true, MeasuredData: true},
	{Method: MethodMoments, Family: FamilyAnnualMaxima, Supported: true},
	{Method: MethodPeaksOverThreshold, Family: FamilyIndependentStorms, Supported: true, NeedsYears: true},
	{Method: MethodXIMIS, Family: FamilyIndependentStorms, Supported: true, MeasuredData: true, NeedsYears: true},
	{Method: MethodIMIS, Family: FamilyIndependentStorms, NeedsYears: true},
}

// Methods lists every known method, including unsupported ones.
func Methods() []MethodInfo {
	return append([]MethodInfo(nil), methods...)
}

var methodAliases = map[string]Method{
	"moments": MethodMoments,
	"mom":     MethodMoments,
	"pot":     MethodPeaksOverThreshold,
}

// ParseMethod normalises a method name. Matching is case-insensitive and
// accepts the short aliases "moments", "mom" and "pot".
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	if m, ok := methodAliases[name]; ok {
		return m, nil
	}
	for _, info := range methods {
		if string(info.Method) == name {
			return info.Method, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownMethod)
}

// Sample is the input to [Estimate]. Years and Bounds only apply to the
// independent storms family; GustThreshold only to annual maxima.
type Sample struct {
	Gusts         []float64
	Years         float64
	GustThreshold float64
	Bounds        ThresholdBounds
}

// Settings carries the injected constants and tuning for all methods.
type Settings struct {
	Constants  Constants
	Thresholds ThresholdGrid
}

// DefaultSettings returns the standard constants and threshold grid.
func DefaultSettings() Settings {
	return Settings{
		Constants:  DefaultConstants(),
		Thresholds: DefaultThresholdGrid(),
	}
}

// Estimation is a fitted curve together with its measured data, if any.
type Estimation struct {
	Method   Method
	Curve    Curve
	Measured []MeasuredPoint
}

// Parameters flattens the fitted curve parameters by name.
func (e Estimation) Parameters() map[string]float64 {
	switch c := e.Curve.(type) {
	case GumbelCurve:
		return map[string]float64{"slope": c.Slope, "intercept": c.Intercept}
	case ParetoCurve:
		return map[string]float64{
			"shape":      c.Shape,
			"scale":      c.Scale,
			"location":   c.Location,
			"storm_rate": c.StormRate,
		}
	case StormCurve:
		return map[string]float64{"slope": c.Slope, "intercept": c.Intercept, "storm_rate": c.StormRate}
	default:
		return nil
	}
}

// Estimate runs the named method on the sample.
func Estimate(method Method, sample Sample, settings Settings) (Estimation, error) {
	est := Estimation{Method: method}
	var err error

	switch method {
	case MethodGumbel:
		est.Curve, est.Measured, err = Gumbel(sample.Gusts, sample.GustThreshold)
	case MethodGringorten:
		est.Curve, est.Measured, err = Gringorten(sample.Gusts, sample.GustThreshold)
	case MethodMoments:
		est.Curve, err = MethodOfMoments(sample.Gusts, sample.GustThreshold, settings.Constants)
	case MethodPeaksOverThreshold:
		est.Curve, err = PeaksOverThreshold(sample.Gusts, sample.Years, sample.Bounds, settings.Thresholds)
	case MethodXIMIS:
		est.Curve, est.Measured, err = XIMIS(sample.Gusts, sample.Years)
	case MethodIMIS:
		err = IMIS()
	default:
		err = fmt.Errorf("%q: %w", method, ErrUnknownMethod)
	}
	if err != nil {
		return Estimation{}, err
	}
	return est, nil
}
