package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"gumbel", MethodGumbel},
		{"Gringorten", MethodGringorten},
		{" method_of_moments ", MethodMoments},
		{"method-of-moments", MethodMoments},
		{"moments", MethodMoments},
		{"POT", MethodPeaksOverThreshold},
		{"peaks_over_threshold", MethodPeaksOverThreshold},
		{"ximis", MethodXIMIS},
		{"imis", MethodIMIS},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMethod("weibull")
	assert.ErrorIs(t, err, ErrUnknownMethod)
	_, err = ParseMethod("")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestMethods(t *testing.T) {
	list := Methods()
	require.Len(t, list, 6)

	supported := map[Method]bool{}
	for _, info := range list {
		supported[info.Method] = info.Supported
	}
	assert.False(t, supported[MethodIMIS])
	assert.True(t, supported[MethodXIMIS])
	assert.True(t, supported[MethodGumbel])

	list[0].Supported = false
	assert.True(t, Methods()[0].Supported, "listing is a copy")
}

func TestEstimate_Dispatch(t *testing.T) {
	settings := DefaultSettings()

	tests := []struct {
		method       Method
		sample       Sample
		wantMeasured bool
		wantParams   []string
	}{
		{MethodGumbel, Sample{Gusts: annualMaxima}, true, []string{"slope", "intercept"}},
		{MethodGringorten, Sample{Gusts: annualMaxima}, true, []string{"slope", "intercept"}},
		{MethodMoments, Sample{Gusts: annualMaxima}, false, []string{"slope", "intercept"}},
		{MethodPeaksOverThreshold, Sample{Gusts: uniformStorms, Years: 3}, false, []string{"shape", "scale", "location", "storm_rate"}},
		{MethodXIMIS, Sample{Gusts: annualMaxima, Years: 10}, true, []string{"slope", "intercept", "storm_rate"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			est, err := Estimate(tt.method, tt.sample, settings)
			require.NoError(t, err)
			assert.Equal(t, tt.method, est.Method)
			require.NotNil(t, est.Curve)
			assert.Equal(t, tt.wantMeasured, len(est.Measured) > 0)

			params := est.Parameters()
			assert.Len(t, params, len(tt.wantParams))
			for _, key := range tt.wantParams {
				assert.Contains(t, params, key)
			}

			_, err = est.Curve.Speed(50)
			require.NoError(t, err)
		})
	}
}

func TestEstimate_Unsupported(t *testing.T) {
	_, err := Estimate(MethodIMIS, Sample{Gusts: uniformStorms, Years: 3}, DefaultSettings())
	assert.ErrorIs(t, err, ErrNotImplemented)

	_, err = Estimate(Method("frechet"), Sample{Gusts: uniformStorms}, DefaultSettings())
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestEstimate_UsesSettings(t *testing.T) {
	settings := DefaultSettings()
	settings.Thresholds = ThresholdGrid{Count: 1}

	_, err := Estimate(MethodPeaksOverThreshold, Sample{Gusts: uniformStorms, Years: 3}, settings)
	assert.ErrorIs(t, err, ErrInvalidThresholds)
}

func TestTabulate(t *testing.T) {
	consts := DefaultConstants()
	rows, err := Tabulate(GumbelCurve{Slope: 2, Intercept: 10}, []float64{10, 50}, consts)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Less(t, rows[0].Speed, rows[1].Speed)
	assert.InDelta(t, 0.6*rows[1].Speed*rows[1].Speed, rows[1].Pressure, 1e-9)

	_, err = Tabulate(GumbelCurve{Slope: 2, Intercept: 10}, []float64{50, 1}, consts)
	assert.ErrorIs(t, err, ErrReturnPeriod)
}
