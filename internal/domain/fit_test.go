package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestFitLine(t *testing.T) {
	t.Run("exact line", func(t *testing.T) {
		x := []float64{0, 1, 2, 3, 4}
		y := []float64{1, 3, 5, 7, 9}

		line, err := FitLine(x, y)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, line.Slope, 1e-12)
		assert.InDelta(t, 1.0, line.Intercept, 1e-12)
		assert.InDelta(t, 21.0, line.At(10), 1e-10)
	})

	t.Run("two points", func(t *testing.T) {
		line, err := FitLine([]float64{1, 3}, []float64{2, 8})
		require.NoError(t, err)
		assert.InDelta(t, 3.0, line.Slope, 1e-12)
		assert.InDelta(t, -1.0, line.Intercept, 1e-12)
	})

	t.Run("does not modify inputs", func(t *testing.T) {
		x := []float64{3, 1, 2}
		y := []float64{6, 2, 4}
		_, err := FitLine(x, y)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 1, 2}, x)
		assert.Equal(t, []float64{6, 2, 4}, y)
	})
}

func TestFitLine_MatchesReferenceRegression(t *testing.T) {
	samples := []struct {
		name string
		x, y []float64
	}{
		{"noisy increasing", []float64{1, 2, 3, 4, 5, 6}, []float64{2.1, 3.9, 6.2, 7.8, 10.1, 12.2}},
		{"negative slope", []float64{-2, -1, 0.5, 3, 7}, []float64{10, 8.5, 6, 1, -7}},
		{"unsorted", []float64{9, 1, 5, 3, 7}, []float64{30.2, 25.1, 27.9, 26.4, 29.5}},
		{"reduced variates", []float64{-0.91, -0.53, -0.2, 0.12, 0.47, 0.87, 1.38, 2.18}, []float64{31, 33, 34, 36, 37, 40, 41, 45}},
	}

	for _, tt := range samples {
		t.Run(tt.name, func(t *testing.T) {
			line, err := FitLine(tt.x, tt.y)
			require.NoError(t, err)

			intercept, slope := stat.LinearRegression(tt.x, tt.y, nil, false)
			assert.InDelta(t, slope, line.Slope, 1e-9)
			assert.InDelta(t, intercept, line.Intercept, 1e-9)
		})
	}
}

func TestFitLine_Errors(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want error
	}{
		{"length mismatch", []float64{1, 2, 3}, []float64{1, 2}, ErrShapeMismatch},
		{"single point", []float64{1}, []float64{1}, ErrInsufficientSample},
		{"empty", nil, nil, ErrInsufficientSample},
		{"identical x", []float64{2, 2, 2}, []float64{1, 2, 3}, ErrSingularFit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitLine(tt.x, tt.y)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
