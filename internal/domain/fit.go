package domain

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrShapeMismatch is returned when the x and y series differ in length.
var ErrShapeMismatch = errors.New("x and y must have equal length")

// Line is a fitted straight line y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// FitLine computes the ordinary least squares line through (x[i], y[i]).
// The system is solved on the design matrix [x 1] by QR factorisation.
func FitLine(x, y []float64) (Line, error) {
	if len(x) != len(y) {
		return Line{}, fmt.Errorf("fit line: %d x values, %d y values: %w", len(x), len(y), ErrShapeMismatch)
	}
	n := len(x)
	if n < 2 {
		return Line{}, fmt.Errorf("fit line: %d points: %w", n, ErrInsufficientSample)
	}
	if constant(x) {
		return Line{}, fmt.Errorf("fit line: all x values equal %g: %w", x[0], ErrSingularFit)
	}

	design := mat.NewDense(n, 2, nil)
	for i, xi := range x {
		design.Set(i, 0, xi)
		design.Set(i, 1, 1)
	}
	obs := mat.NewVecDense(n, append([]float64(nil), y...))

	var params mat.VecDense
	if err := params.SolveVec(design, obs); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return Line{}, fmt.Errorf("fit line: condition number %g: %w", float64(cond), ErrSingularFit)
		}
		return Line{}, fmt.Errorf("fit line: %w", err)
	}

	line := Line{Slope: params.AtVec(0), Intercept: params.AtVec(1)}
	if math.IsNaN(line.Slope) || math.IsNaN(line.Intercept) ||
		math.IsInf(line.Slope, 0) || math.IsInf(line.Intercept, 0) {
		return Line{}, fmt.Errorf("fit line: non-finite parameters: %w", ErrSingularFit)
	}
	return line, nil
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
