package domain

import "errors"

// Validation errors.
var (
	ErrInsufficientSample = errors.New("sample needs at least two usable observations")
	ErrInvalidObservation = errors.New("observation must be finite and non-negative")
	ErrInvalidYears       = errors.New("exposure duration must be a positive number of years")
	ErrInvalidThresholds  = errors.New("threshold range must satisfy min < max within the sample")
	ErrUnknownMethod      = errors.New("unknown estimation method")
)

// Numerical degeneracy errors.
var (
	ErrSingularFit     = errors.New("least squares system is rank deficient")
	ErrNoExceedances   = errors.New("no observations exceed threshold")
	ErrDegenerateShape = errors.New("degenerate generalised pareto shape")
)

// ErrReturnPeriod is returned when a curve is evaluated at R <= 1.
var ErrReturnPeriod = errors.New("return period must be greater than one year")

// ErrNotImplemented marks methods that are listed but unsupported.
var ErrNotImplemented = errors.New("estimation method not implemented")
