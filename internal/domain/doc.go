// Package domain estimates extreme design wind speeds from historical gust records.
//
// # Input Records
//
// Two kinds of sample are accepted, both as plain slices of gust speeds:
//
//	Annual maxima:     one value per year, the largest gust recorded that year.
//	Independent storms: the peak gust of every independent storm, possibly many
//	                   per year, together with the exposure duration in years.
//
// Values must be finite and non-negative. Every estimator needs at least two
// usable observations because each one ends in a straight-line fit.
//
// # Annual-Maxima Methods
//
// Gumbel and Gringorten rank the sorted sample (rank r = 1 for the smallest)
// and assign a probability ordinate:
//
//	Gumbel (Weibull position): P = r / (N + 1)
//	Gringorten:                P = (r - 0.44) / (N + 0.12)
//
// The reduced variate y = -ln(-ln P) linearises the Type I extreme value
// distribution, so a least squares line V = u + a*y gives the mode u and
// dispersion a. The design speed for return period R years is
//
//	V(R) = u + a * (-ln(-ln(1 - 1/R)))
//
// which has a pole at R = 1. Curves reject R <= 1 with [ErrReturnPeriod].
//
// Method of Moments skips plotting positions and derives the same two
// parameters from the sample mean and standard deviation:
//
//	a = stddev * sqrt(6) / pi
//	u = mean + gamma * a      (gamma = -0.5772156649, see [Constants])
//
// # Independent-Storm Methods
//
// Peaks-Over-Threshold fits a Generalised Pareto tail from the mean residual
// life plot. For a grid of candidate thresholds the mean excess over each
// threshold is computed, a line e(u) = s*u + c is fitted, and
//
//	k = -s / (s + 1)       shape
//	sigma = c * (s + 1)    scale
//	V(R) = u_min + sigma * (1 - (rate*R)^-k) / k
//
// where rate is storms per year. The exponential limit k = 0 has no closed form
// here and is reported as [ErrDegenerateShape].
//
// XIMIS (Harris, 2009) sorts the storm peaks in descending order and uses the
// expected reduced variate of the m-th largest of N, y = ln N - psi(m), where psi
// is the digamma function. The fitted line V = u + a*y is evaluated at the
// per-storm reduced variate of the return period, y(R) = ln(rate*R).
//
// IMIS with direction and storm-type covariates is listed as a [Method] but
// is not supported; requesting it returns [ErrNotImplemented].
//
// # Units
//
// Speeds are fitted directly. There is no implicit squaring into pressures; the
// design dynamic pressure q = 0.5*rho*V^2 is reported alongside each tabulated
// speed using [Constants.AirDensity].
package domain
