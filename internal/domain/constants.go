package domain

import "math"

// Constants holds the physical and statistical constants used by the
// estimators. Pass a modified copy to test against alternate values.
type Constants struct {
	// EulerGamma is added to the mean as u = mean + EulerGamma*a, so it carries
	// a negative sign.
	EulerGamma float64
	// Pi is used in the moments dispersion a = stddev*sqrt(6)/Pi.
	Pi float64
	// AirDensity in kg/m^3 converts a design speed to dynamic pressure.
	AirDensity float64
}

// DefaultConstants returns the standard values.
func DefaultConstants() Constants {
	return Constants{
		EulerGamma: -0.5772156649,
		Pi:         math.Pi,
		AirDensity: 1.2,
	}
}

// DynamicPressure returns 0.5*rho*v^2 in pascals for a speed in m/s.
func (c Constants) DynamicPressure(speed float64) float64 {
	return 0.5 * c.AirDensity * speed * speed
}
