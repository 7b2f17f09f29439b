package domain

import (
	"fmt"
	"math"
)

// Curve maps a return period in years to a design wind speed.
// Implementations are immutable and safe for concurrent use.
type Curve interface {
	Speed(returnPeriod float64) (float64, error)
}

// MeasuredPoint pairs an observation with its empirical return period.
type MeasuredPoint struct {
	ReturnPeriod float64 `json:"return_period"`
	Speed        float64 `json:"speed"`
}

// DesignSpeed is one row of a design speed table.
type DesignSpeed struct {
	ReturnPeriod float64 `json:"return_period"`
	Speed        float64 `json:"speed"`
	Pressure     float64 `json:"pressure"`
}

func checkReturnPeriod(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 1 {
		return fmt.Errorf("return period %g: %w", r, ErrReturnPeriod)
	}
	return nil
}

// finiteSpeed rejects speeds that overflow at extreme return periods, e.g. when
// 1-1/R rounds to 1.
func finiteSpeed(v, r float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("return period %g gives non-finite speed %g: %w", r, v, ErrReturnPeriod)
	}
	return v, nil
}

// GumbelCurve is a fitted Type I extreme value distribution.
type GumbelCurve struct {
	Slope     float64 `json:"slope"`     // dispersion a
	Intercept float64 `json:"intercept"` // mode u
}

// Speed returns u + a*(-ln(-ln(1 - 1/R))).
func (c GumbelCurve) Speed(returnPeriod float64) (float64, error) {
	if err := checkReturnPeriod(returnPeriod); err != nil {
		return 0, err
	}
	return finiteSpeed(c.Intercept+c.Slope*reducedVariate(1-1/returnPeriod), returnPeriod)
}

// ParetoCurve is a Generalised Pareto tail fitted by Peaks-Over-Threshold.
type ParetoCurve struct {
	Shape     float64 `json:"shape"`      // k
	Scale     float64 `json:"scale"`      // sigma
	Location  float64 `json:"location"`   // lowest candidate threshold
	StormRate float64 `json:"storm_rate"` // storms per year
}

// Speed returns location + sigma*(1 - (rate*R)^-k)/k.
func (c ParetoCurve) Speed(returnPeriod float64) (float64, error) {
	if err := checkReturnPeriod(returnPeriod); err != nil {
		return 0, err
	}
	return finiteSpeed(c.Location+c.Scale*(1-math.Pow(c.StormRate*returnPeriod, -c.Shape))/c.Shape, returnPeriod)
}

// StormCurve is the XIMIS line evaluated at the per-storm reduced variate.
type StormCurve struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	StormRate float64 `json:"storm_rate"`
}

// Speed returns u + a*ln(rate*R).
func (c StormCurve) Speed(returnPeriod float64) (float64, error) {
	if err := checkReturnPeriod(returnPeriod); err != nil {
		return 0, err
	}
	return finiteSpeed(c.Intercept+c.Slope*math.Log(c.StormRate*returnPeriod), returnPeriod)
}

// Tabulate evaluates the curve at each return period and attaches the design
// dynamic pressure.
func Tabulate(c Curve, periods []float64, consts Constants) ([]DesignSpeed, error) {
	rows := make([]DesignSpeed, 0, len(periods))
	for _, r := range periods {
		v, err := c.Speed(r)
		if err != nil {
			return nil, err
		}
		q := consts.DynamicPressure(v)
		if math.IsInf(q, 0) || math.IsNaN(q) {
			return nil, fmt.Errorf("speed %g gives non-finite pressure: %w", v, ErrReturnPeriod)
		}
		rows = append(rows, DesignSpeed{
			ReturnPeriod: r,
			Speed:        v,
			Pressure:     q,
		})
	}
	return rows, nil
}
