package pk

import "math"

// BolusKernel evaluates the analytic instantaneous-bolus response
// f(t) = A*e^(-alpha*t) + B*e^(-beta*t) + C*e^(-gamma*t) (§4.2).
func BolusKernel(c *Coefficients, t float64) float64 {
	return c.A*math.Exp(-c.Alpha*t) + c.B*math.Exp(-c.Beta*t) + c.C*math.Exp(-c.Gamma*t)
}

// infusionContribution returns a single infusion's contribution to C_p(t)
// (§4.2). Returns 0 for t before the infusion starts.
func infusionContribution(c *Coefficients, inf Infusion, t float64) float64 {
	if t < inf.Start {
		return 0
	}

	term := func(coef, rate float64) float64 {
		if rate == 0 {
			return 0
		}
		return coef / rate
	}

	if t <= inf.End {
		elapsed := t - inf.Start
		return inf.DosePerSec * (term(c.A, c.Alpha)*(1-math.Exp(-c.Alpha*elapsed)) +
			term(c.B, c.Beta)*(1-math.Exp(-c.Beta*elapsed)) +
			term(c.C, c.Gamma)*(1-math.Exp(-c.Gamma*elapsed)))
	}

	diff := t - inf.End
	return inf.DosePerSec * (term(c.A, c.Alpha)*(1-math.Exp(-c.Alpha*inf.Duration))*math.Exp(-c.Alpha*diff) +
		term(c.B, c.Beta)*(1-math.Exp(-c.Beta*inf.Duration))*math.Exp(-c.Beta*diff) +
		term(c.C, c.Gamma)*(1-math.Exp(-c.Gamma*inf.Duration))*math.Exp(-c.Gamma*diff))
}

// Cp evaluates total plasma concentration C_p(t) as the superposition of
// every infusion's contribution (§4.2).
func Cp(c *Coefficients, infusions []Infusion, t float64) float64 {
	var total float64
	for _, inf := range infusions {
		total += infusionContribution(c, inf, t)
	}
	return total
}

// CpSeries evaluates C_p at unit-second cadence over [start, end), in
// ascending time order (§4.2, "Interval evaluation"). end must be >= start.
func CpSeries(c *Coefficients, infusions []Infusion, start, end float64) []float64 {
	n := int(math.Ceil(end - start))
	if n < 0 {
		n = 0
	}
	series := make([]float64, n)
	for i := 0; i < n; i++ {
		series[i] = Cp(c, infusions, start+float64(i))
	}
	return series
}

// integralBolusKernel returns the closed-form integral of the bolus kernel
// over [xMin, xMax] (§4.2), used by the plasma-target dosing solver to turn
// a concentration delta into a dose.
func integralBolusKernel(c *Coefficients, xMin, xMax float64) float64 {
	term := func(coef, rate float64) float64 {
		if rate == 0 {
			return 0
		}
		return (coef / rate) * (math.Exp(-rate*xMin) - math.Exp(-rate*xMax))
	}
	return term(c.A, c.Alpha) + term(c.B, c.Beta) + term(c.C, c.Gamma)
}

// maintenanceInfusionYield returns (A/alpha)(1-e^(-alpha*T)) + analogous
// beta, gamma terms — the per-unit-dose plasma contribution of a
// maintenance infusion of duration T held to its end (§4.4.2). This is the
// same factor used in the decrement phase of infusionContribution; §4.3
// notes it may be memoised to avoid recomputation.
func maintenanceInfusionYield(c *Coefficients, duration float64) float64 {
	term := func(coef, rate float64) float64 {
		if rate == 0 {
			return 0
		}
		return (coef / rate) * (1 - math.Exp(-rate*duration))
	}
	return term(c.A, c.Alpha) + term(c.B, c.Beta) + term(c.C, c.Gamma)
}
