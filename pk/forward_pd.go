package pk

import "math"

// stepCe advances the effect-site recursion by one unit time step (§4.3):
// given ke0 (per second), the previous step's C_p and C_e, and the current
// step's C_p, returns the current step's C_e. Shared by CeSeries (batch,
// over a precomputed C_p array) and EffectSession (incremental, one step at
// a time without materialising the whole trajectory).
func stepCe(ke0, prevCp, prevCe, curCp float64) float64 {
	if ke0 <= 0 || prevCp == 0 {
		return 0
	}

	deltaCp := curCp - prevCp
	var delta float64
	if deltaCp > 0 {
		slope := deltaCp
		delta = (slope + (ke0*prevCp - slope)) * (1 - math.Exp(-ke0)) / ke0
	} else {
		slope := math.Log(curCp) - math.Log(prevCp)
		delta = prevCp * ke0 / (ke0 + slope) * (math.Exp(slope) - math.Exp(-ke0))
	}

	return prevCe*math.Exp(-ke0) + delta
}

// CeSeries recursively estimates effect-site concentration C_e(t_j) from a
// plasma trajectory cpSeries sampled at unit time step (1 s) starting at
// t=0 with C_e(0)=0 (§4.3). The returned series has the same length as
// cpSeries.
//
// ke0 is per second (Coefficients.Ke0). The formulas assume ke0 > 0; a
// model with ke0 == 0 never equilibrates and C_e is defined to be 0 at
// every sample, consistent with the semi-compartmental integration's limit
// as the equilibration rate constant vanishes.
func CeSeries(ke0 float64, cpSeries []float64) []float64 {
	ce := make([]float64, len(cpSeries))
	if len(cpSeries) == 0 {
		return ce
	}
	for j := 1; j < len(cpSeries); j++ {
		ce[j] = stepCe(ke0, cpSeries[j-1], ce[j-1], cpSeries[j])
	}
	return ce
}

// CeAt returns the effect-site concentration at the given sample index of
// a trajectory computed by simulating C_p over [0, end) at 1 s cadence and
// then running CeSeries, a convenience for callers that only need a single
// time point.
func CeAt(c *Coefficients, infusions []Infusion, t float64) float64 {
	if t <= 0 {
		return 0
	}
	cp := CpSeries(c, infusions, 0, t+1)
	ce := CeSeries(c.Ke0, cp)
	idx := len(ce) - 1
	if idx < 0 {
		return 0
	}
	return ce[idx]
}
