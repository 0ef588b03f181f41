package pk

// zeroTargetFloor is substituted for a decrement query target of 0 to
// avoid infinite decay time (§4.6).
const zeroTargetFloor = 0.1

// decrementSafetyCeiling bounds the cursor-advance loop so a pathological
// query (e.g. an unreachable target) raises a result instead of looping
// forever; in practice exponential decay toward 0 always crosses a
// positive target well before this is reached.
const decrementSafetyCeiling = 1e7

// truncateInfusionsAt returns a copy of infusions with dosing stopped at
// tq: any infusion crossing tq has its end set to tq, and any infusion
// starting at or after tq is dropped entirely (§4.6).
func truncateInfusionsAt(infusions []Infusion, tq float64) []Infusion {
	out := make([]Infusion, 0, len(infusions))
	for _, inf := range infusions {
		if inf.Start >= tq {
			continue
		}
		if inf.End > tq {
			inf.End = tq
			inf.Duration = tq - inf.Start
		}
		out = append(out, inf)
	}
	return out
}

// PlasmaDecrementTime answers §4.6's plasma decrement query: given a query
// time tq and a decrement target, truncates the infusion list at tq, then
// advances a cursor from tq until C_p falls to or below target. Returns
// the elapsed time (t - tq). A target <= 0 is treated as 0.1.
func PlasmaDecrementTime(coeffs *Coefficients, infusions []Infusion, tq, target float64) float64 {
	if target <= 0 {
		target = zeroTargetFloor
	}
	truncated := truncateInfusionsAt(infusions, tq)

	for t := tq; t < tq+decrementSafetyCeiling; t++ {
		if Cp(coeffs, truncated, t) <= target {
			return t - tq
		}
	}
	return decrementSafetyCeiling
}

// EffectDecrementTime answers §4.6's effect-site decrement query: as
// PlasmaDecrementTime, but simulates C_p and C_e from t=0 (since C_e
// depends on the full plasma history) and returns the elapsed time from tq
// to the first t > tq at which C_e falls to or below target. A target <= 0
// is treated as 0.1.
func EffectDecrementTime(coeffs *Coefficients, infusions []Infusion, tq, target float64) float64 {
	if target <= 0 {
		target = zeroTargetFloor
	}
	truncated := truncateInfusionsAt(infusions, tq)

	session := NewEffectSession(coeffs, truncated)
	session.SeekTo(tq)

	for session.Clock() < tq+decrementSafetyCeiling {
		t, _, ce := session.Step()
		if t > tq && ce <= target {
			return t - tq
		}
	}
	return decrementSafetyCeiling
}
