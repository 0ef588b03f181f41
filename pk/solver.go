package pk

// DosingSolver implements the inverse dosing problems of §4.4: finding the
// infusion that reaches a plasma target, the maintenance dose/schedule that
// holds one, and the original/revised numerical procedures that drive
// effect-site targeting.
type DosingSolver struct {
	Coeffs   *Coefficients
	Pump     PumpConfig
	Warnings *WarningSink
}

// NewDosingSolver builds a DosingSolver over a fixed coefficient set and
// pump configuration, recording non-fatal diagnostics to warnings.
func NewDosingSolver(coeffs *Coefficients, pump PumpConfig, warnings *WarningSink) *DosingSolver {
	return &DosingSolver{Coeffs: coeffs, Pump: pump, Warnings: warnings}
}

// durationExtensionCeiling bounds the monotone duration-extension loop of
// §4.4.1 so that a rate cap that can never be satisfied raises
// NonConvergence instead of looping forever (§9's open question: "a port
// should converge by monotone duration extension but must decide a hard
// ceiling ... beyond which NonConvergence is raised").
func durationExtensionCeiling(requestedDuration, bolusTime float64) float64 {
	ceiling := 10 * requestedDuration
	if ceiling <= bolusTime {
		ceiling = 10 * bolusTime
	}
	return ceiling
}

// PlasmaTargetDose solves §4.4.1: the infusion starting at t, with
// requested duration tInf, that raises plasma concentration to cTarget by
// its end, given infusions already scheduled. targetIndex is used only to
// tag warnings. If the projected concentration at t+tInf already meets or
// exceeds cTarget, a zero-dose infusion is returned (step 2).
func (s *DosingSolver) PlasmaTargetDose(infusions []Infusion, t, tInf, cTarget float64, targetIndex int) Infusion {
	projected := Cp(s.Coeffs, infusions, t+tInf)
	deltaCp := cTarget - projected
	if deltaCp <= 0 {
		inf, _ := NewInfusion(t, 0, tInf)
		return inf
	}

	duration := tInf
	ceiling := durationExtensionCeiling(tInf, s.Pump.BolusTime)
	var dose float64
	extended := false

	for {
		integral := integralBolusKernel(s.Coeffs, 0, duration)
		dose = deltaCp / integral

		if duration <= s.Pump.BolusTime || !s.Pump.rateCapEnabled() {
			break
		}
		if s.Pump.rateMlPerHour(dose) <= s.Pump.MaxInfusionRate {
			break
		}
		if duration >= ceiling {
			s.Warnings.record(NonConvergence, targetIndex,
				"plasma target dose: rate cap unsatisfied after extending duration to ceiling %.1fs", ceiling)
			break
		}
		duration++
		extended = true
	}

	if extended {
		s.Warnings.record(RateCapHit, targetIndex,
			"plasma target dose: duration extended from %.1fs to %.1fs to respect max_infusion_rate", tInf, duration)
	}

	inf, _ := NewInfusion(t, dose, duration)
	return inf
}

// MaintenanceDose solves §4.4.2: the dose/sec that maintains cTarget over
// [t, t+tInf] given infusions already scheduled. Returns 0 if the target is
// already met or tInf is 0. The result is clamped (never duration-extended)
// if it would exceed max_infusion_rate.
func (s *DosingSolver) MaintenanceDose(infusions []Infusion, t, tInf, cTarget float64, targetIndex int) float64 {
	if tInf == 0 {
		return 0
	}
	deltaCp := cTarget - Cp(s.Coeffs, infusions, t+tInf)
	if deltaCp <= 0 {
		return 0
	}

	dose := deltaCp / maintenanceInfusionYield(s.Coeffs, tInf)

	if s.Pump.rateCapEnabled() && s.Pump.rateMlPerHour(dose) > s.Pump.MaxInfusionRate {
		clamped := s.Pump.MaxInfusionRate * s.Pump.DrugConcentration / 3600
		s.Warnings.record(RateCapHit, targetIndex,
			"maintenance dose clamped from %.6f to %.6f per second to respect max_infusion_rate", dose, clamped)
		dose = clamped
	}
	return dose
}

// MaintenanceSchedule solves §4.4.3: starting at tStart (the time the
// preceding target was reached), appends maintenance infusions of
// exponentially growing duration (initialDuration, then *multiplier each
// round) to infusions until tEnd (the next target's start, or end_time for
// the last target), truncating the final infusion to end exactly at tEnd.
func (s *DosingSolver) MaintenanceSchedule(infusions *InfusionList, tStart, tEnd, cTarget, initialDuration, multiplier float64, targetIndex int) {
	if tEnd <= tStart || initialDuration <= 0 {
		return
	}

	t := tStart
	duration := initialDuration
	for t < tEnd {
		d := duration
		if t+d > tEnd {
			d = tEnd - t
		}
		dose := s.MaintenanceDose(infusions.Items(), t, d, cTarget, targetIndex)
		inf, _ := NewInfusion(t, dose, d)
		infusions.Append(inf)

		t += d
		duration *= multiplier
	}
}
