package pk

// ceLocalPeakAfter simulates C_p and, recursively, C_e forward over
// infusions and returns the time and value of the first local maximum of
// C_e, detected as the first unit step ending at or after afterTime over
// which C_e does not increase (§4.4.4 step 2, §4.4.5 step 2: "detected when
// delta C_e <= 0 after the bolus/plateau ends"); the returned time is the
// start of that step, so it can be afterTime-1. found is
// false if no decrease is observed before the simulation horizon, meaning
// the peak (if any) lies beyond the window searched.
func (s *DosingSolver) ceLocalPeakAfter(infusions []Infusion, afterTime float64) (peakTime, ceMax float64, found bool) {
	horizon := s.Pump.EndTime
	if horizon < afterTime+3600 {
		horizon = afterTime + 3600
	}
	cp := CpSeries(s.Coeffs, infusions, 0, horizon)
	ce := CeSeries(s.Coeffs.Ke0, cp)

	start := int(afterTime)
	if start < 1 {
		start = 1
	}
	for i := start; i < len(ce); i++ {
		if ce[i] <= ce[i-1] {
			return float64(i - 1), ce[i-1], true
		}
	}
	if len(ce) > 0 {
		return float64(len(ce) - 1), ce[len(ce)-1], false
	}
	return 0, 0, false
}

// findDescentBelow scans C_p forward at 1 s cadence from fromTime and
// returns the first time at or after which C_p <= target (§4.4.5 step 3).
func (s *DosingSolver) findDescentBelow(infusions []Infusion, fromTime, target float64) float64 {
	horizon := s.Pump.EndTime
	if horizon < fromTime+3600 {
		horizon = fromTime + 3600
	}
	for t := fromTime; t < horizon; t++ {
		if Cp(s.Coeffs, infusions, t) <= target {
			return t
		}
	}
	s.Warnings.record(NonConvergence, -1,
		"coast interval: plasma did not descend below target %.4f within horizon %.1fs", target, horizon)
	return horizon
}

const (
	effectSolveTol    = 1e-3 // concentration-unit tolerance for H(limit) and G(T_inf)
	effectSolveMaxIt  = 50
	limitSecantOffset = 0.3
	durationHonorTolS = 1.0 // 1 second tolerance for §4.4.7's time-to-target search
)

func withAppended(base []Infusion, extra ...Infusion) []Infusion {
	trial := make([]Infusion, 0, len(base)+len(extra))
	trial = append(trial, base...)
	trial = append(trial, extra...)
	return trial
}

// OriginalEffectTarget solves §4.4.4: finds the minimum plasma overshoot
// multiplier (cp_limit) such that a bolus raising plasma to
// target.Target*limit over [target.Start, target.Start+target.CpLimitDuration]
// produces an effect-site curve that just grazes target.Target. On
// convergence the solved limit would be persisted by the caller (the
// Scheduler) back onto the Target record, per §3.
func (s *DosingSolver) OriginalEffectTarget(existing []Infusion, target Target, targetIndex int) (bolus Infusion, solvedLimit, peakTime, ceMax float64) {
	durationB := target.CpLimitDuration
	startB := target.Start

	h := func(limit float64) float64 {
		trialBolus := s.PlasmaTargetDose(existing, startB, durationB, target.Target*limit, targetIndex)
		trial := withAppended(existing, trialBolus)
		_, peak, found := s.ceLocalPeakAfter(trial, trialBolus.End)
		if !found {
			// Effect curve never turned over within the horizon: report a
			// large positive residual to push the secant search toward a
			// larger overshoot.
			return target.Target
		}
		return target.Target - peak
	}

	limit0 := target.CpLimit
	limit1 := limit0 + limitSecantOffset
	solved, converged := solveSecant(h, limit0, limit1, effectSolveTol, effectSolveMaxIt)
	if !converged || solved <= 1.0 {
		s.Warnings.record(NonConvergence, targetIndex,
			"original effect-site targeting did not converge; retaining cp_limit=%.4f", target.CpLimit)
		solved = target.CpLimit
	}

	bolus = s.PlasmaTargetDose(existing, startB, durationB, target.Target*solved, targetIndex)
	trial := withAppended(existing, bolus)
	peakTime, ceMax, _ = s.ceLocalPeakAfter(trial, bolus.End)
	return bolus, solved, peakTime, ceMax
}

// RevisedEffectTarget solves §4.4.5: given a fixed plasma overshoot factor
// limit, finds the maintenance (plateau) duration T_inf, starting at
// startMI (the end of the bolus that raised plasma to target.Target*limit), that
// holds plasma at target.Target*limit such that letting it decay afterward
// causes the rising effect-site concentration to meet target.Target
// exactly. Returns the plateau infusion and the trailing zero-dose "coast"
// infusion down to the point plasma first descends below target.Target.
func (s *DosingSolver) RevisedEffectTarget(existing []Infusion, target Target, limit, startMI float64, targetIndex int) (plateau, coast Infusion, peakTime, ceMax float64) {
	durationB := target.CpLimitDuration

	g := func(tInf float64) float64 {
		if tInf < 0 {
			tInf = 0
		}
		dose := s.MaintenanceDose(existing, startMI, tInf, target.Target*limit, targetIndex)
		trialPlateau, _ := NewInfusion(startMI, dose, tInf)
		trial := withAppended(existing, trialPlateau)
		_, peak, found := s.ceLocalPeakAfter(trial, trialPlateau.End)
		if !found {
			return target.Target
		}
		return target.Target - peak
	}

	tInf, converged := solveSecant(g, 1, 2*durationB, effectSolveTol, effectSolveMaxIt)
	if tInf < 0 {
		tInf = 0
	}
	if !converged {
		s.Warnings.record(NonConvergence, targetIndex,
			"revised effect-site targeting did not converge; no Tinf plateau emitted")
		tInf = 0
	}

	dose := s.MaintenanceDose(existing, startMI, tInf, target.Target*limit, targetIndex)
	plateau, _ = NewInfusion(startMI, dose, tInf)

	trial := withAppended(existing, plateau)
	coastEnd := s.findDescentBelow(trial, plateau.End, target.Target)
	coastDuration := coastEnd - plateau.End
	if coastDuration < 0 {
		coastDuration = 0
	}
	coast, _ = NewInfusion(plateau.End, 0, coastDuration)

	peakTime, ceMax, _ = s.ceLocalPeakAfter(trial, plateau.End)
	return plateau, coast, peakTime, ceMax
}

// honorEffectDuration solves §4.4.7's effect-site clause: target.Duration is
// a lower bound on time-to-target. peakTimeFor reports the time-to-peak an
// effect-site solve would produce for a given cp_limit_duration ("durationB"),
// holding everything else about the target fixed. If the natural solve (at
// target's current CpLimitDuration) already peaks at or after
// target.Duration, duration is ignored and CpLimitDuration is returned
// unchanged. Otherwise CpLimitDuration is extended via secant search until
// peakTimeFor reports a peak at approximately target.Duration.
func (s *DosingSolver) honorEffectDuration(target Target, targetIndex int, peakTimeFor func(durationB float64) float64) float64 {
	if target.Duration <= 0 {
		return target.CpLimitDuration
	}
	if peakTimeFor(target.CpLimitDuration) >= target.Duration {
		return target.CpLimitDuration
	}

	h := func(durationB float64) float64 {
		if durationB <= 0 {
			durationB = 1
		}
		return target.Duration - peakTimeFor(durationB)
	}

	ceiling := durationExtensionCeiling(target.Duration, s.Pump.BolusTime)
	solved, converged := solveSecant(h, target.CpLimitDuration, target.CpLimitDuration+s.Pump.BolusTime,
		durationHonorTolS, effectSolveMaxIt)
	if !converged || solved <= 0 || solved > ceiling {
		s.Warnings.record(NonConvergence, targetIndex,
			"effect-site duration honoring did not converge; retaining cp_limit_duration=%.1fs", target.CpLimitDuration)
		return target.CpLimitDuration
	}
	return solved
}
