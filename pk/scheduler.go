package pk

// Trajectory is a precomputed plasma/effect-site concentration pair,
// sampled at unit-second cadence starting at t=0 (§4.5 step 4, "run()").
type Trajectory struct {
	Cp []float64
	Ce []float64
}

// Scheduler drives §4.5's top-level algorithm: it walks an ordered list of
// targets, solving each against the infusions already scheduled for the
// ones before it, and produces the full infusion list and (via Run) the
// resulting concentration trajectory.
type Scheduler struct {
	Coeffs   *Coefficients
	Pump     PumpConfig
	Solver   *DosingSolver
	Warnings *WarningSink

	Infusions *InfusionList
	Targets   *TargetList

	userInfusions []Infusion
}

// NewScheduler builds a Scheduler over a fixed coefficient set, pump
// configuration, and ordered targets, optionally seeded with user-defined
// infusions that are kept verbatim ahead of any generated ones (§4.5
// step 1).
func NewScheduler(coeffs *Coefficients, pump PumpConfig, targets *TargetList, userInfusions ...Infusion) *Scheduler {
	warnings := NewWarningSink()
	kept := make([]Infusion, len(userInfusions))
	copy(kept, userInfusions)
	return &Scheduler{
		Coeffs:        coeffs,
		Pump:          pump,
		Solver:        NewDosingSolver(coeffs, pump, warnings),
		Warnings:      warnings,
		Targets:       targets,
		userInfusions: kept,
	}
}

// overlapWindow returns the interval a target occupies for overlap-checking
// purposes: its own window, extended to cover the longer of its plasma
// duration or cp_limit_duration (§9: "a target's window for overlap
// purposes ... the longer of duration or cp_limit_duration").
func overlapWindow(t Target) (start, end float64) {
	span := t.Duration
	if t.CpLimitDuration > span {
		span = t.CpLimitDuration
	}
	return t.Start, t.Start + span
}

// checkOverlaps warns (does not abort or re-solve) when a user-defined
// infusion's window intersects a target's window, per §9's open question:
// "a port should preserve that behavior and surface the warning but should
// not silently re-solve."
func (sch *Scheduler) checkOverlaps() {
	for i, target := range sch.Targets.Items() {
		tStart, tEnd := overlapWindow(target)
		for _, inf := range sch.userInfusions {
			if inf.Start < tEnd && inf.End > tStart {
				sch.Warnings.record(OverlapWarning, i,
					"user-defined infusion [%.1f, %.1f) overlaps target window [%.1f, %.1f)",
					inf.Start, inf.End, tStart, tEnd)
			}
		}
	}
}

// effectLimitIsUnset reports whether a target's cp_limit is still the
// add_target() default, meaning the caller left the overshoot multiplier
// for the scheduler to solve via §4.4.4 rather than supplying an explicit
// override (§4.5 step 3(c)).
func effectLimitIsUnset(t Target) bool {
	return t.CpLimit == DefaultCpLimit
}

// GenerateInfusions runs §4.5's scheduling algorithm over Targets and
// returns the resulting InfusionList. It resets any infusions and warnings
// from a previous call first, so repeated calls on the same Scheduler are
// idempotent (§8: "calling generate_infusions() twice on the same inputs
// yields identical infusion lists").
func (sch *Scheduler) GenerateInfusions() *InfusionList {
	sch.Infusions = NewInfusionList(sch.userInfusions...)
	sch.Warnings = NewWarningSink()
	sch.Solver.Warnings = sch.Warnings

	sch.checkOverlaps()

	targets := sch.Targets.Items()
	for i, target := range targets {
		switch target.Effect {
		case PlasmaTarget:
			sch.schedulePlasmaTarget(i, target, targets)
		case EffectSiteTarget:
			sch.scheduleEffectTarget(i, target, targets)
		}
	}
	return sch.Infusions
}

func (sch *Scheduler) schedulePlasmaTarget(i int, target Target, targets []Target) {
	bolus := sch.Solver.PlasmaTargetDose(sch.Infusions.Items(), target.Start, target.Duration, target.Target, i)
	sch.Infusions.Append(bolus)
	if target.MaintenanceInfusions {
		sch.extendMaintenance(i, target, bolus.End, targets)
	}
}

func (sch *Scheduler) scheduleEffectTarget(i int, target Target, targets []Target) {
	if target.CeBolusOnly {
		sch.scheduleBolusOnlyEffectTarget(i, target, targets)
		return
	}

	limit := target.CpLimit
	if effectLimitIsUnset(target) {
		_, solvedLimit, _, _ := sch.Solver.OriginalEffectTarget(sch.Infusions.Items(), target, i)
		limit = solvedLimit
		target.CpLimit = solvedLimit
	}

	// §4.4.7: honor target.Duration as a lower bound on time-to-target by
	// extending cp_limit_duration until the bolus+plateau peak lands at
	// approximately the requested time, if the natural solve peaks earlier.
	target.CpLimitDuration = sch.Solver.honorEffectDuration(target, i, func(durationB float64) float64 {
		trial := target
		trial.CpLimitDuration = durationB
		bolus := sch.Solver.PlasmaTargetDose(sch.Infusions.Items(), trial.Start, durationB, trial.Target*limit, i)
		withBolus := withAppended(sch.Infusions.Items(), bolus)
		_, _, peakTime, _ := sch.Solver.RevisedEffectTarget(withBolus, trial, limit, bolus.End, i)
		return peakTime
	})
	sch.Targets.Set(i, target)

	bolus := sch.Solver.PlasmaTargetDose(sch.Infusions.Items(), target.Start, target.CpLimitDuration,
		target.Target*limit, i)
	sch.Infusions.Append(bolus)

	last := sch.Infusions.Items()[sch.Infusions.Len()-1]
	plateau, coast, _, _ := sch.Solver.RevisedEffectTarget(sch.Infusions.Items(), target, limit, last.End, i)
	sch.Infusions.Append(plateau)
	sch.Infusions.Append(coast)

	if target.MaintenanceInfusions {
		sch.extendMaintenance(i, target, coast.End, targets)
	}
}

// scheduleBolusOnlyEffectTarget handles a ce_bolus_only effect target: only
// §4.4.4's original method runs (no plateau/coast), and its own peak time
// is what §4.4.7's duration-honoring clause extends cp_limit_duration
// against.
func (sch *Scheduler) scheduleBolusOnlyEffectTarget(i int, target Target, targets []Target) {
	target.CpLimitDuration = sch.Solver.honorEffectDuration(target, i, func(durationB float64) float64 {
		trial := target
		trial.CpLimitDuration = durationB
		_, _, peakTime, _ := sch.Solver.OriginalEffectTarget(sch.Infusions.Items(), trial, i)
		return peakTime
	})

	bolus, solvedLimit, _, _ := sch.Solver.OriginalEffectTarget(sch.Infusions.Items(), target, i)
	sch.Infusions.Append(bolus)
	target.CpLimit = solvedLimit
	sch.Targets.Set(i, target)

	if target.MaintenanceInfusions {
		sch.extendMaintenance(i, target, bolus.End, targets)
	}
}

// extendMaintenance computes the maintenance window's end (the next
// target's start, or Pump.EndTime for the last target) and extends the
// schedule via §4.4.3.
func (sch *Scheduler) extendMaintenance(i int, target Target, reachedAt float64, targets []Target) {
	windowEnd := sch.Pump.EndTime
	if i+1 < len(targets) {
		windowEnd = targets[i+1].Start
	}
	sch.Solver.MaintenanceSchedule(sch.Infusions, reachedAt, windowEnd, target.Target,
		sch.Pump.MaintenanceInfusionDuration, sch.Pump.MaintenanceInfusionMultiplier, i)
}

// Run generates the infusion schedule and evaluates the resulting C_p/C_e
// trajectory over [0, Pump.EndTime) at unit-second cadence (§4.5 step 4).
func (sch *Scheduler) Run() (*InfusionList, Trajectory) {
	infusions := sch.GenerateInfusions()
	cp := CpSeries(sch.Coeffs, infusions.Sorted(), 0, sch.Pump.EndTime)
	ce := CeSeries(sch.Coeffs.Ke0, cp)
	return infusions, Trajectory{Cp: cp, Ce: ce}
}
