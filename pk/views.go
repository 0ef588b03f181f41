package pk

// RatesMlPerHour returns, for each infusion in order, the pump delivery
// rate in mL/hour implied by its dose/sec and the drug concentration
// (mg/mL) — a pure presentation view over a schedule that the core solver
// and scheduler never need (§6's secondary helpers).
func RatesMlPerHour(infusions []Infusion, drugConcentration float64) []float64 {
	rates := make([]float64, len(infusions))
	pump := PumpConfig{DrugConcentration: drugConcentration}
	for i, inf := range infusions {
		rates[i] = pump.rateMlPerHour(inf.DosePerSec)
	}
	return rates
}

// DoseWeightStep pairs a dosing step's start time with a cumulative dose
// (through the end of the step in DoseWeightSteps, as of Start in
// DoseWeightTimeSteps), the shape a pump display or an audit log wants
// rather than the per-second dose rate the solver works in.
type DoseWeightStep struct {
	Start           float64
	CumulativeDose  float64
	DosePerSec      float64
	DurationSeconds float64
}

// DoseWeightSteps reduces an infusion list to its cumulative-dose view:
// each infusion becomes one step, and CumulativeDose is the running total
// of dose (dose/sec * duration) delivered by the end of that step.
func DoseWeightSteps(infusions []Infusion) []DoseWeightStep {
	steps := make([]DoseWeightStep, len(infusions))
	var running float64
	for i, inf := range infusions {
		running += inf.DosePerSec * inf.Duration
		steps[i] = DoseWeightStep{
			Start:           inf.Start,
			CumulativeDose:  running,
			DosePerSec:      inf.DosePerSec,
			DurationSeconds: inf.Duration,
		}
	}
	return steps
}

// DoseWeightTimeSteps is DoseWeightSteps resampled onto a fixed time grid
// at the given cadence (seconds), the cumulative dose delivered as of each
// grid point rather than at each infusion's own start.
func DoseWeightTimeSteps(infusions []Infusion, end, cadence float64) []DoseWeightStep {
	if cadence <= 0 || end <= 0 {
		return nil
	}
	sorted := make([]Infusion, len(infusions))
	copy(sorted, infusions)

	n := int(end/cadence) + 1
	steps := make([]DoseWeightStep, n)
	for i := 0; i < n; i++ {
		t := float64(i) * cadence
		var cumulative float64
		for _, inf := range sorted {
			if t <= inf.Start {
				continue
			}
			elapsed := t - inf.Start
			if elapsed > inf.Duration {
				elapsed = inf.Duration
			}
			cumulative += inf.DosePerSec * elapsed
		}
		steps[i] = DoseWeightStep{Start: t, CumulativeDose: cumulative}
	}
	return steps
}
