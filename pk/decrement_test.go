package pk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPlasmaDecrementTime_Scenario5 matches spec.md Scenario 5:
// plasma_decrement_time(300, 1) on Scenario 1's model and a seed bolus
// reaching C_p(10)~4, with end_time=3600.
func TestPlasmaDecrementTime_Scenario5(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	pump := scenarioOnePump()
	solver := NewDosingSolver(coeffs, pump, NewWarningSink())

	bolus := solver.PlasmaTargetDose(nil, 0, 10, 4.0, 0)
	infusions := []Infusion{bolus}

	delta := PlasmaDecrementTime(coeffs, infusions, 300, 1)

	truncated := truncateInfusionsAt(infusions, 300)
	cAtReturn := Cp(coeffs, truncated, 300+delta)
	cOneBefore := Cp(coeffs, truncated, 300+delta-1)

	assert.LessOrEqual(t, cAtReturn, 1.0)
	assert.Greater(t, cOneBefore, 1.0)
}

func TestPlasmaDecrementTime_RoundTripInvariant(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	infusions := []Infusion{{Start: 0, DosePerSec: 5, Duration: 60, End: 60}}

	delta := PlasmaDecrementTime(coeffs, infusions, 30, 0.5)
	truncated := truncateInfusionsAt(infusions, 30)

	assert.LessOrEqual(t, Cp(coeffs, truncated, 30+delta), 0.5)
	if delta > 0 {
		assert.Greater(t, Cp(coeffs, truncated, 30+delta-1), 0.5)
	}
}

func TestTruncateInfusionsAt_DropsFutureKeepsPastCutsCrossing(t *testing.T) {
	infusions := []Infusion{
		{Start: 0, DosePerSec: 1, Duration: 10, End: 10},
		{Start: 5, DosePerSec: 1, Duration: 20, End: 25},
		{Start: 40, DosePerSec: 1, Duration: 10, End: 50},
	}
	got := truncateInfusionsAt(infusions, 20)
	if len(got) != 2 {
		t.Fatalf("expected 2 infusions to survive truncation, got %d", len(got))
	}
	assert.Equal(t, 10.0, got[0].End)
	assert.Equal(t, 20.0, got[1].End)
	assert.Equal(t, 15.0, got[1].Duration)
}

func TestEffectDecrementTime_DecaysBelowTarget(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	infusions := []Infusion{{Start: 0, DosePerSec: 10, Duration: 30, End: 30}}

	delta := EffectDecrementTime(coeffs, infusions, 60, 0.2)
	assert.Greater(t, delta, 0.0)
}

func TestEffectDecrementTime_ZeroTargetUsesFloor(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	infusions := []Infusion{{Start: 0, DosePerSec: 10, Duration: 30, End: 30}}

	withZero := EffectDecrementTime(coeffs, infusions, 60, 0)
	withFloor := EffectDecrementTime(coeffs, infusions, 60, zeroTargetFloor)
	assert.Equal(t, withFloor, withZero)
}
