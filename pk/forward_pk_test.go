package pk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustCoefficients(t *testing.T, model DrugModel) *Coefficients {
	t.Helper()
	coeffs, err := NewCoefficients(model)
	if err != nil {
		t.Fatalf("unexpected error building coefficients: %v", err)
	}
	return coeffs
}

func TestCp_ZeroAtOrigin_NoInfusions(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	assert.Equal(t, 0.0, Cp(coeffs, nil, 0))
}

func TestCp_ZeroBeforeInfusionStarts(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	inf := Infusion{Start: 100, DosePerSec: 5, Duration: 10, End: 110}
	assert.Equal(t, 0.0, Cp(coeffs, []Infusion{inf}, 50))
}

func TestCp_NonNegative_ForNonNegativeDoses(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	infusions := []Infusion{
		{Start: 0, DosePerSec: 5, Duration: 10, End: 10},
		{Start: 20, DosePerSec: 2, Duration: 300, End: 320},
	}
	for tt := 0.0; tt <= 1000; tt += 17 {
		c := Cp(coeffs, infusions, tt)
		if c < 0 {
			t.Fatalf("Cp(%v) = %v, want >= 0", tt, c)
		}
	}
}

// TestCp_Superposition verifies §8's superposition invariant: C_p from the
// union of two disjoint infusion lists equals the sum of C_p from each.
func TestCp_Superposition(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	a := Infusion{Start: 0, DosePerSec: 3, Duration: 10, End: 10}
	b := Infusion{Start: 200, DosePerSec: 1, Duration: 300, End: 500}

	for tt := 0.0; tt <= 1000; tt += 23 {
		union := Cp(coeffs, []Infusion{a, b}, tt)
		sum := Cp(coeffs, []Infusion{a}, tt) + Cp(coeffs, []Infusion{b}, tt)
		assert.InDelta(t, sum, union, 1e-9)
	}
}

// TestCp_DecrementMonotonicity verifies §8: C_p is strictly decreasing once
// the last infusion has ended.
func TestCp_DecrementMonotonicity(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	infusions := []Infusion{{Start: 0, DosePerSec: 10, Duration: 30, End: 30}}

	prev := Cp(coeffs, infusions, 30)
	for tt := 31.0; tt <= 3600; tt += 5 {
		cur := Cp(coeffs, infusions, tt)
		if cur >= prev {
			t.Fatalf("Cp not strictly decreasing at t=%v: prev=%v cur=%v", tt, prev, cur)
		}
		prev = cur
	}
}

func TestCpSeries_LengthAndCadence(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	infusions := []Infusion{{Start: 0, DosePerSec: 5, Duration: 10, End: 10}}
	series := CpSeries(coeffs, infusions, 0, 100)
	assert.Len(t, series, 100)
	assert.Equal(t, 0.0, series[0])
}

func TestIntegralBolusKernel_MatchesScenario1Dose(t *testing.T) {
	// Scenario 1 (spec.md): a single 10s infusion drives C_p(10) to ~4.
	coeffs := mustCoefficients(t, scenarioOneModel())
	targetCp := 4.0
	integral := integralBolusKernel(coeffs, 0, 10)
	dose := targetCp / integral

	inf := Infusion{Start: 0, DosePerSec: dose, Duration: 10, End: 10}
	got := Cp(coeffs, []Infusion{inf}, 10)
	assert.InDelta(t, targetCp, got, 0.01)
}

func TestInfusionContribution_MatchesMaintenanceYield(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	inf := Infusion{Start: 0, DosePerSec: 2, Duration: 60, End: 60}
	got := infusionContribution(coeffs, inf, 60)
	want := inf.DosePerSec * maintenanceInfusionYield(coeffs, inf.Duration)
	assert.InDelta(t, want, got, 1e-9)
}
