package pk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCeSeries_ZeroAtOrigin(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	cp := CpSeries(coeffs, []Infusion{{Start: 0, DosePerSec: 5, Duration: 10, End: 10}}, 0, 100)
	ce := CeSeries(coeffs.Ke0, cp)
	assert.Equal(t, 0.0, ce[0])
}

func TestCeSeries_ZeroWhenCpZero(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	cp := []float64{0, 0, 0, 0}
	ce := CeSeries(coeffs.Ke0, cp)
	for i, v := range ce {
		assert.Equalf(t, 0.0, v, "ce[%d]", i)
	}
}

func TestCeSeries_NonNegative(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	infusions := []Infusion{{Start: 0, DosePerSec: 10, Duration: 30, End: 30}}
	cp := CpSeries(coeffs, infusions, 0, 3600)
	ce := CeSeries(coeffs.Ke0, cp)
	for i, v := range ce {
		if v < 0 {
			t.Fatalf("ce[%d] = %v, want >= 0", i, v)
		}
	}
}

// TestCeSeries_Unimodal verifies §8: after the last infusion ends, C_e
// rises to a single peak then decreases monotonically (never rises again).
func TestCeSeries_Unimodal(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	infusions := []Infusion{{Start: 0, DosePerSec: 10, Duration: 30, End: 30}}
	cp := CpSeries(coeffs, infusions, 0, 7200)
	ce := CeSeries(coeffs.Ke0, cp)

	rising := true
	sawPeak := false
	for i := 1; i < len(ce); i++ {
		if rising {
			if ce[i] < ce[i-1] {
				rising = false
				sawPeak = true
			}
			continue
		}
		if ce[i] > ce[i-1]+1e-9 {
			t.Fatalf("ce rose again after the peak at index %d: ce[%d]=%v ce[%d]=%v", i, i-1, ce[i-1], i, ce[i])
		}
	}
	assert.True(t, sawPeak, "expected ce to reach a local maximum within the sampled window")
}

func TestCeAt_ZeroAtOrTimeZero(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	infusions := []Infusion{{Start: 0, DosePerSec: 10, Duration: 30, End: 30}}
	assert.Equal(t, 0.0, CeAt(coeffs, infusions, 0))
}

func TestCeSeries_ZeroKe0NeverEquilibrates(t *testing.T) {
	cp := []float64{0, 1, 2, 3}
	ce := CeSeries(0, cp)
	for i, v := range ce {
		assert.Equalf(t, 0.0, v, "ce[%d]", i)
	}
}
