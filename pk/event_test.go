package pk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectSession_MatchesBatchSeries(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	infusions := []Infusion{{Start: 0, DosePerSec: 10, Duration: 30, End: 30}}

	cp := CpSeries(coeffs, infusions, 0, 200)
	ce := CeSeries(coeffs.Ke0, cp)

	session := NewEffectSession(coeffs, infusions)
	for i := 1; i < len(cp); i++ {
		tt, gotCp, gotCe := session.Step()
		assert.Equal(t, float64(i), tt)
		assert.InDelta(t, cp[i], gotCp, 1e-9)
		assert.InDelta(t, ce[i], gotCe, 1e-9)
	}
}

func TestEffectSession_SeekTo(t *testing.T) {
	coeffs := mustCoefficients(t, scenarioOneModel())
	infusions := []Infusion{{Start: 0, DosePerSec: 10, Duration: 30, End: 30}}
	session := NewEffectSession(coeffs, infusions)
	session.SeekTo(50)
	assert.Equal(t, 50.0, session.Clock())
}
