package pk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scenarioOneModel is the three-compartment model from spec.md Scenario 1:
// v1=0.228*70, v2=0.463*70, v3=2.893*70, k10=0.119, k12=0.112, k13=0.0419,
// k21=0.055, k31=0.0033, k_e0=0.26 (all rate constants per minute).
func scenarioOneModel() DrugModel {
	weight := 70.0
	return DrugModel{
		Compartments: ThreeCompartment,
		V1:           0.228 * weight,
		K10:          0.119,
		K12:          0.112,
		K21:          0.055,
		K13:          0.0419,
		K31:          0.0033,
		Ke0:          0.26,
	}
}

func TestNewCoefficients_ThreeCompartment_OrderingAndNormalisation(t *testing.T) {
	coeffs, err := NewCoefficients(scenarioOneModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.GreaterOrEqual(t, coeffs.Alpha, coeffs.Beta)
	assert.GreaterOrEqual(t, coeffs.Beta, coeffs.Gamma)
	assert.GreaterOrEqual(t, coeffs.Gamma, 0.0)

	sum := coeffs.A + coeffs.B + coeffs.C
	assert.InDelta(t, 1/coeffs.V1, sum, 1e-9)
}

func TestNewCoefficients_ThreeCompartment_InvalidV1(t *testing.T) {
	model := scenarioOneModel()
	model.V1 = 0
	_, err := NewCoefficients(model)
	if err == nil {
		t.Fatal("expected error for v1 <= 0")
	}
	var invalidModel *InvalidModelError
	if _, ok := err.(*InvalidModelError); !ok {
		t.Fatalf("expected *InvalidModelError, got %T (%v)", err, invalidModel)
	}
}

func TestNewCoefficients_InvalidCompartments(t *testing.T) {
	model := scenarioOneModel()
	model.Compartments = 4
	_, err := NewCoefficients(model)
	if _, ok := err.(*InvalidModelError); !ok {
		t.Fatalf("expected *InvalidModelError for bad compartment count, got %v", err)
	}
}

func TestNewCoefficients_TwoCompartment(t *testing.T) {
	model := DrugModel{
		Compartments: TwoCompartment,
		V1:           16.0,
		K10:          0.119,
		K12:          0.112,
		K21:          0.055,
		Ke0:          0.26,
	}
	coeffs, err := NewCoefficients(model)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.Equal(t, 0.0, coeffs.C)
	assert.Equal(t, 1.0, coeffs.Gamma, "gamma is an unused sentinel for two-compartment models")
	assert.Greater(t, coeffs.Alpha, coeffs.Beta)

	sum := coeffs.A + coeffs.B + coeffs.C
	assert.InDelta(t, 1/coeffs.V1, sum, 1e-9)
}

func TestNewCoefficients_TwoCompartment_WithK20(t *testing.T) {
	model := DrugModel{
		Compartments: TwoCompartment,
		V1:           16.0,
		K10:          0.119,
		K12:          0.112,
		K21:          0.055,
		K20:          0.02,
		Ke0:          0.26,
	}
	coeffs, err := NewCoefficients(model)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Greater(t, coeffs.Alpha, 0.0)
	assert.Greater(t, coeffs.Beta, 0.0)
}

func TestNewCoefficients_OneCompartment(t *testing.T) {
	model := DrugModel{
		Compartments: OneCompartment,
		V1:           16.0,
		K10:          0.119,
		Ke0:          0.26,
	}
	coeffs, err := NewCoefficients(model)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.Equal(t, 0.0, coeffs.B)
	assert.Equal(t, 0.0, coeffs.C)
	assert.InDelta(t, model.K10*perMinuteToPerSecond, coeffs.Alpha, 1e-12)
	assert.InDelta(t, 1/model.V1, coeffs.A, 1e-12)
	assert.Equal(t, 1.0, coeffs.Beta)
	assert.Equal(t, 1.0, coeffs.Gamma)
}

func TestNewCoefficients_RatesConvertedToPerSecond(t *testing.T) {
	coeffs, err := NewCoefficients(scenarioOneModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// alpha, in particular, must be on the order of per-second rate constants,
	// i.e. roughly 60x smaller than the per-minute inputs would suggest.
	if math.IsNaN(coeffs.Alpha) || coeffs.Alpha <= 0 || coeffs.Alpha > 1 {
		t.Fatalf("alpha %v is not a plausible per-second rate constant", coeffs.Alpha)
	}
}
