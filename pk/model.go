package pk

import "math"

// Compartments is the number of pharmacokinetic compartments in a drug
// model's geometry.
type Compartments int

const (
	OneCompartment   Compartments = 1
	TwoCompartment   Compartments = 2
	ThreeCompartment Compartments = 3
)

// DrugModel is the external drug-model contract (§6): every field the core
// needs from the opaque patient/drug record the caller owns. Rate constants
// arrive in per-minute units, as published in drug-parameter tables, and are
// converted to per-second internally (§3). For Compartments == TwoCompartment,
// K13 and K31 are ignored; for Compartments == OneCompartment, only V1 and
// K10 are used. K20 is optional (zero value means no peripheral elimination).
// ConcentrationUnit and TargetUnit are opaque pass-through strings owned by
// the caller; the core never interprets them.
type DrugModel struct {
	Compartments Compartments

	V1  float64 // central compartment volume (L), > 0
	K10 float64 // elimination rate constant, per minute
	K12 float64 // central -> compartment 2, per minute
	K21 float64 // compartment 2 -> central, per minute
	K13 float64 // central -> compartment 3, per minute (ignored unless 3-compartment)
	K31 float64 // compartment 3 -> central, per minute (ignored unless 3-compartment)
	K20 float64 // peripheral elimination from compartment 2, per minute (2-compartment only, optional)
	Ke0 float64 // effect-site equilibration rate constant, per minute

	ConcentrationUnit string // opaque, pass-through
	TargetUnit        string // opaque, pass-through
}

// Coefficients holds the analytic bolus-response phase coefficients
// (A, B, C) and rate constants (alpha, beta, gamma) derived once from a
// DrugModel's micro-rate constants (§3, §4.1). All rates are per second.
//
// Invariants: Alpha >= Beta >= Gamma >= 0 for three-compartment models;
// A+B+C == 1/V1 for three- and two-compartment bolus normalisation; for
// two-compartment models C is 0 and Gamma is the unused sentinel 1; for
// one-compartment models B, C are 0, Alpha == K10 (per second), A == 1/V1,
// and Beta, Gamma are the unused sentinel 1.
type Coefficients struct {
	Compartments Compartments

	A, B, C            float64
	Alpha, Beta, Gamma float64

	V1  float64 // L
	Ke0 float64 // per second
}

const perMinuteToPerSecond = 1.0 / 60.0

// NewCoefficients derives the analytic phase coefficients for model. It
// fails with *InvalidModelError when the compartment count is out of range,
// V1 <= 0, or (three-compartment only) the cubic in the micro-rate constants
// does not have three real positive roots.
func NewCoefficients(model DrugModel) (*Coefficients, error) {
	if model.V1 <= 0 {
		return nil, &InvalidModelError{Reason: "v1 must be > 0"}
	}

	k10 := model.K10 * perMinuteToPerSecond
	k12 := model.K12 * perMinuteToPerSecond
	k21 := model.K21 * perMinuteToPerSecond
	k13 := model.K13 * perMinuteToPerSecond
	k31 := model.K31 * perMinuteToPerSecond
	k20 := model.K20 * perMinuteToPerSecond
	ke0 := model.Ke0 * perMinuteToPerSecond

	switch model.Compartments {
	case OneCompartment:
		return &Coefficients{
			Compartments: OneCompartment,
			A:            1 / model.V1,
			B:            0,
			C:            0,
			Alpha:        k10,
			Beta:         1,
			Gamma:        1,
			V1:           model.V1,
			Ke0:          ke0,
		}, nil
	case TwoCompartment:
		return newTwoCompartmentCoefficients(model.V1, k10, k12, k21, k20, ke0)
	case ThreeCompartment:
		return newThreeCompartmentCoefficients(model.V1, k10, k12, k21, k13, k31, ke0)
	default:
		return nil, &InvalidModelError{Reason: "compartments must be 1, 2 or 3"}
	}
}

func newTwoCompartmentCoefficients(v1, k10, k12, k21, k20, ke0 float64) (*Coefficients, error) {
	a1 := k21*k10 + k12*k20 + k10*k20
	a2 := k12 + k21 + k10 + k20

	disc := a2*a2 - 4*a1
	if disc < 0 {
		return nil, &InvalidModelError{Reason: "two-compartment micro-rate constants yield complex roots"}
	}
	beta := 0.5 * (a2 - math.Sqrt(disc))
	if beta <= 0 {
		return nil, &InvalidModelError{Reason: "two-compartment beta must be > 0"}
	}
	alpha := a1 / beta
	if alpha <= 0 {
		return nil, &InvalidModelError{Reason: "two-compartment alpha must be > 0"}
	}

	return &Coefficients{
		Compartments: TwoCompartment,
		A:            (alpha - k21 - k20) / (v1 * (alpha - beta)),
		B:            (beta - k21 - k20) / (v1 * (beta - alpha)),
		C:            0,
		Alpha:        alpha,
		Beta:         beta,
		Gamma:        1, // unused sentinel
		V1:           v1,
		Ke0:          ke0,
	}, nil
}

func newThreeCompartmentCoefficients(v1, k10, k12, k21, k13, k31, ke0 float64) (*Coefficients, error) {
	a0 := k10 * k21 * k31
	a1 := k10*k31 + k21*k31 + k21*k13 + k10*k21 + k31*k12
	a2 := k10 + k12 + k13 + k21 + k31

	p := a1 - a2*a2/3
	q := 2*a2*a2*a2/27 - a1*a2/3 + a0

	if p >= 0 {
		return nil, &InvalidModelError{Reason: "three-compartment depressed cubic has no three-real-root solution (p >= 0)"}
	}

	r1 := math.Sqrt(-p * p * p / 27)
	r2 := 2 * math.Cbrt(r1)
	theta := math.Acos(-q/(2*r1)) / 3

	alpha := -(math.Cos(theta)*r2 - a2/3)
	beta := -(math.Cos(theta+2*math.Pi/3)*r2 - a2/3)
	gamma := -(math.Cos(theta+4*math.Pi/3)*r2 - a2/3)

	// Order the roots so that alpha >= beta >= gamma.
	if alpha < beta {
		alpha, beta = beta, alpha
	}
	if beta < gamma {
		beta, gamma = gamma, beta
	}
	if alpha < beta {
		alpha, beta = beta, alpha
	}

	if alpha <= 0 || beta <= 0 || gamma <= 0 {
		return nil, &InvalidModelError{Reason: "three-compartment roots must all be > 0"}
	}

	A := (1 / v1) * (k21 - alpha) / (alpha - beta) * (k31 - alpha) / (alpha - gamma)
	B := (1 / v1) * (k21 - beta) / (beta - alpha) * (k31 - beta) / (beta - gamma)
	C := (1 / v1) * (k21 - gamma) / (gamma - alpha) * (k31 - gamma) / (gamma - beta)

	return &Coefficients{
		Compartments: ThreeCompartment,
		A:            A,
		B:            B,
		C:            C,
		Alpha:        alpha,
		Beta:         beta,
		Gamma:        gamma,
		V1:           v1,
		Ke0:          ke0,
	}, nil
}
