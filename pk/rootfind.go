package pk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// RootNotBracketedError reports that a Brent search's initial bracket does
// not satisfy the sign-change condition required for the method to proceed
// (§4.7, §9).
type RootNotBracketedError struct {
	A, B   float64
	FA, FB float64
}

func (e *RootNotBracketedError) Error() string {
	return fmt.Sprintf("root not bracketed: f(%v)=%v, f(%v)=%v (same sign)", e.A, e.FA, e.B, e.FB)
}

const (
	defaultRootTol  = 1e-6
	defaultMaxIters = 100
)

// solveSecant finds a root of f near x0, x1 using the secant method — a
// compact, dependency-free univariate search (§9's design note: "a port
// must embed equivalents ... rather than pull in large numeric stacks").
// It returns the last iterate and whether it converged: |f(x)| within tol,
// or two successive iterates within tol of each other.
func solveSecant(f func(float64) float64, x0, x1, tol float64, maxIter int) (root float64, converged bool) {
	fx0 := f(x0)
	fx1 := f(x1)

	for i := 0; i < maxIter; i++ {
		if floats.EqualWithinAbs(fx1, 0, tol) {
			return x1, true
		}
		denom := fx1 - fx0
		if denom == 0 {
			return x1, false
		}
		x2 := x1 - fx1*(x1-x0)/denom
		x0, fx0 = x1, fx1
		x1 = x2
		fx1 = f(x1)

		if floats.EqualWithinAbs(x1, x0, tol) {
			return x1, true
		}
	}
	return x1, floats.EqualWithinAbs(fx1, 0, tol)
}

// solveBrent finds a root of f within the bracket [a, b] using Brent's
// method (bisection, secant, and inverse quadratic interpolation, falling
// back to bisection when the faster steps misbehave). Fails with
// *RootNotBracketedError when f(a) and f(b) do not have opposite signs.
// The returned bool reports whether the search converged to within tol
// before maxIter iterations elapsed.
func solveBrent(f func(float64) float64, a, b, tol float64, maxIter int) (root float64, converged bool, err error) {
	fa := f(a)
	fb := f(b)
	if fa*fb > 0 {
		return 0, false, &RootNotBracketedError{A: a, B: b, FA: fa, FB: fb}
	}

	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}

	c, fc := a, fa
	mflag := true
	var d float64

	for i := 0; i < maxIter; i++ {
		if fb == 0 || math.Abs(b-a) < tol {
			return b, true, nil
		}

		var s float64
		if fa != fc && fb != fc {
			// Inverse quadratic interpolation.
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// Secant step.
			s = b - fb*(b-a)/(fb-fa)
		}

		lowBound := (3*a + b) / 4
		condBisect := (s < b || s > lowBound) && lowBound > b ||
			(s < lowBound || s > b) && lowBound <= b
		needBisection := condBisect ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2) ||
			(mflag && math.Abs(b-c) < tol) ||
			(!mflag && math.Abs(c-d) < tol)

		if needBisection {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d = c
		c, fc = b, fb

		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}

		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return b, math.Abs(fb) < tol, nil
}
