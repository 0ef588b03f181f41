package pk

// ceAtTpeakForKe0 simulates C_e(t_peak) for an instantaneous bolus dose,
// given a candidate ke0, by resampling the plasma bolus kernel at unit-
// second cadence from 0 to t_peak and running the effect-site recursion
// over it.
func ceAtTpeakForKe0(c *Coefficients, dose, tPeak, ke0 float64) float64 {
	n := int(tPeak) + 1
	cp := make([]float64, n)
	for i := 0; i < n; i++ {
		cp[i] = dose * BolusKernel(c, float64(i))
	}
	ce := CeSeries(ke0, cp)
	return ce[n-1]
}

const (
	keoBracketLow  = 1e-5 // per second
	keoBracketHigh = 1e2  // per second
)

// EstimateKe0FromTpeak solves §4.7's t_peak method: given an instantaneous
// bolus dose, the observed time of peak effect-site concentration (t_peak,
// seconds) and its value (ce_tpeak), finds the ke0 (per second) whose
// simulated C_e(t_peak) matches ce_tpeak, via Brent's method on
// [1e-5, 1e2] per second. Returns a *RootNotBracketedError if the sign
// condition at the bracket endpoints fails (§4.7); records NonConvergence
// on warnings and returns the best iterate otherwise.
func EstimateKe0FromTpeak(c *Coefficients, dose, tPeak, ceTpeak float64, warnings *WarningSink) (float64, error) {
	f := func(ke0 float64) float64 {
		return ceAtTpeakForKe0(c, dose, tPeak, ke0) - ceTpeak
	}

	root, converged, err := solveBrent(f, keoBracketLow, keoBracketHigh, defaultRootTol, defaultMaxIters)
	if err != nil {
		return 0, err
	}
	if !converged {
		warnings.record(NonConvergence, -1,
			"t_peak ke0 estimation did not converge within tolerance; returning best iterate %.6g", root)
	}
	return root, nil
}
