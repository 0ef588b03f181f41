package pk

// EffectSession is an incremental forward stepper over C_p and C_e at
// unit-second cadence. It holds just enough state (the clock and the
// previous step's C_p/C_e) to advance one second at a time in O(1) per
// step, which is what the effect-site decrement query (§4.6) needs: it
// advances a cursor until a condition holds, rather than materialising the
// whole trajectory up front. This mirrors
// the teacher's event-loop texture (a clock that only moves forward, one
// step driving the next) without needing an event queue, since every step
// here is the same fixed-size unit advance.
type EffectSession struct {
	Coeffs    *Coefficients
	Infusions []Infusion

	clock  float64
	prevCp float64
	prevCe float64
}

// NewEffectSession starts a session at t=0 with C_p(0)=C_e(0)=0.
func NewEffectSession(coeffs *Coefficients, infusions []Infusion) *EffectSession {
	return &EffectSession{Coeffs: coeffs, Infusions: infusions}
}

// Clock returns the current simulated time in seconds.
func (es *EffectSession) Clock() float64 {
	return es.clock
}

// Step advances the session by one second and returns the new (t, C_p,
// C_e) triple.
func (es *EffectSession) Step() (t, cp, ce float64) {
	es.clock++
	cp = Cp(es.Coeffs, es.Infusions, es.clock)
	ce = stepCe(es.Coeffs.Ke0, es.prevCp, es.prevCe, cp)
	es.prevCp, es.prevCe = cp, ce
	return es.clock, cp, ce
}

// SeekTo advances the session one step at a time until its clock reaches
// t, discarding the intermediate samples. It is a no-op if t is at or
// before the current clock.
func (es *EffectSession) SeekTo(t float64) {
	for es.clock < t {
		es.Step()
	}
}
