// Package pk provides the computational core of a target-controlled
// infusion (TCI) simulator for intravenous anaesthetic drugs.
//
// # Reading Guide
//
// Start with these files to understand the numerical engine, in dependency
// order:
//   - model.go: compartmental PK model and the analytic phase coefficients
//     (A, B, C, alpha, beta, gamma) derived from micro-rate constants
//   - forward_pk.go: plasma concentration C_p(t) from an infusion list
//   - forward_pd.go: effect-site concentration C_e(t) recursively from a
//     C_p trajectory
//   - solver.go / rootfind.go: inverse dosing problems (plasma target,
//     maintenance, original/revised effect-site targeting) and the
//     Newton-secant/Brent root finders that drive them
//   - scheduler.go / event.go: the top-level driver that turns an ordered
//     target list into an infusion list and, on request, a trajectory
//   - decrement.go / keo.go: decrement-time queries and the t_peak method
//     for estimating k_e0
//
// # Architecture
//
// The package is single-threaded and synchronous: every exported function
// is a pure function of (coefficients, infusion list, target list, numeric
// parameters). There is no global state and no background goroutines.
// Non-fatal solver failures (Newton-secant/Brent non-convergence, rate-cap
// clamping) are reported through a WarningSink rather than returned as
// errors; only structurally invalid input (InvalidModel, InvalidInput)
// propagates as an error.
package pk
