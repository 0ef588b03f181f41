package pk

import "fmt"

// InvalidModelError reports a drug model whose micro-rate constants cannot
// be turned into a valid analytic solution (§7: fatal at construction).
type InvalidModelError struct {
	Reason string
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("invalid model: %s", e.Reason)
}

// InvalidInputError reports a malformed call-site argument: negative
// times/durations/doses, a non-positive target, or a non-positive end_time
// (§7: fatal at the call site).
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// WarningKind enumerates the non-fatal conditions surfaced through a
// WarningSink instead of an error (§7).
type WarningKind string

const (
	// NonConvergence reports that a Newton-secant or Brent search did not
	// converge. The scheduler falls back to a safe, deterministic choice:
	// a zero-duration maintenance infusion, or the last-computed cp_limit.
	NonConvergence WarningKind = "non_convergence"

	// RateCapHit reports that a computed dose exceeded max_infusion_rate
	// and was clamped (maintenance infusions) or that its duration was
	// extended to bring the rate under the cap (initial bolus). Purely
	// informational — scheduling continues unaffected.
	RateCapHit WarningKind = "rate_cap_hit"

	// OverlapWarning reports a user-defined infusion overlapping a
	// targeting window. The scheduler neither forbids nor corrects the
	// resulting overshoot (§9 open question) — it only surfaces this.
	OverlapWarning WarningKind = "overlap"
)

// Warning is a single structured, non-fatal diagnostic emitted during
// scheduling. TargetIndex is -1 when the warning is not tagged with a
// specific target (e.g. the coast-interval search or t_peak ke0 estimation).
type Warning struct {
	Kind        WarningKind
	Message     string
	TargetIndex int
}

// WarningSink collects warnings in emission order. It is owned exclusively
// by the Scheduler during generate_infusions()/run(), matching the core's
// single-threaded, synchronous execution model (§5).
type WarningSink struct {
	warnings []Warning
}

// NewWarningSink returns an empty sink ready to record warnings.
func NewWarningSink() *WarningSink {
	return &WarningSink{warnings: make([]Warning, 0)}
}

func (s *WarningSink) record(kind WarningKind, targetIndex int, format string, args ...any) {
	s.warnings = append(s.warnings, Warning{
		Kind:        kind,
		Message:     fmt.Sprintf(format, args...),
		TargetIndex: targetIndex,
	})
}

// Warnings returns every warning recorded so far, in emission order.
func (s *WarningSink) Warnings() []Warning {
	return s.warnings
}

// HasWarnings reports whether any warning has been recorded.
func (s *WarningSink) HasWarnings() bool {
	return len(s.warnings) > 0
}
