package pk

import "sort"

// EffectSite selects whether a Target describes a plasma or effect-site
// concentration target (§3).
type EffectSite string

const (
	PlasmaTarget     EffectSite = "plasma"
	EffectSiteTarget EffectSite = "effect"
)

// Target is a single ordered dosing goal (§3, §6 add_target call surface).
// For plasma targets, Duration is the time over which the target is to be
// met; CpLimit, CpLimitDuration and CeBolusOnly are ignored. For effect
// targets, Duration is a lower bound on time-to-target (§4.4.7).
//
// After scheduling, CpLimit of original-method effect targets is
// overwritten in place with the solved overshoot multiplier so callers can
// inspect it (§3, §4.4.4).
type Target struct {
	Start                float64
	Target               float64
	Duration             float64
	Effect               EffectSite
	CpLimit              float64
	CpLimitDuration      float64
	CeBolusOnly          bool
	MaintenanceInfusions bool
}

// Default values for the add_target() call surface (§6).
const (
	DefaultCpLimit              = 1.2
	DefaultCpLimitDuration      = 10.0
	DefaultCeBolusOnly          = false
	DefaultMaintenanceInfusions = true
)

// NewTarget validates and constructs a Target, applying the add_target()
// defaults (§6) for CpLimit, CpLimitDuration, CeBolusOnly and
// MaintenanceInfusions. It fails with *InvalidInputError for a negative
// start/duration or a non-positive target concentration.
func NewTarget(start, target, duration float64, effect EffectSite) (Target, error) {
	if start < 0 {
		return Target{}, &InvalidInputError{Reason: "target start must be >= 0"}
	}
	if duration < 0 {
		return Target{}, &InvalidInputError{Reason: "target duration must be >= 0"}
	}
	if target <= 0 {
		return Target{}, &InvalidInputError{Reason: "target concentration must be > 0"}
	}
	if effect != PlasmaTarget && effect != EffectSiteTarget {
		return Target{}, &InvalidInputError{Reason: "target effect must be \"plasma\" or \"effect\""}
	}
	return Target{
		Start:                start,
		Target:               target,
		Duration:             duration,
		Effect:               effect,
		CpLimit:              DefaultCpLimit,
		CpLimitDuration:      DefaultCpLimitDuration,
		CeBolusOnly:          DefaultCeBolusOnly,
		MaintenanceInfusions: DefaultMaintenanceInfusions,
	}, nil
}

// TargetList is the ordered sequence of targets a Scheduler consumes (§3).
type TargetList struct {
	items []Target
}

// NewTargetList returns a target list seeded with the given targets, sorted
// by Start (ties broken by input order, per §5's ordering contract).
func NewTargetList(targets ...Target) *TargetList {
	items := make([]Target, len(targets))
	copy(items, targets)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Start < items[j].Start })
	return &TargetList{items: items}
}

// Add appends a target and re-sorts by Start, ties broken by insertion
// order, preserving the ordering contract as new targets arrive.
func (l *TargetList) Add(t Target) {
	l.items = append(l.items, t)
	sort.SliceStable(l.items, func(i, j int) bool { return l.items[i].Start < l.items[j].Start })
}

// Items returns the targets in ascending Start order.
func (l *TargetList) Items() []Target {
	return l.items
}

// Len returns the number of targets in the list.
func (l *TargetList) Len() int {
	return len(l.items)
}

// Set overwrites the target at index i in place, used by the scheduler to
// persist a solved cp_limit back onto the original-method effect target
// (§3, §4.4.4).
func (l *TargetList) Set(i int, t Target) {
	l.items[i] = t
}
