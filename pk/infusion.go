package pk

import "sort"

// Infusion is a single timed dose (§3): a constant per-second dose rate
// delivered over [Start, End). A "bolus" is not a distinct type — it is an
// infusion whose Duration is at or below a configured bolus threshold
// (§4.4.6, BolusTime in PumpConfig).
type Infusion struct {
	Start      float64 // seconds, >= 0
	DosePerSec float64 // model concentration-unit mass per second, >= 0
	Duration   float64 // seconds, >= 0
	End        float64 // Start + Duration
}

// NewInfusion validates and constructs an Infusion. It fails with
// *InvalidInputError for a negative start, duration, or dose.
func NewInfusion(start, dosePerSec, duration float64) (Infusion, error) {
	if start < 0 {
		return Infusion{}, &InvalidInputError{Reason: "infusion start must be >= 0"}
	}
	if duration < 0 {
		return Infusion{}, &InvalidInputError{Reason: "infusion duration must be >= 0"}
	}
	if dosePerSec < 0 {
		return Infusion{}, &InvalidInputError{Reason: "infusion dose must be >= 0"}
	}
	return Infusion{Start: start, DosePerSec: dosePerSec, Duration: duration, End: start + duration}, nil
}

// IsBolus reports whether inf is short enough to be treated as an
// instantaneous push for rate-cap purposes (§4.4.6, §GLOSSARY).
func (inf Infusion) IsBolus(bolusTime float64) bool {
	return inf.Duration <= bolusTime
}

// InfusionList is the append-only, ordered sequence of infusions a
// Scheduler builds up during generate_infusions()/run() (§3). Growth is
// backed by Go's amortised-growth slice append, so no address in the
// backing array is stable across an Append call.
type InfusionList struct {
	items []Infusion
}

// NewInfusionList returns an empty infusion list, optionally seeded with
// user-defined infusions kept verbatim (§4.5 step 1).
func NewInfusionList(userInfusions ...Infusion) *InfusionList {
	items := make([]Infusion, len(userInfusions))
	copy(items, userInfusions)
	return &InfusionList{items: items}
}

// Append grows the list by one infusion.
func (l *InfusionList) Append(inf Infusion) {
	l.items = append(l.items, inf)
}

// Items returns the infusions in append order (not necessarily sorted by
// Start if user-defined infusions were seeded out of order).
func (l *InfusionList) Items() []Infusion {
	return l.items
}

// Len returns the number of infusions currently in the list.
func (l *InfusionList) Len() int {
	return len(l.items)
}

// Sorted returns a copy of the list's infusions ordered by non-decreasing
// Start, ties broken by original append order (§3, §8: "start_n >=
// start_{n-1} (after sort by start)").
func (l *InfusionList) Sorted() []Infusion {
	sorted := make([]Infusion, len(l.items))
	copy(sorted, l.items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	return sorted
}
