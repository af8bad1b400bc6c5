package matching

import (
	"math"
)

const hoursPerDay = 24

// Utilization estimates how much of a candidate's capacity is consumed
// by commitments that overlap the target window. Returns a percentage in
// [0,100] and the number of assignments that produced a nonzero overlap.
//
// When the target window is incomplete or zero-length, falls back to a
// flat per-project load over the raw assignment count.
func Utilization(target Window, asgns []Assignment, cfg Config) (int, int) {
	if target.complete() {
		targetDays := target.End.Sub(*target.Start).Hours() / hoursPerDay
		if targetDays > 0 {
			return weightedUtilization(target, targetDays, asgns, cfg)
		}
	}

	count := len(asgns)
	pct := count * cfg.FallbackLoadPct
	if pct > 100 {
		pct = 100
	}
	return pct, count
}

func weightedUtilization(target Window, targetDays float64, asgns []Assignment, cfg Config) (int, int) {
	var totalLoad float64
	active := 0

	for _, a := range asgns {
		// Assignments without a full window cannot overlap anything
		// measurable; they contribute no load.
		if !a.Window.complete() {
			continue
		}

		overlapStart := *a.Window.Start
		if target.Start.After(overlapStart) {
			overlapStart = *target.Start
		}
		overlapEnd := *a.Window.End
		if target.End.Before(overlapEnd) {
			overlapEnd = *target.End
		}

		if !overlapStart.Before(overlapEnd) {
			continue
		}

		overlapDays := overlapEnd.Sub(overlapStart).Hours() / hoursPerDay
		totalLoad += (overlapDays / targetDays) * cfg.loadRatio()
		active++
	}

	pct := int(math.Round(totalLoad * 100))
	if pct > 100 {
		pct = 100
	}
	return pct, active
}
