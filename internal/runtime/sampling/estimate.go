package sampling

import (
	"math"
	"time"
)

// Unbounded is reported when the critical-time trend does not converge on the
// SLA threshold: too few samples, flat or shrinking critical time, or zero
// elapsed wall time across the window.
const Unbounded int64 = math.MaxInt64

// EstimateSecondsToBreach extrapolates how many seconds remain before the
// critical-time trend in snapshot crosses sla.
//
// The estimate is a first-order linear extrapolation over the retained
// window: growth rate is taken from the first and last samples only, which is
// O(1) in the window size and tolerant of noisy individual samples. It is
// recomputed on every sample and every prune tick, so the cheap approximation
// is preferred over a regression fit.
//
// The result is never negative: an already-breached trend reports 0.
func EstimateSecondsToBreach(snapshot []TimingSample, sla time.Duration) int64 {
	if len(snapshot) < 2 {
		return Unbounded
	}

	first := snapshot[0]
	last := snapshot[len(snapshot)-1]

	growth := last.CriticalTime.Seconds() - first.CriticalTime.Seconds()
	if growth <= 0 {
		return Unbounded
	}

	elapsed := last.OccurredAt.Sub(first.OccurredAt).Seconds()
	if elapsed <= 0 {
		return Unbounded
	}

	rate := growth / elapsed
	remaining := (sla.Seconds() - last.CriticalTime.Seconds()) / rate
	if remaining < 0 {
		return 0
	}
	if remaining >= float64(math.MaxInt64) {
		return Unbounded
	}
	return int64(remaining)
}
