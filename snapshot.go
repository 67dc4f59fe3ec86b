package progress

import (
	"math"
	"time"
)

// Snapshot is a point-in-time view of the bar's derived metrics. It holds
// plain values, so callers can keep one around without it changing under
// them on later ticks.
type Snapshot struct {
	// Current is the amount done so far.
	Current int64
	// Total is the completion target, zero while still unknown.
	Total int64
	// Percent is Current over Total as 0..100, zero while Total is unknown.
	Percent float64
	// Remaining is Total minus Current, zero while Total is unknown.
	Remaining int64
	// Runtime is seconds between the first recorded update and the latest.
	Runtime float64
	// Speed is units per second over the runtime, or the estimator's rate
	// when the bar was built with one.
	Speed float64
	// ETA is seconds until completion at the current speed, zero when
	// either Total or Speed is unknown.
	ETA float64
}

// computeSnapshot derives all metrics from the raw counters. elapsed is the
// time since the first recorded update, not since construction.
func computeSnapshot(current, total int64, elapsed time.Duration) Snapshot {
	snap := Snapshot{Current: current, Total: total}
	secs := elapsed.Seconds()
	snap.Runtime = round3(secs)
	if secs > 0 {
		snap.Speed = round3(float64(current) / secs)
	}
	if total <= 0 {
		return snap
	}
	snap.Remaining = total - current
	ratio := float64(current) / float64(total)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	snap.Percent = round3(ratio * 100)
	if snap.Speed > 0 {
		snap.ETA = round3(float64(snap.Remaining) / snap.Speed)
	}
	return snap
}

// round3 keeps derived metrics stable to three decimals for display and
// comparison.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
