package snapshot

import (
	"math"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/processing"
)

// GapInfo describes the time gap between two tracked drivers.
type GapInfo struct {
	Gap    float64
	Ahead  model.Driver
	Behind model.Driver
}

// ComputeGap resolves both drivers' interval samples at the current race
// time and derives the gap between them. Returns nil when the gap is not
// displayable: missing samples, a gap of exactly 0 or NaN (typically before
// both drivers have interval data).
//
//nolint:whitespace // editor/linter
func ComputeGap(
	driver1, driver2 model.Driver,
	intervals1, intervals2 []model.IntervalData,
	raceTime float64,
	sessionStart time.Time,
	live bool,
) *GapInfo {
	sample1, ok1 := resolveInterval(intervals1, raceTime, sessionStart, live)
	sample2, ok2 := resolveInterval(intervals2, raceTime, sessionStart, live)
	if !ok1 || !ok2 {
		return nil
	}

	gap := math.Abs(sample1.GapToLeader - sample2.GapToLeader)
	if gap == 0 || math.IsNaN(gap) {
		return nil
	}
	// smaller gap to the leader means ahead
	if sample1.GapToLeader < sample2.GapToLeader {
		return &GapInfo{Gap: gap, Ahead: driver1, Behind: driver2}
	}
	return &GapInfo{Gap: gap, Ahead: driver2, Behind: driver1}
}

//nolint:whitespace // editor/linter
func resolveInterval(
	samples []model.IntervalData, raceTime float64, sessionStart time.Time, live bool,
) (model.IntervalData, bool) {
	if live {
		// live sessions display the most recent known interval
		return processing.AtTime(samples, math.Inf(1), sessionStart)
	}
	return processing.AtTime(samples, raceTime, sessionStart)
}
