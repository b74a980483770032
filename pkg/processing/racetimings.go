package processing

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
)

// InferSessionStart back-computes the true session start from a driver's
// lap 2 data. The nominal scheduled start is often off by the broadcast
// delay; lap 1 is distorted by the starting grid procedure, so lap 2 is the
// first lap whose timestamp can be trusted:
//
//	trueStart = lap2Timestamp - (sector2 + sector3)
//
// Returns false when no usable lap 2 record exists.
func InferSessionStart(laps []model.Lap) (time.Time, bool) {
	sorted := slices.Clone(laps)
	slices.SortFunc(sorted, func(a, b model.Lap) int {
		if a.LapNumber != b.LapNumber {
			return a.LapNumber - b.LapNumber
		}
		return a.DateStart.Compare(b.DateStart.Time)
	})

	lap2, found := lo.Find(sorted, func(l model.Lap) bool {
		return l.LapNumber == 2 && !l.DateStart.IsZero() &&
			l.DurationSector2 > 0 && l.DurationSector3 > 0
	})
	if !found {
		return time.Time{}, false
	}
	sectors := time.Duration(
		(lap2.DurationSector2 + lap2.DurationSector3) * float64(time.Second))
	return lap2.DateStart.Add(-sectors), true
}

// RaceEndTime computes the bound for the virtual clock: the cumulative
// finish time (in seconds) of whichever driver finishes last.
func RaceEndTime(laps []model.Lap) float64 {
	if len(laps) == 0 {
		return 0
	}
	byDriver := lo.GroupBy(laps, func(l model.Lap) int { return l.DriverNumber })
	finishTimes := lo.MapToSlice(byDriver,
		func(_ int, driverLaps []model.Lap) float64 {
			return lo.SumBy(driverLaps, func(l model.Lap) float64 {
				return l.TotalDuration()
			})
		})
	return lo.Max(finishTimes)
}
