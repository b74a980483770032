package processing

import (
	"slices"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
)

// TimedSample is implemented by all sample types carrying a wall-clock
// timestamp (position, interval, car telemetry, location, radio).
type TimedSample interface {
	SampleTime() model.Timestamp
}

// AtTime maps a race time (seconds since sessionStart) to the most relevant
// sample: the one with the largest offset that is still <= raceTime
// ("hold previous value" semantics). If the race time precedes all data,
// the earliest sample is returned. ok is false on empty input.
//
// The input order is irrelevant, samples are sorted here.
func AtTime[E TimedSample](
	samples []E, raceTime float64, sessionStart time.Time,
) (ret E, ok bool) {
	if len(samples) == 0 {
		return ret, false
	}
	sorted := slices.Clone(samples)
	slices.SortStableFunc(sorted, func(a, b E) int {
		return a.SampleTime().Compare(b.SampleTime().Time)
	})

	ret = sorted[0]
	for _, item := range sorted {
		offset := Offset(item.SampleTime().Time, sessionStart)
		if offset <= raceTime {
			ret = item
		} else {
			break
		}
	}
	return ret, true
}

// Offset computes the seconds between a sample timestamp and the session
// start.
func Offset(ts, sessionStart time.Time) float64 {
	return ts.Sub(sessionStart).Seconds()
}
