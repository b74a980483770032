package snapshot

import (
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/processing"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/processing/timing"
)

// Snapshot is the consistent "what the viewer should see right now" view
// across all series at one race time.
type Snapshot struct {
	RaceTime  float64
	LocalTime time.Time
	Gap       *GapInfo
	Grid      []GridEntry
	Telemetry map[int]model.CarData
	Location  map[int]model.LocationData
	Radio     []model.TeamRadio
	Timing    timing.VisibleLapState
}

// Builder holds the fetched datasets of a session and assembles snapshots
// from them. The datasets are committed once (or replaced wholesale on a
// live re-poll); assembly itself is pure and runs fresh on every tick.
type Builder struct {
	SessionStart time.Time
	Live         bool

	Drivers   []model.Driver
	Tracked   []model.Driver
	Laps      []model.Lap
	Positions map[int][]model.PositionData
	Intervals map[int][]model.IntervalData
	Car       map[int][]model.CarData
	Locations map[int][]model.LocationData
	Radio     []model.TeamRadio

	Dismissed *Dismissals
}

func (b *Builder) At(raceTime float64) *Snapshot {
	ret := &Snapshot{
		RaceTime:  raceTime,
		LocalTime: b.SessionStart.Add(time.Duration(raceTime * float64(time.Second))),
		Grid:      ComputeGrid(b.Drivers, b.Positions, raceTime, b.SessionStart),
		Telemetry: make(map[int]model.CarData),
		Location:  make(map[int]model.LocationData),
		Radio:     DueMessages(b.Radio, raceTime, b.SessionStart, b.Dismissed),
	}
	if len(b.Tracked) >= 2 {
		d1, d2 := b.Tracked[0], b.Tracked[1]
		ret.Gap = ComputeGap(d1, d2,
			b.Intervals[d1.DriverNumber], b.Intervals[d2.DriverNumber],
			raceTime, b.SessionStart, b.Live)
	}
	for _, driver := range b.Tracked {
		num := driver.DriverNumber
		if sample, ok := processing.AtTime(b.Car[num], raceTime, b.SessionStart); ok {
			ret.Telemetry[num] = sample
		}
		if sample, ok := processing.AtTime(
			b.Locations[num], raceTime, b.SessionStart); ok {
			ret.Location[num] = sample
		}
	}
	if b.Live {
		ret.Timing = timing.AllVisible(b.Laps)
	} else {
		ret.Timing = timing.VisibleAt(b.Laps, raceTime)
	}
	return ret
}
