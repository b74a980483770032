package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
)

func carAt(offsetSec float64, speed int) model.CarData {
	return model.CarData{
		Date: model.Timestamp{
			Time: sessionStart.Add(time.Duration(offsetSec * float64(time.Second))),
		},
		Speed: speed,
	}
}

func TestBuilderAt(t *testing.T) {
	d1 := model.Driver{DriverNumber: 1}
	d2 := model.Driver{DriverNumber: 44}
	b := &Builder{
		SessionStart: sessionStart,
		Drivers:      []model.Driver{d1, d2},
		Tracked:      []model.Driver{d1, d2},
		Laps: []model.Lap{
			{DriverNumber: 1, LapNumber: 1,
				DurationSector1: 30, DurationSector2: 31, DurationSector3: 29},
		},
		Positions: map[int][]model.PositionData{
			1:  {positionAt(0, 1)},
			44: {positionAt(0, 2)},
		},
		Intervals: map[int][]model.IntervalData{
			1:  {intervalAt(10, 0)},
			44: {intervalAt(10, 1.5)},
		},
		Car: map[int][]model.CarData{
			1: {carAt(0, 280), carAt(50, 310)},
		},
		Locations: map[int][]model.LocationData{},
		Radio:     []model.TeamRadio{radioAt(30, 1)},
		Dismissed: NewDismissals(),
	}

	snap := b.At(60)
	assert.InDelta(t, 60.0, snap.RaceTime, 1e-9)
	assert.Equal(t, sessionStart.Add(time.Minute), snap.LocalTime)
	assert.Len(t, snap.Grid, 2)
	assert.NotNil(t, snap.Gap)
	assert.InDelta(t, 1.5, snap.Gap.Gap, 1e-9)
	assert.Equal(t, 310, snap.Telemetry[1].Speed)
	assert.Len(t, snap.Radio, 1)
	// sector 1 revealed at 30s, sector 2 at 61s
	assert.True(t, snap.Timing[1][1].Sector1)
	assert.False(t, snap.Timing[1][1].Sector2)
}

func TestBuilderAt_SingleTrackedDriverHasNoGap(t *testing.T) {
	b := &Builder{
		SessionStart: sessionStart,
		Tracked:      []model.Driver{{DriverNumber: 1}},
		Dismissed:    NewDismissals(),
	}
	snap := b.At(60)
	assert.Nil(t, snap.Gap)
}

func TestBuilderAt_LiveRevealsEverything(t *testing.T) {
	b := &Builder{
		SessionStart: sessionStart,
		Live:         true,
		Laps: []model.Lap{
			{DriverNumber: 1, LapNumber: 1,
				DurationSector1: 30, DurationSector2: 31, DurationSector3: 29},
		},
		Dismissed: NewDismissals(),
	}
	snap := b.At(0)
	assert.True(t, snap.Timing[1][1].Sector3)
}
