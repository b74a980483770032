//nolint:funlen // ok for tests
package snapshot

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
)

var sessionStart = time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)

func intervalAt(offsetSec, gapToLeader float64) model.IntervalData {
	return model.IntervalData{
		Date: model.Timestamp{
			Time: sessionStart.Add(time.Duration(offsetSec * float64(time.Second))),
		},
		GapToLeader: gapToLeader,
	}
}

func TestComputeGap(t *testing.T) {
	d1 := model.Driver{DriverNumber: 1, NameAcronym: "VER"}
	d2 := model.Driver{DriverNumber: 44, NameAcronym: "HAM"}

	intervals1 := []model.IntervalData{
		intervalAt(10, 0),
		intervalAt(60, 1.2),
	}
	intervals2 := []model.IntervalData{
		intervalAt(10, 2.5),
		intervalAt(60, 3.0),
	}

	got := ComputeGap(d1, d2, intervals1, intervals2, 30, sessionStart, false)
	assert.NotNil(t, got)
	assert.InDelta(t, 2.5, got.Gap, 1e-9)
	assert.Equal(t, d1, got.Ahead)
	assert.Equal(t, d2, got.Behind)

	// at 60s the order of resolution changes the gap, not the pairing
	got = ComputeGap(d1, d2, intervals1, intervals2, 60, sessionStart, false)
	assert.NotNil(t, got)
	assert.InDelta(t, 1.8, got.Gap, 1e-9)
	assert.Equal(t, d1, got.Ahead)
}

func TestComputeGap_OrderIndependent(t *testing.T) {
	d1 := model.Driver{DriverNumber: 1}
	d2 := model.Driver{DriverNumber: 44}
	intervals1 := []model.IntervalData{intervalAt(10, 5.0)}
	intervals2 := []model.IntervalData{intervalAt(10, 2.0)}

	got := ComputeGap(d1, d2, intervals1, intervals2, 30, sessionStart, false)
	assert.NotNil(t, got)
	assert.Equal(t, d2, got.Ahead)
	assert.Equal(t, d1, got.Behind)
	assert.InDelta(t, 3.0, got.Gap, 1e-9)
}

func TestComputeGap_NotDisplayable(t *testing.T) {
	d1 := model.Driver{DriverNumber: 1}
	d2 := model.Driver{DriverNumber: 44}

	tests := []struct {
		name       string
		intervals1 []model.IntervalData
		intervals2 []model.IntervalData
	}{
		{
			name:       "missing samples for one driver",
			intervals1: []model.IntervalData{intervalAt(10, 1.0)},
			intervals2: []model.IntervalData{},
		},
		{
			name:       "gap of exactly zero",
			intervals1: []model.IntervalData{intervalAt(10, 1.0)},
			intervals2: []model.IntervalData{intervalAt(10, 1.0)},
		},
		{
			name:       "gap is NaN before data is complete",
			intervals1: []model.IntervalData{intervalAt(10, math.NaN())},
			intervals2: []model.IntervalData{intervalAt(10, 1.0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeGap(d1, d2, tt.intervals1, tt.intervals2,
				30, sessionStart, false)
			assert.Nil(t, got)
		})
	}
}

func TestComputeGap_LiveUsesLatestSample(t *testing.T) {
	d1 := model.Driver{DriverNumber: 1}
	d2 := model.Driver{DriverNumber: 44}
	intervals1 := []model.IntervalData{
		intervalAt(10, 0),
		intervalAt(500, 0),
	}
	intervals2 := []model.IntervalData{
		intervalAt(10, 9.0),
		intervalAt(500, 4.0),
	}

	// race time points at the older samples, live mode ignores it
	got := ComputeGap(d1, d2, intervals1, intervals2, 20, sessionStart, true)
	assert.NotNil(t, got)
	assert.InDelta(t, 4.0, got.Gap, 1e-9)
}
