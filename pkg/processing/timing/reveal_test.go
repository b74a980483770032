//nolint:funlen // ok for tests
package timing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
)

func sampleLaps() []model.Lap {
	return []model.Lap{
		{DriverNumber: 1, LapNumber: 1,
			DurationSector1: 30, DurationSector2: 31, DurationSector3: 29},
		{DriverNumber: 1, LapNumber: 2,
			DurationSector1: 31, DurationSector2: 30, DurationSector3: 30},
	}
}

func TestVisibleAt(t *testing.T) {
	laps := sampleLaps()
	tests := []struct {
		name    string
		elapsed float64
		want    map[int]SectorVisibility
	}{
		{
			name:    "nothing before first sector completes",
			elapsed: 29.9,
			want: map[int]SectorVisibility{
				1: {}, 2: {},
			},
		},
		{
			name:    "first sector at its cumulative duration",
			elapsed: 30,
			want: map[int]SectorVisibility{
				1: {Sector1: true}, 2: {},
			},
		},
		{
			name:    "mid lap one",
			elapsed: 95,
			want: map[int]SectorVisibility{
				1: {Sector1: true, Sector2: true, Sector3: true}, 2: {},
			},
		},
		{
			name:    "lap two sector one crosses lap boundary",
			elapsed: 121,
			want: map[int]SectorVisibility{
				1: {Sector1: true, Sector2: true, Sector3: true},
				2: {Sector1: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleAt(laps, tt.elapsed)
			if diff := cmp.Diff(tt.want, got[1]); diff != "" {
				t.Errorf("VisibleAt() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVisibleAt_Monotonic(t *testing.T) {
	laps := sampleLaps()
	prev := VisibleAt(laps, 0)
	for elapsed := 1.0; elapsed <= 200; elapsed++ {
		cur := VisibleAt(laps, elapsed)
		for lapNum, prevVis := range prev[1] {
			curVis := cur[1][lapNum]
			if prevVis.Sector1 {
				assert.True(t, curVis.Sector1, "sector 1 of lap %d disappeared", lapNum)
			}
			if prevVis.Sector2 {
				assert.True(t, curVis.Sector2, "sector 2 of lap %d disappeared", lapNum)
			}
			if prevVis.Sector3 {
				assert.True(t, curVis.Sector3, "sector 3 of lap %d disappeared", lapNum)
			}
		}
		prev = cur
	}
}

func TestVisibleAt_UnrecordedSectorStaysHidden(t *testing.T) {
	laps := []model.Lap{
		{DriverNumber: 1, LapNumber: 1,
			DurationSector1: 30, DurationSector2: 0, DurationSector3: 29},
	}
	got := VisibleAt(laps, 3600)
	assert.Equal(t,
		SectorVisibility{Sector1: true, Sector2: false, Sector3: true},
		got[1][1])
}

func TestAllVisible(t *testing.T) {
	laps := sampleLaps()
	laps = append(laps, model.Lap{DriverNumber: 44, LapNumber: 1,
		DurationSector1: 28, DurationSector3: 30})

	got := AllVisible(laps)
	assert.Equal(t,
		SectorVisibility{Sector1: true, Sector2: true, Sector3: true},
		got[1][2])
	assert.Equal(t,
		SectorVisibility{Sector1: true, Sector2: false, Sector3: true},
		got[44][1])
}
