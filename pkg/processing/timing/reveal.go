package timing

import (
	"slices"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
)

// SectorVisibility holds the per-sector reveal state of one lap.
type SectorVisibility struct {
	Sector1 bool
	Sector2 bool
	Sector3 bool
}

// VisibleLapState maps driver number -> lap number -> sector visibility.
type VisibleLapState map[int]map[int]SectorVisibility

// VisibleAt computes which sector values may be shown at the given elapsed
// simulated time. A sector is revealed the instant the elapsed time reaches
// the cumulative duration of all prior sectors (across all prior laps and
// the current lap) plus its own duration. Sectors without recorded data are
// never revealed.
//
// This is a pure function of (laps, elapsed) and is recomputed on every
// change of race time or lap data. Visibility is monotonic in elapsed by
// construction, a revealed sector cannot disappear within one run.
func VisibleAt(laps []model.Lap, elapsed float64) VisibleLapState {
	ret := make(VisibleLapState)
	byDriver := lo.GroupBy(laps, func(l model.Lap) int { return l.DriverNumber })
	for driverNumber, driverLaps := range byDriver {
		ret[driverNumber] = visibleForDriver(driverLaps, elapsed)
	}
	return ret
}

// AllVisible marks every recorded sector as visible. Used for live
// sessions where there is no spoiler concern.
func AllVisible(laps []model.Lap) VisibleLapState {
	ret := make(VisibleLapState)
	for i := range laps {
		l := &laps[i]
		perDriver, ok := ret[l.DriverNumber]
		if !ok {
			perDriver = make(map[int]SectorVisibility)
			ret[l.DriverNumber] = perDriver
		}
		perDriver[l.LapNumber] = SectorVisibility{
			Sector1: l.HasSector(1),
			Sector2: l.HasSector(2),
			Sector3: l.HasSector(3),
		}
	}
	return ret
}

func visibleForDriver(laps []model.Lap, elapsed float64) map[int]SectorVisibility {
	sorted := slices.Clone(laps)
	slices.SortFunc(sorted, func(a, b model.Lap) int {
		return a.LapNumber - b.LapNumber
	})

	ret := make(map[int]SectorVisibility, len(sorted))
	cum := 0.0
	for i := range sorted {
		l := &sorted[i]
		var vis SectorVisibility
		cum += l.DurationSector1
		vis.Sector1 = l.HasSector(1) && elapsed >= cum
		cum += l.DurationSector2
		vis.Sector2 = l.HasSector(2) && elapsed >= cum
		cum += l.DurationSector3
		vis.Sector3 = l.HasSector(3) && elapsed >= cum
		ret[l.LapNumber] = vis
	}
	return ret
}
