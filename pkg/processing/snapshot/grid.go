package snapshot

import (
	"slices"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/processing"
)

// GridEntry is one row of the resolved driver grid.
type GridEntry struct {
	Driver   model.Driver
	Position int
}

// ComputeGrid resolves every driver's position at the current race time.
// Drivers with position 0 or without any resolvable sample are dropped,
// the result is sorted ascending by position.
//
//nolint:whitespace // editor/linter
func ComputeGrid(
	drivers []model.Driver,
	positions map[int][]model.PositionData,
	raceTime float64,
	sessionStart time.Time,
) []GridEntry {
	ret := make([]GridEntry, 0, len(drivers))
	for _, driver := range drivers {
		sample, ok := processing.AtTime(
			positions[driver.DriverNumber], raceTime, sessionStart)
		if !ok || sample.Position == 0 {
			continue
		}
		ret = append(ret, GridEntry{Driver: driver, Position: sample.Position})
	}
	slices.SortFunc(ret, func(a, b GridEntry) int {
		return a.Position - b.Position
	})
	return ret
}
