package snapshot

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/processing"
)

// RadioMessageKey identifies a radio message within a session.
func RadioMessageKey(msg *model.TeamRadio) string {
	return fmt.Sprintf("%s_%d",
		msg.Date.UTC().Format(time.RFC3339Nano), msg.DriverNumber)
}

// Dismissals tracks the radio messages the viewer closed. A dismissal is
// permanent for the session.
type Dismissals struct {
	mutex sync.Mutex
	keys  map[string]struct{}
}

func NewDismissals() *Dismissals {
	return &Dismissals{keys: make(map[string]struct{})}
}

func (d *Dismissals) Dismiss(msg *model.TeamRadio) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.keys[RadioMessageKey(msg)] = struct{}{}
}

func (d *Dismissals) IsDismissed(msg *model.TeamRadio) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	_, ok := d.keys[RadioMessageKey(msg)]
	return ok
}

// DueMessages returns all radio messages whose offset from session start
// has been reached and which were not yet dismissed, most recent last.
//
//nolint:whitespace // editor/linter
func DueMessages(
	messages []model.TeamRadio,
	raceTime float64,
	sessionStart time.Time,
	dismissed *Dismissals,
) []model.TeamRadio {
	ret := make([]model.TeamRadio, 0)
	for i := range messages {
		msg := &messages[i]
		if processing.Offset(msg.Date.Time, sessionStart) > raceTime {
			continue
		}
		if dismissed != nil && dismissed.IsDismissed(msg) {
			continue
		}
		ret = append(ret, *msg)
	}
	slices.SortStableFunc(ret, func(a, b model.TeamRadio) int {
		return a.Date.Compare(b.Date.Time)
	})
	return ret
}
