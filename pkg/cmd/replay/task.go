package replay

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/log"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/fetch"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/processing"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/processing/snapshot"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/timeline"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/utils/broadcast"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	seriesPollInterval  = 5 * time.Second
	sessionPollInterval = 30 * time.Second
)

type replayTask struct {
	session *model.Session
	svc     *fetch.Service
	live    bool
	l       *log.Logger

	mu      sync.Mutex // guards builder
	builder *snapshot.Builder

	tl        *timeline.Timeline
	pollers   []*timeline.Poller
	snapshots chan *snapshot.Snapshot
	server    broadcast.BroadcastServer[*snapshot.Snapshot]

	finished  chan struct{}
	closeOnce sync.Once
}

func newReplayTask(session *model.Session, svc *fetch.Service, live bool) *replayTask {
	return &replayTask{
		session:   session,
		svc:       svc,
		live:      live,
		l:         log.Default().Named("replay"),
		snapshots: make(chan *snapshot.Snapshot, 1),
		finished:  make(chan struct{}),
	}
}

//nolint:funlen // by design
func (r *replayTask) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	builder, raceEnd := r.loadSessionData(ctx)
	r.mu.Lock()
	r.builder = builder
	r.mu.Unlock()

	r.server = broadcast.NewBroadcastServer("snapshots", r.snapshots)
	defer r.server.Close()
	if appConfig.PrintSnapshots {
		go r.printSnapshots(r.server.Subscribe())
	}

	tlOpts := []timeline.Option{
		timeline.WithLive(r.live),
		timeline.WithOnTick(r.onTick),
	}
	if !r.live {
		tlOpts = append(tlOpts, timeline.WithRaceEnd(raceEnd))
	}
	r.tl = timeline.NewTimeline(builder.SessionStart.UTC(), tlOpts...)
	if !r.live {
		r.tl.SetSpeed(speed)
	}

	if r.live {
		r.startPollers(ctx)
	}

	r.l.Info("starting timeline",
		log.Time("sessionStart", builder.SessionStart),
		log.Float64("raceEnd", raceEnd),
		log.Bool("live", r.live))
	r.tl.Start(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	select {
	case v := <-sigChan:
		r.l.Debug("Got signal", log.Any("signal", v))
	case <-r.finished:
		r.l.Info("replay reached the end of the session")
	}

	for _, p := range r.pollers {
		p.Stop()
	}
	r.tl.Stop()
	r.l.Info("replay terminated")
	return nil
}

// loadSessionData pulls every series of the session through the tiered
// pipeline and assembles the initial dataset.
//
//nolint:funlen // by design
func (r *replayTask) loadSessionData(ctx context.Context) (*snapshot.Builder, float64) {
	drivers := r.svc.Drivers(ctx, r.session.SessionKey)
	tracked := r.resolveTracked(drivers)
	r.l.Info("driver lineup loaded",
		log.Int("drivers", len(drivers)), log.Int("tracked", len(tracked)))

	builder := &snapshot.Builder{
		Live:      r.live,
		Drivers:   drivers,
		Tracked:   tracked,
		Positions: make(map[int][]model.PositionData),
		Intervals: make(map[int][]model.IntervalData),
		Car:       make(map[int][]model.CarData),
		Locations: make(map[int][]model.LocationData),
		Dismissed: snapshot.NewDismissals(),
	}

	for _, driver := range drivers {
		num := driver.DriverNumber
		builder.Laps = append(builder.Laps,
			r.svc.Laps(ctx, r.session.SessionKey, num)...)
		builder.Positions[num] = r.svc.Positions(ctx, r.session.SessionKey, num)
	}
	builder.SessionStart = r.sessionStart(builder.Laps)

	for _, driver := range tracked {
		num := driver.DriverNumber
		builder.Intervals[num] = r.svc.Intervals(ctx, r.session.SessionKey, num)
		builder.Radio = append(builder.Radio,
			r.svc.Radio(ctx, r.session.SessionKey, num)...)

		car, err := r.svc.CarData(ctx, r.session.SessionKey, num, builder.SessionStart)
		if err != nil {
			r.l.Warn("car telemetry incomplete",
				log.Int("driver", num), log.ErrorField(err))
		}
		builder.Car[num] = car

		loc, err := r.svc.Location(ctx, r.session.SessionKey, num, builder.SessionStart)
		if err != nil {
			r.l.Warn("location data incomplete",
				log.Int("driver", num), log.ErrorField(err))
		}
		builder.Locations[num] = loc
	}

	return builder, processing.RaceEndTime(builder.Laps)
}

// resolveTracked maps the requested driver numbers onto the lineup.
// Without an explicit request the first two drivers form the pairing.
func (r *replayTask) resolveTracked(drivers []model.Driver) []model.Driver {
	if len(trackedDrivers) == 0 {
		if len(drivers) > 2 {
			return drivers[:2]
		}
		return drivers
	}
	ret := make([]model.Driver, 0, len(trackedDrivers))
	for _, num := range trackedDrivers {
		for i := range drivers {
			if drivers[i].DriverNumber == num {
				ret = append(ret, drivers[i])
				break
			}
		}
	}
	return ret
}

// sessionStart prefers the inferred green flag time over the scheduled one.
func (r *replayTask) sessionStart(laps []model.Lap) time.Time {
	if start, ok := processing.InferSessionStart(laps); ok {
		return start
	}
	r.l.Debug("no usable lap 2, falling back to scheduled start")
	return r.session.DateStart.Time
}

func (r *replayTask) onTick(c timeline.Clock) {
	if c.State == timeline.StateCompleted {
		r.closeOnce.Do(func() { close(r.finished) })
		return
	}
	r.mu.Lock()
	snap := r.builder.At(c.RaceTime)
	r.mu.Unlock()
	select {
	case r.snapshots <- snap:
	default: // never block the tick loop
	}
}

func (r *replayTask) printSnapshots(ch <-chan *snapshot.Snapshot) {
	for snap := range ch {
		fields := []log.Field{
			log.String("raceTime", model.FormatLaptime(snap.RaceTime)),
			log.Time("localTime", snap.LocalTime),
			log.Int("grid", len(snap.Grid)),
			log.Int("radio", len(snap.Radio)),
		}
		if snap.Gap != nil {
			fields = append(fields,
				log.Float64("gap", snap.Gap.Gap),
				log.Int("ahead", snap.Gap.Ahead.DriverNumber))
		}
		r.l.Debug("snapshot", fields...)
	}
}

// startPollers keeps the timing series fresh while the session is running.
// Each refetch is committed wholesale; once the session leaves its date
// range the polling stops and the engine keeps serving the final dataset.
func (r *replayTask) startPollers(ctx context.Context) {
	series := timeline.NewPoller("series", seriesPollInterval,
		func(ctx context.Context) {
			if !r.stillLive() {
				return
			}
			r.refreshSeries(ctx)
		})
	status := timeline.NewPoller("session-status", sessionPollInterval,
		func(ctx context.Context) {
			if r.stillLive() {
				return
			}
			r.l.Info("session left its date range, stopping pollers")
			for _, p := range r.pollers {
				go p.Stop()
			}
		})
	r.pollers = []*timeline.Poller{series, status}
	for _, p := range r.pollers {
		p.Start(ctx)
	}
}

func (r *replayTask) stillLive() bool {
	return forceLive || r.session.IsLive(time.Now())
}

func (r *replayTask) refreshSeries(ctx context.Context) {
	r.mu.Lock()
	tracked := r.builder.Tracked
	drivers := r.builder.Drivers
	r.mu.Unlock()

	laps := make([]model.Lap, 0)
	positions := make(map[int][]model.PositionData, len(drivers))
	for _, driver := range drivers {
		num := driver.DriverNumber
		laps = append(laps, r.svc.Laps(ctx, r.session.SessionKey, num)...)
		positions[num] = r.svc.Positions(ctx, r.session.SessionKey, num)
	}
	intervals := make(map[int][]model.IntervalData, len(tracked))
	for _, driver := range tracked {
		num := driver.DriverNumber
		intervals[num] = r.svc.Intervals(ctx, r.session.SessionKey, num)
	}

	// liveness guard: the session may have ended while the fetches were in
	// flight; a stale commit would overwrite the final dataset
	if !r.stillLive() {
		r.l.Debug("session ended during refresh, discarding fetched data")
		return
	}
	r.mu.Lock()
	r.builder.Laps = laps
	r.builder.Positions = positions
	r.builder.Intervals = intervals
	r.mu.Unlock()
	r.l.Debug("series refreshed", log.Int("laps", len(laps)))
}
