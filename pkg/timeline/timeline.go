package timeline

import (
	"context"
	"sync"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/log"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

const (
	DefaultTickInterval = 100 * time.Millisecond
	MinSpeed            = 1.0
	MaxSpeed            = 20.0
)

// Clock is the read-only view of the timeline handed to tick consumers.
type Clock struct {
	RaceTime     float64
	LocalTime    time.Time
	SessionStart time.Time
	Speed        float64
	Paused       bool
	State        State
}

// Timeline is the virtual clock driving all series. A single periodic tick
// advances the race time by the real elapsed delta scaled with the current
// speed. Live sessions track the wall-clock offset from session start
// directly, speed does not apply there.
//
// UI/consumer actions only set flags and values which are consumed by the
// next tick, there is no concurrent mutation path.
type Timeline struct {
	mutex sync.Mutex

	state        State
	raceTime     float64
	sessionStart time.Time
	speed        float64
	live         bool
	raceEnd      float64 // seconds; 0 means no bound known yet

	lastTick     time.Time
	tickInterval time.Duration
	onTick       func(Clock)

	cancel context.CancelFunc
	done   chan struct{}

	now func() time.Time
	l   *log.Logger
}

type Option func(*Timeline)

func WithTickInterval(arg time.Duration) Option {
	return func(t *Timeline) {
		t.tickInterval = arg
	}
}

func WithLive(arg bool) Option {
	return func(t *Timeline) {
		t.live = arg
	}
}

func WithRaceEnd(seconds float64) Option {
	return func(t *Timeline) {
		t.raceEnd = seconds
	}
}

// WithOnTick registers the callback invoked after every tick while running.
func WithOnTick(cb func(Clock)) Option {
	return func(t *Timeline) {
		t.onTick = cb
	}
}

// WithClockSource replaces the time source (used in tests).
func WithClockSource(now func() time.Time) Option {
	return func(t *Timeline) {
		t.now = now
	}
}

func NewTimeline(sessionStart time.Time, opts ...Option) *Timeline {
	t := &Timeline{
		state:        StateIdle,
		sessionStart: sessionStart,
		speed:        1,
		tickInterval: DefaultTickInterval,
		now:          time.Now,
		l:            log.Default().Named("timeline"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start moves the timeline from idle to running and launches the tick
// loop. The loop stops when ctx is canceled or Stop is called.
func (t *Timeline) Start(ctx context.Context) {
	t.mutex.Lock()
	if t.state != StateIdle {
		t.mutex.Unlock()
		return
	}
	t.state = StateRunning
	t.raceTime = 0
	t.lastTick = t.now()
	tickCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	t.mutex.Unlock()

	go t.run(tickCtx)
}

func (t *Timeline) run(ctx context.Context) {
	defer close(t.done)
	ticker := time.NewTicker(t.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.l.Debug("tick loop terminated")
			return
		case <-ticker.C:
			t.tick()
		}
	}
}

// Stop terminates the tick loop and resets to idle semantics.
// Used on session change and teardown.
func (t *Timeline) Stop() {
	t.mutex.Lock()
	cancel := t.cancel
	done := t.done
	t.mutex.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
	t.mutex.Lock()
	t.state = StateIdle
	t.raceTime = 0
	t.cancel = nil
	t.mutex.Unlock()
}

//nolint:cyclop // central state transition
func (t *Timeline) tick() {
	t.mutex.Lock()

	if t.state != StateRunning {
		t.mutex.Unlock()
		return
	}
	now := t.now()
	if t.live {
		t.raceTime = now.Sub(t.sessionStart).Seconds()
	} else {
		delta := now.Sub(t.lastTick).Seconds()
		t.raceTime += delta * t.speed
	}
	t.lastTick = now
	if t.raceTime < 0 {
		t.raceTime = 0
	}
	// auto-pause once the last driver finished
	if !t.live && t.raceEnd > 0 && t.raceTime >= t.raceEnd {
		t.raceTime = t.raceEnd
		t.state = StateCompleted
		t.l.Info("race end reached", log.Float64("raceTime", t.raceTime))
	}
	clock := t.clockLocked()
	cb := t.onTick
	t.mutex.Unlock()

	if cb != nil {
		cb(clock)
	}
}

// SetPaused pauses or resumes the clock. Resuming resets the tick
// reference so the pause duration does not produce a spurious delta.
func (t *Timeline) SetPaused(paused bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	switch {
	case paused && t.state == StateRunning:
		t.state = StatePaused
	case !paused && (t.state == StatePaused || t.state == StateCompleted):
		t.lastTick = t.now()
		t.state = StateRunning
	}
}

// Seek sets the race time directly. Legal in any state, the pause state is
// not changed.
func (t *Timeline) Seek(raceTime float64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if raceTime < 0 {
		raceTime = 0
	}
	if t.raceEnd > 0 && raceTime > t.raceEnd {
		raceTime = t.raceEnd
	}
	t.raceTime = raceTime
	t.lastTick = t.now()
	// seeking away from the end bound revives a completed timeline
	if t.state == StateCompleted && raceTime < t.raceEnd {
		t.state = StateRunning
	}
}

// SetSpeed sets the playback speed, clamped to [MinSpeed, MaxSpeed].
// Ignored for live sessions.
func (t *Timeline) SetSpeed(speed float64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if speed < MinSpeed {
		speed = MinSpeed
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}
	t.speed = speed
}

// SetSessionStart replaces the anchor timestamp. Used once the inferred
// true start is available (before that the nominal date is a placeholder).
func (t *Timeline) SetSessionStart(arg time.Time) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.sessionStart = arg
}

// SetRaceEnd sets the clamp bound once lap data allows computing it.
func (t *Timeline) SetRaceEnd(seconds float64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.raceEnd = seconds
}

func (t *Timeline) Clock() Clock {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.clockLocked()
}

func (t *Timeline) clockLocked() Clock {
	return Clock{
		RaceTime: t.raceTime,
		LocalTime: t.sessionStart.Add(
			time.Duration(t.raceTime * float64(time.Second))),
		SessionStart: t.sessionStart,
		Speed:        t.speed,
		Paused:       t.state == StatePaused,
		State:        t.state,
	}
}
