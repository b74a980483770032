package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func raceSession(start time.Time) *Session {
	return &Session{
		SessionKey:  9472,
		SessionName: "Race",
		SessionType: "Race",
		DateStart:   Timestamp{Time: start},
	}
}

func TestSessionStatus(t *testing.T) {
	start := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	s := raceSession(start)

	tests := []struct {
		name string
		now  time.Time
		want SessionStatus
	}{
		{name: "before start", now: start.Add(-time.Hour), want: StatusScheduled},
		{name: "at start", now: start, want: StatusActive},
		{name: "mid race", now: start.Add(90 * time.Minute), want: StatusActive},
		{name: "within the 3h race window", now: start.Add(3 * time.Hour), want: StatusActive},
		{name: "after the window", now: start.Add(3*time.Hour + time.Second), want: StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Status(tt.now))
		})
	}
}

func TestSessionStatus_NonRaceWindow(t *testing.T) {
	start := time.Date(2024, 3, 1, 11, 30, 0, 0, time.UTC)
	s := &Session{SessionType: "Practice", DateStart: Timestamp{Time: start}}

	assert.Equal(t, StatusActive, s.Status(start.Add(2*time.Hour)))
	assert.Equal(t, StatusCompleted, s.Status(start.Add(2*time.Hour+time.Second)))
}

func TestSessionStatus_Unknown(t *testing.T) {
	s := &Session{SessionType: "Race"}
	assert.Equal(t, StatusUnknown, s.Status(time.Now()))
	assert.False(t, s.IsLive(time.Now()))
}

func TestSessionIsLive(t *testing.T) {
	start := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	s := raceSession(start)
	assert.False(t, s.IsLive(start.Add(-time.Minute)))
	assert.True(t, s.IsLive(start.Add(time.Hour)))
	assert.False(t, s.IsLive(start.Add(4*time.Hour)))
}
