package model

import (
	"strings"
	"time"
)

type SessionStatus string

const (
	StatusScheduled SessionStatus = "scheduled"
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
	StatusUnknown   SessionStatus = "unknown"
)

type Session struct {
	SessionKey       int       `json:"session_key"`
	SessionName      string    `json:"session_name"`
	SessionType      string    `json:"session_type"`
	DateStart        Timestamp `json:"date_start"`
	Year             int       `json:"year"`
	CircuitKey       int       `json:"circuit_key"`
	CircuitShortName string    `json:"circuit_short_name"`
}

// EstimatedDuration returns the scheduled time window of a session.
// Races get a generous bound (red flags, safety cars), everything else
// fits comfortably into two hours.
func (s *Session) EstimatedDuration() time.Duration {
	if strings.EqualFold(s.SessionType, "Race") {
		return 3 * time.Hour
	}
	return 2 * time.Hour
}

func (s *Session) EstimatedEnd() time.Time {
	return s.DateStart.Add(s.EstimatedDuration())
}

// Status derives the session state from its date range.
// The status field delivered by the API turned out to be unreliable for
// older sessions, so the date range is authoritative.
func (s *Session) Status(now time.Time) SessionStatus {
	if s.DateStart.IsZero() {
		return StatusUnknown
	}
	switch {
	case now.After(s.EstimatedEnd()):
		return StatusCompleted
	case !now.Before(s.DateStart.Time):
		return StatusActive
	default:
		return StatusScheduled
	}
}

func (s *Session) IsLive(now time.Time) bool {
	return s.Status(now) == StatusActive
}
