package model

// The sample types share a common shape: a driver number, a session key,
// a wall-clock timestamp and a type specific payload. Source order of the
// API arrays is not guaranteed, consumers must sort by date before
// resolving against a race time.

type PositionData struct {
	Date         Timestamp `json:"date"`
	DriverNumber int       `json:"driver_number"`
	Position     int       `json:"position"`
	MeetingKey   int       `json:"meeting_key"`
	SessionKey   int       `json:"session_key"`
}

func (p PositionData) SampleTime() Timestamp { return p.Date }

type IntervalData struct {
	Date         Timestamp `json:"date"`
	DriverNumber int       `json:"driver_number"`
	GapToLeader  float64   `json:"gap_to_leader"`
	Interval     float64   `json:"interval"`
	MeetingKey   int       `json:"meeting_key"`
	SessionKey   int       `json:"session_key"`
}

func (i IntervalData) SampleTime() Timestamp { return i.Date }

type CarData struct {
	Date         Timestamp `json:"date"`
	DriverNumber int       `json:"driver_number"`
	Speed        int       `json:"speed"`
	RPM          int       `json:"rpm"`
	Gear         int       `json:"n_gear"`
	Throttle     int       `json:"throttle"`
	Brake        int       `json:"brake"`
	DRS          int       `json:"drs"`
	MeetingKey   int       `json:"meeting_key"`
	SessionKey   int       `json:"session_key"`
}

func (c CarData) SampleTime() Timestamp { return c.Date }

type LocationData struct {
	Date         Timestamp `json:"date"`
	DriverNumber int       `json:"driver_number"`
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
	Z            float64   `json:"z"`
	MeetingKey   int       `json:"meeting_key"`
	SessionKey   int       `json:"session_key"`
}

func (l LocationData) SampleTime() Timestamp { return l.Date }

type TeamRadio struct {
	Date         Timestamp `json:"date"`
	DriverNumber int       `json:"driver_number"`
	RecordingURL string    `json:"recording_url"`
	MeetingKey   int       `json:"meeting_key"`
	SessionKey   int       `json:"session_key"`
}

func (t TeamRadio) SampleTime() Timestamp { return t.Date }
