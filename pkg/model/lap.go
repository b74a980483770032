package model

// Lap holds the timing data of a single lap. Sector durations of 0 mean
// "not recorded" (a real sector is never traversed in zero seconds).
type Lap struct {
	DriverNumber    int       `json:"driver_number"`
	LapNumber       int       `json:"lap_number"`
	DateStart       Timestamp `json:"date_start"`
	DurationSector1 float64   `json:"duration_sector_1"`
	DurationSector2 float64   `json:"duration_sector_2"`
	DurationSector3 float64   `json:"duration_sector_3"`
	LapDuration     float64   `json:"lap_duration"`
	SessionKey      int       `json:"session_key"`
}

// TotalDuration is the sum of the recorded sector durations in seconds.
func (l *Lap) TotalDuration() float64 {
	return l.DurationSector1 + l.DurationSector2 + l.DurationSector3
}

// HasSector reports whether the given sector (1..3) was recorded.
func (l *Lap) HasSector(sector int) bool {
	switch sector {
	case 1:
		return l.DurationSector1 > 0
	case 2:
		return l.DurationSector2 > 0
	case 3:
		return l.DurationSector3 > 0
	default:
		return false
	}
}
