package model

import (
	"fmt"
	"math"
)

// FormatLaptime renders a duration in seconds as m:ss.mmm, the common
// motorsport notation. Durations of an hour or more carry an hour prefix.
func FormatLaptime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		return "-"
	}
	millis := int(math.Round(seconds * 1000))
	hours := millis / 3600000
	minutes := millis % 3600000 / 60000
	secs := millis % 60000 / 1000
	frac := millis % 1000
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", hours, minutes, secs, frac)
	}
	return fmt.Sprintf("%d:%02d.%03d", minutes, secs, frac)
}
