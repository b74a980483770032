package cache

import (
	"fmt"
	"time"
)

// DefaultTTL is used for completed-session payloads.
const DefaultTTL = 24 * time.Hour

// key builders; partitioned by (entity type, session, driver, [window])

func PositionKey(sessionKey, driverNumber int) string {
	return fmt.Sprintf("f1_positions_%d_%d", sessionKey, driverNumber)
}

func IntervalKey(sessionKey, driverNumber int) string {
	return fmt.Sprintf("f1_intervals_%d_%d", sessionKey, driverNumber)
}

func LapKey(sessionKey, driverNumber int) string {
	return fmt.Sprintf("f1_laps_%d_%d", sessionKey, driverNumber)
}

func RadioKey(sessionKey, driverNumber int) string {
	return fmt.Sprintf("f1_radio_%d_%d", sessionKey, driverNumber)
}

func CarDataKey(sessionKey, driverNumber int) string {
	return fmt.Sprintf("f1_car_data_%d_%d", sessionKey, driverNumber)
}

func CarDataChunkKey(sessionKey, driverNumber int, start time.Time) string {
	return fmt.Sprintf("f1_car_data_%d_%d_%s",
		sessionKey, driverNumber, start.UTC().Format(time.RFC3339))
}

func LocationKey(sessionKey, driverNumber int) string {
	return fmt.Sprintf("f1_location_%d_%d", sessionKey, driverNumber)
}

func LocationChunkKey(sessionKey, driverNumber int, start time.Time) string {
	return fmt.Sprintf("f1_location_chunk_%d_%d_%s",
		sessionKey, driverNumber, start.UTC().Format(time.RFC3339))
}
